package folders

import (
	"context"
	"strings"
)

// ResolveKey translates a slash-separated path of folder display names into
// the stable key of the final folder. Names may have been edited after files
// were filed under the original key, so each segment is matched by name and
// then checked for consistency with the key resolved so far: the first
// segment must be a root-level folder (no "/" in its key), later segments
// must live under "<parent_key>/". The first consistent match wins. An empty
// path resolves to the root key "".
//
// If any segment cannot be matched the whole path fails with ErrNotFound.
func ResolveKey(ctx context.Context, repo Repo, profileID int64, path string) (string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return "", nil
	}

	currentKey := ""
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			return "", ErrNotFound
		}
		candidates, err := repo.FindByName(ctx, profileID, segment)
		if err != nil {
			return "", err
		}

		matched := false
		for _, f := range candidates {
			if currentKey == "" {
				if strings.Contains(f.Key, "/") {
					continue
				}
			} else if !strings.HasPrefix(f.Key, currentKey+"/") {
				continue
			}
			currentKey = f.Key
			matched = true
			break
		}
		if !matched {
			return "", ErrNotFound
		}
	}
	return currentKey, nil
}
