package files

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"resume-builder/internal/folders"
)

// BuildView assembles the nested filesystem view from flat folder and resume
// rows. The tree is keyed by folder display name at each level for display,
// but file membership is decided by folder key parsed out of the object URL,
// so renamed folders keep their files.
//
// A file whose key path no longer matches any live folder (the folder was
// deleted after upload) falls back to the root list. No file is ever dropped.
func BuildView(folderRows []folders.Folder, resumeRows []Resume) View {
	view := View{
		Resumes: []FileEntry{},
		Folders: map[string]*Node{},
	}

	// Parents must exist before children, so materialize shallow keys first.
	sorted := make([]folders.Folder, len(folderRows))
	copy(sorted, folderRows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Depth() < sorted[j].Depth()
	})

	nameByKey := make(map[string]string, len(sorted))
	nodeByKey := make(map[string]*Node, len(sorted))

	for _, f := range sorted {
		nameByKey[f.Key] = f.Name

		segments := strings.Split(f.Key, "/")
		level := view.Folders
		prefix := ""
		for _, seg := range segments[:len(segments)-1] {
			if prefix == "" {
				prefix = seg
			} else {
				prefix = prefix + "/" + seg
			}
			name, ok := nameByKey[prefix]
			if !ok {
				// Ancestor row is missing; fall back to the key segment so
				// the subtree is still reachable.
				name = seg
			}
			child, ok := level[name]
			if !ok {
				child = &Node{FolderKey: prefix, Files: []FileEntry{}, Folders: map[string]*Node{}}
				level[name] = child
				nodeByKey[prefix] = child
			}
			level = child.Folders
		}

		leaf, ok := level[f.Name]
		if !ok {
			leaf = &Node{Files: []FileEntry{}, Folders: map[string]*Node{}}
			level[f.Name] = leaf
		}
		leaf.FolderKey = f.Key
		nodeByKey[f.Key] = leaf
	}

	for _, r := range resumeRows {
		entry := fileEntry(r)
		key := folderKeyFromURL(r.URL)
		if key == "" {
			view.Resumes = append(view.Resumes, entry)
			continue
		}
		node, ok := nodeByKey[key]
		if !ok {
			view.Resumes = append(view.Resumes, entry)
			continue
		}
		node.Files = append(node.Files, entry)
	}

	return view
}

func fileEntry(r Resume) FileEntry {
	return FileEntry{
		ID:        r.ID,
		Filename:  r.Filename,
		URL:       r.URL,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// folderKeyFromURL extracts the folder key encoded in a stored object URL.
// The URL path has the shape /<bucket>/<username>/resumes/[<key>/]<object>;
// everything between the per-user "resumes" container and the final object
// name is the key. The container is matched by position, not by scanning,
// since the bucket itself may be named "resumes". Files directly under the
// container, or URLs that do not match the convention, yield "" (root).
func folderKeyFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 5 || segments[2] != "resumes" {
		return ""
	}
	return strings.Join(segments[3:len(segments)-1], "/")
}
