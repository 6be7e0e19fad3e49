package files

import (
	"testing"
	"time"

	"resume-builder/internal/folders"
)

func testResume(id int64, filename, url string) Resume {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return Resume{
		ID:        id,
		ProfileID: 1,
		URL:       url,
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func countFiles(view View) int {
	n := len(view.Resumes)
	var walk func(nodes map[string]*Node)
	walk = func(nodes map[string]*Node) {
		for _, node := range nodes {
			n += len(node.Files)
			walk(node.Folders)
		}
	}
	walk(view.Folders)
	return n
}

func TestBuildViewRootOnly(t *testing.T) {
	view := BuildView(nil, []Resume{
		testResume(1, "cv.pdf", "http://store/resumes/alice/resumes/123_cv.pdf"),
	})

	if len(view.Resumes) != 1 {
		t.Fatalf("root files = %d, want 1", len(view.Resumes))
	}
	if view.Resumes[0].Filename != "cv.pdf" {
		t.Fatalf("filename = %q, want cv.pdf", view.Resumes[0].Filename)
	}
	if len(view.Folders) != 0 {
		t.Fatalf("folders = %d, want 0", len(view.Folders))
	}
}

func TestBuildViewNestedFolders(t *testing.T) {
	folderRows := []folders.Folder{
		{ID: 3, ProfileID: 1, Name: "CI", Key: "A/B/CI"},
		{ID: 1, ProfileID: 1, Name: "A", Key: "A"},
		{ID: 2, ProfileID: 1, Name: "B", Key: "A/B"},
	}
	resumeRows := []Resume{
		testResume(1, "root.pdf", "http://store/resumes/alice/resumes/1_root.pdf"),
		testResume(2, "a.pdf", "http://store/resumes/alice/resumes/A/2_a.pdf"),
		testResume(3, "b.pdf", "http://store/resumes/alice/resumes/A/B/3_b.pdf"),
		testResume(4, "ci.pdf", "http://store/resumes/alice/resumes/A/B/CI/4_ci.pdf"),
	}

	view := BuildView(folderRows, resumeRows)

	if got := countFiles(view); got != len(resumeRows) {
		t.Fatalf("total files = %d, want %d", got, len(resumeRows))
	}
	if len(view.Resumes) != 1 || view.Resumes[0].Filename != "root.pdf" {
		t.Fatalf("unexpected root files: %+v", view.Resumes)
	}

	a := view.Folders["A"]
	if a == nil || a.FolderKey != "A" {
		t.Fatalf("missing folder A: %+v", view.Folders)
	}
	if len(a.Files) != 1 || a.Files[0].Filename != "a.pdf" {
		t.Fatalf("folder A files: %+v", a.Files)
	}

	b := a.Folders["B"]
	if b == nil || b.FolderKey != "A/B" {
		t.Fatalf("missing folder A/B: %+v", a.Folders)
	}
	if len(b.Files) != 1 || b.Files[0].Filename != "b.pdf" {
		t.Fatalf("folder B files: %+v", b.Files)
	}

	ci := b.Folders["CI"]
	if ci == nil || ci.FolderKey != "A/B/CI" {
		t.Fatalf("missing folder A/B/CI: %+v", b.Folders)
	}
	if len(ci.Files) != 1 || ci.Files[0].Filename != "ci.pdf" {
		t.Fatalf("folder CI files: %+v", ci.Files)
	}
}

func TestBuildViewKeysByDisplayName(t *testing.T) {
	// The folder was renamed after its key was fixed; the tree must use the
	// new name but file membership follows the key inside the URL.
	folderRows := []folders.Folder{
		{ID: 1, ProfileID: 1, Name: "Pipelines-renamed", Key: "Pipelines"},
	}
	resumeRows := []Resume{
		testResume(1, "old.pdf", "http://store/resumes/alice/resumes/Pipelines/1_old.pdf"),
	}

	view := BuildView(folderRows, resumeRows)

	node := view.Folders["Pipelines-renamed"]
	if node == nil {
		t.Fatalf("renamed folder missing: %+v", view.Folders)
	}
	if node.FolderKey != "Pipelines" {
		t.Fatalf("folder key = %q, want Pipelines", node.FolderKey)
	}
	if len(node.Files) != 1 || node.Files[0].Filename != "old.pdf" {
		t.Fatalf("files stayed with key: %+v", node.Files)
	}
	if len(view.Resumes) != 0 {
		t.Fatalf("no files should be at root: %+v", view.Resumes)
	}
}

func TestBuildViewOrphanedFileFallsToRoot(t *testing.T) {
	// The folder in the URL was deleted; its file must land at the root
	// rather than disappear.
	resumeRows := []Resume{
		testResume(1, "kept.pdf", "http://store/resumes/alice/resumes/Gone/1_kept.pdf"),
	}

	view := BuildView(nil, resumeRows)

	if len(view.Resumes) != 1 || view.Resumes[0].Filename != "kept.pdf" {
		t.Fatalf("orphan not at root: %+v", view.Resumes)
	}
	if got := countFiles(view); got != 1 {
		t.Fatalf("total files = %d, want 1", got)
	}
}

func TestBuildViewMalformedURLFallsToRoot(t *testing.T) {
	resumeRows := []Resume{
		testResume(1, "odd.pdf", "http://store/somewhere-else/odd.pdf"),
	}

	view := BuildView(nil, resumeRows)

	if len(view.Resumes) != 1 {
		t.Fatalf("malformed URL not at root: %+v", view.Resumes)
	}
}

func TestFolderKeyFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "root file", url: "http://store/resumes/alice/resumes/1_cv.pdf", want: ""},
		{name: "one level", url: "http://store/resumes/alice/resumes/A/1_cv.pdf", want: "A"},
		{name: "three levels", url: "http://store/resumes/alice/resumes/A/B/C/1_cv.pdf", want: "A/B/C"},
		{name: "no resumes segment", url: "http://store/other/alice/1_cv.pdf", want: ""},
		{name: "unparseable", url: "://bad", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := folderKeyFromURL(tt.url); got != tt.want {
				t.Fatalf("folderKeyFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
