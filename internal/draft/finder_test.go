package draft

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProject(t *testing.T, draftsDir, name string, modified int64, withContent bool) string {
	t.Helper()

	d := NewDraft(name, 1080, 1920)
	matID := d.AddVideoMaterial("/v.mp4", 30, 1080, 1920)
	d.AddVideoSegment(matID, 0, 0, 30)

	dir, err := d.Save(draftsDir)
	if err != nil {
		t.Fatalf("save %s: %v", name, err)
	}

	p, err := OpenProject(dir)
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	// Save stamps the current time, so write the pinned value directly.
	p.meta["tm_draft_modified"] = modified
	if err := writeJSONFile(p.metaPath, p.meta); err != nil {
		t.Fatalf("pin modified time: %v", err)
	}

	if !withContent {
		if err := os.Remove(filepath.Join(dir, ContentFileName)); err != nil {
			t.Fatalf("remove content: %v", err)
		}
	}
	return dir
}

func TestListProjectsSortedAndFiltered(t *testing.T) {
	draftsDir := t.TempDir()
	writeProject(t, draftsDir, "older", 100, true)
	writeProject(t, draftsDir, "newest", 300, true)
	writeProject(t, draftsDir, "headless", 200, false)

	// A corrupted folder is skipped, not fatal.
	broken := filepath.Join(draftsDir, "broken")
	if err := os.MkdirAll(broken, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(broken, MetaFileName), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	projects, err := ListProjects(draftsDir, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("got %d projects, want 3", len(projects))
	}
	wantOrder := []string{"newest", "headless", "older"}
	for i, want := range wantOrder {
		if projects[i].Name != want {
			t.Errorf("projects[%d] = %q, want %q", i, projects[i].Name, want)
		}
	}
	if projects[0].VideoCount != 1 {
		t.Errorf("video count = %d, want 1", projects[0].VideoCount)
	}

	withContent, err := ListProjects(draftsDir, true)
	if err != nil {
		t.Fatalf("list with content: %v", err)
	}
	if len(withContent) != 2 {
		t.Fatalf("got %d projects with content, want 2", len(withContent))
	}
	for _, p := range withContent {
		if p.Name == "headless" {
			t.Error("requireContent kept a project without a content document")
		}
	}
}

func TestFindProjectByName(t *testing.T) {
	draftsDir := t.TempDir()
	wantDir := writeProject(t, draftsDir, "Interview Episode 4", 100, true)
	writeProject(t, draftsDir, "Other", 50, true)

	tests := []struct {
		name  string
		query string
		exact bool
		want  string
	}{
		{"substring", "episode", false, wantDir},
		{"exact hit", "Interview Episode 4", true, wantDir},
		{"exact miss", "episode", true, ""},
		{"no match", "vacation", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindProjectByName(draftsDir, tt.query, tt.exact)
			if err != nil {
				t.Fatalf("find: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindProjectByID(t *testing.T) {
	draftsDir := t.TempDir()
	dir := writeProject(t, draftsDir, "p", 1, true)
	id := filepath.Base(dir)

	got, err := FindProjectByID(draftsDir, id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != dir {
		t.Errorf("got %q, want %q", got, dir)
	}

	missing, err := FindProjectByID(draftsDir, "NOPE")
	if err != nil {
		t.Fatalf("find missing: %v", err)
	}
	if missing != "" {
		t.Errorf("got %q for unknown id", missing)
	}
}

func TestFormattedDuration(t *testing.T) {
	info := ProjectInfo{Duration: 83.9}
	if got := info.FormattedDuration(); got != "1:23" {
		t.Errorf("got %q, want 1:23", got)
	}
}

func TestDefaultDraftsDirEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DraftsDirEnv, dir)
	if got := DefaultDraftsDir(); got != dir {
		t.Errorf("got %q, want %q", got, dir)
	}
}
