package draft

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// ProjectInfo summarizes one draft directory for listings.
type ProjectInfo struct {
	Name         string
	Path         string
	ID           string
	Duration     float64
	ModifiedTime int64
	VideoCount   int
}

// FormattedDuration renders the duration as M:SS.
func (i ProjectInfo) FormattedDuration() string {
	total := int(i.Duration)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// DraftsDirEnv overrides the auto-detected drafts directory when set.
const DraftsDirEnv = "CAPCUT_DRAFTS_DIR"

// DefaultDraftsDir returns the editor's drafts directory for the current OS,
// or an empty string when none exists.
func DefaultDraftsDir() string {
	if dir := os.Getenv(DraftsDirEnv); dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{
			filepath.Join(home, "Movies", "CapCut", "User Data", "Projects", "com.lveditor.draft"),
		}
	case "windows":
		candidates = []string{
			filepath.Join(home, "AppData", "Local", "CapCut", "User Data", "Projects", "com.lveditor.draft"),
		}
	default:
		candidates = []string{
			filepath.Join(home, ".capcut", "drafts"),
			filepath.Join(home, ".local", "share", "CapCut", "drafts"),
			filepath.Join(home, "CapCut", "drafts"),
		}
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

// ListProjects scans draftsDir and returns its projects, newest first.
// Directories without a meta document, or with unreadable documents, are
// skipped. With requireContent set, directories missing a content document
// are skipped too.
func ListProjects(draftsDir string, requireContent bool) ([]ProjectInfo, error) {
	entries, err := os.ReadDir(draftsDir)
	if err != nil {
		return nil, fmt.Errorf("read drafts dir: %w", err)
	}

	var projects []ProjectInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folder := filepath.Join(draftsDir, entry.Name())

		var meta map[string]any
		if err := readJSONMap(filepath.Join(folder, MetaFileName), &meta); err != nil {
			continue
		}

		info := ProjectInfo{
			Name:         mapString(meta, "draft_name"),
			Path:         folder,
			ID:           mapString(meta, "draft_id"),
			Duration:     ToSeconds(mapInt64(meta, "tm_duration")),
			ModifiedTime: mapInt64(meta, "tm_draft_modified"),
		}
		if info.Name == "" {
			info.Name = "Untitled"
		}
		if info.ID == "" {
			info.ID = entry.Name()
		}

		hasContent := false
		for _, name := range []string{InfoFileName, ContentFileName} {
			var content map[string]any
			if err := readJSONMap(filepath.Join(folder, name), &content); err != nil {
				continue
			}
			hasContent = true
			info.VideoCount = len(mapChildSlice(mapChild(content, "materials"), "videos"))
			break
		}
		if requireContent && !hasContent {
			continue
		}

		projects = append(projects, info)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].ModifiedTime > projects[j].ModifiedTime
	})
	return projects, nil
}

// FindProjectByName returns the newest project whose name matches. Without
// exact, the match is a case-insensitive substring match. An empty string
// means no match.
func FindProjectByName(draftsDir, name string, exact bool) (string, error) {
	projects, err := ListProjects(draftsDir, false)
	if err != nil {
		return "", err
	}

	lower := strings.ToLower(name)
	for _, p := range projects {
		if exact {
			if p.Name == name {
				return p.Path, nil
			}
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), lower) {
			return p.Path, nil
		}
	}
	return "", nil
}

// FindProjectByID resolves a project folder by its id. Folders are named by
// the project id, so this is a direct lookup.
func FindProjectByID(draftsDir, projectID string) (string, error) {
	folder := filepath.Join(draftsDir, projectID)
	if _, err := os.Stat(filepath.Join(folder, MetaFileName)); err != nil {
		return "", nil
	}
	return folder, nil
}
