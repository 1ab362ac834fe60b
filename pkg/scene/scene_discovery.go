package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sppm/pkg/log"
)

var logger = log.New("scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Name accepted by Load
	DisplayName string `json:"displayName"`        // Human-readable name
	Description string `json:"description"`        // Optional description
	Type        string `json:"type"`               // "builtin" or "json"
	FilePath    string `json:"filePath,omitempty"` // Path to the scene file (json type only)
}

// sceneFileExt is the extension of scene files
const sceneFileExt = ".json"

func isSceneFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), sceneFileExt)
}

// sceneFileID returns the file name without directory or extension
func sceneFileID(path string) string {
	filename := filepath.Base(path)
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// ListSceneFiles scans dir for scene files. A missing directory yields no scenes.
// Files whose header cannot be parsed are skipped with a warning.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*"+sceneFileExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			logger.Warningf("failed to parse metadata for %s: %v", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseSceneMetadata reads the name and description of a scene file without
// building it. The display name falls back to the file name.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	id := sceneFileID(filePath)
	info := SceneInfo{
		ID:          filePath,
		DisplayName: titleCase(id),
		Type:        "json",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, err
	}
	if header.Name != "" {
		info.DisplayName = header.Name
	}
	info.Description = header.Description
	return info, nil
}

// ListAllScenes returns the built-in scenes followed by the scene files in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	var all []SceneInfo
	for _, name := range List() {
		s := builtins[name]()
		all = append(all, SceneInfo{
			ID:          name,
			DisplayName: titleCase(s.Name),
			Description: s.Description,
			Type:        "builtin",
		})
	}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}
	return append(all, files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
