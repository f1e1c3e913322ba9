package levels

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Dir is the on-disk directory whose files override the embedded layouts.
const Dir = "levels"

// Load returns the raw layout file. A copy under Dir wins over the embedded
// one so layouts can be edited while the game runs.
func Load(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return LevelsFS.ReadFile(clean)
}

// LoadShelter reads, decodes and validates a shelter layout.
func LoadShelter(name string) (*Shelter, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	s, err := ParseShelter(data)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	return s, nil
}

// ParseShelter decodes and validates a shelter layout document.
func ParseShelter(data []byte) (*Shelter, error) {
	s := DefaultShelter()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// IsLevelFile reports whether path names a layout file.
func IsLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return (ext == ".yaml" || ext == ".yml") && filepath.Base(filepath.Dir(path)) == Dir
}

// Name maps a path or bare name to the name Load expects.
func Name(path string) string {
	return cleanLevelPath(filepath.Base(path))
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, Dir+"/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

var errNoFloors = errors.New("shelter needs at least one floor")
