package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project file looked up in a project directory.
const FileName = "solar.yaml"

// ErrInvalidProject is returned when a project file parses but cannot be used.
var ErrInvalidProject = errors.New("project: invalid project")

// Load reads a project from a YAML file. Sections and fields the file omits
// keep their defaults.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing project YAML: %w", err)
	}
	if p.Insights == "" {
		return nil, fmt.Errorf("%w: insights path is required", ErrInvalidProject)
	}
	if !filepath.IsAbs(p.Insights) {
		p.Insights = filepath.Join(filepath.Dir(path), p.Insights)
	}

	return p, nil
}

// LoadProject loads a project from a project directory.
// It looks for solar.yaml in the given directory.
func LoadProject(projectDir string) (*Project, error) {
	return Load(filepath.Join(projectDir, FileName))
}
