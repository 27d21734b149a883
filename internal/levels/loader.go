package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vovakirdan/chicago-loop/internal/levels/formats"
)

// Loader handles loading custom levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Files that fail to parse or validate are skipped.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(formats.FormatExtensions(), ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			return nil
		}

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sortLevels(levels)
	return levels, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(formats.FormatExtensions(), ext) {
		return Level{}, fmt.Errorf("levels: unsupported extension: %s", ext)
	}

	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}

	level := Level{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Description: parsed.Description,
		Item:        parsed.Item,
		Order:       parsed.Order,
		Board:       parsed.Board,
		Start:       parsed.Start,
		Goal:        parsed.Goal,
		FilePath:    path,
	}
	if parsed.HasSolution {
		level.Solution = &Solution{Pattern: parsed.SolutionSeed, Rules: parsed.SolutionRule}
	}

	if err := level.Validate(); err != nil {
		return Level{}, err
	}
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	if lvl, ok := Find(levels, id); ok {
		return lvl, nil
	}
	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}
