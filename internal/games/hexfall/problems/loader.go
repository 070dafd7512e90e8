package problems

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/nya3jp/icfpc2015/internal/games/hexfall/problems/formats"
)

//go:embed samples/*
var samplesFS embed.FS

// Loader handles loading problems from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a loader for problems under root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// NewEmbeddedLoader creates a loader over the built-in sample problems.
func NewEmbeddedLoader() *Loader {
	sub, err := fs.Sub(samplesFS, "samples")
	if err != nil {
		panic(fmt.Sprintf("problems: embedded samples: %v", err))
	}
	return &Loader{Root: "embedded:samples", fsys: sub}
}

// NewLoaderOrEmbedded uses root when set and falls back to the samples.
func NewLoaderOrEmbedded(root string) *Loader {
	if root == "" {
		return NewEmbeddedLoader()
	}
	return NewLoader(root)
}

// LoadAll recursively scans and loads all problem files.
// Files that fail to parse are skipped. Problems are sorted by ID.
func (l *Loader) LoadAll() ([]Problem, error) {
	var problems []Problem

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		problem, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		problems = append(problems, problem)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("problems: walking directory %s: %w", l.Root, err)
	}

	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].ID < problems[j].ID
	})
	return problems, nil
}

// LoadFile loads a single problem file relative to the loader root.
func (l *Loader) LoadFile(name string) (Problem, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Problem{}, fmt.Errorf("problems: reading file %s: %w", name, err)
	}
	return parse(data, name, filepath.Join(l.Root, name))
}

// LoadByID returns the problem with the given ID.
func (l *Loader) LoadByID(id int) (Problem, error) {
	problems, err := l.LoadAll()
	if err != nil {
		return Problem{}, err
	}
	for _, p := range problems {
		if p.ID == id {
			return p, nil
		}
	}
	return Problem{}, fmt.Errorf("problems: %w: id %d in %s", ErrNotFound, id, l.Root)
}

// ListIDs returns all problem IDs in sorted order.
func (l *Loader) ListIDs() ([]int, error) {
	problems, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(problems))
	for i, p := range problems {
		ids[i] = p.ID
	}
	return ids, nil
}

// ReadFile loads a problem from an arbitrary path on disk.
func ReadFile(filePath string) (Problem, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Problem{}, fmt.Errorf("problems: reading file %s: %w", filePath, err)
	}
	return parse(data, filePath, filePath)
}

func parse(data []byte, name, filePath string) (Problem, error) {
	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(name)))
	if err != nil {
		return Problem{}, fmt.Errorf("problems: parsing file %s: %w", name, err)
	}
	p := Problem{Problem: parsed, FilePath: filePath}
	if err := p.Validate(); err != nil {
		return Problem{}, fmt.Errorf("problems: %s: %w", name, err)
	}
	return p, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Problem, error) {
	switch ext {
	case ".json":
		return formats.ParseJSON(data)
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Problem{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
