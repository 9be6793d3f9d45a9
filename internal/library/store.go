// Package library loads and saves the on-disk library: a set of root
// directories holding one decomposed JSON file per saved object plus its
// sibling include files.
package library

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/kibrary/kibrary/internal/atomicfile"
	"github.com/kibrary/kibrary/internal/decompose"
	"github.com/kibrary/kibrary/internal/model"
	"github.com/kibrary/kibrary/internal/paths"
)

// Issue is a non-fatal problem collected during a library load: an unreadable
// or unparseable file, or a duplicate object id across files or roots.
type Issue struct {
	Path string
	Err  error

	// Duplicate marks an id collision rather than a parse failure.
	Duplicate bool
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Err.Error()
	}
	return i.Path + ": " + i.Err.Error()
}

// Library is the full set of saved objects merged from one or more root
// directories. The first root is the target for newly created objects; all
// roots are searched when resolving an id.
type Library struct {
	roots   []string
	objects map[string]*model.Object

	// Issues collects per-file load failures and id collisions. A collision
	// between roots is resolved "later root wins", but never silently.
	Issues []Issue
}

// New returns an empty library over the given roots. Nothing is read from
// disk; callers Put objects in themselves.
func New(roots []string) *Library {
	return &Library{
		roots:   roots,
		objects: map[string]*model.Object{},
	}
}

// Load reads every root directory recursively and merges the objects found.
// Roots are read concurrently (the load phase is read-only); merging is
// performed in root order so collision resolution is deterministic. A root
// that cannot be opened fails the whole load; individual bad files are
// collected as Issues and skipped.
func Load(roots []string) (*Library, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("no library roots given")
	}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("open library root: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("library root %s is not a directory", root)
		}
	}

	type rootResult struct {
		objects []*model.Object
		issues  []Issue
		err     error
	}
	results := make([]rootResult, len(roots))

	var wg sync.WaitGroup
	for i, root := range roots {
		wg.Add(1)
		go func(i int, root string) {
			defer wg.Done()
			objs, issues, err := loadRoot(root)
			results[i] = rootResult{objects: objs, issues: issues, err: err}
		}(i, root)
	}
	wg.Wait()

	lib := &Library{
		roots:   roots,
		objects: map[string]*model.Object{},
	}
	for _, res := range results {
		if res.err != nil {
			return nil, res.err
		}
		lib.Issues = append(lib.Issues, res.issues...)
		for _, obj := range res.objects {
			if prev, ok := lib.objects[obj.ID]; ok {
				lib.Issues = append(lib.Issues, Issue{
					Path:      obj.Path,
					Err:       fmt.Errorf("duplicate object id %s (overrides %s)", obj.ID, prev.Path),
					Duplicate: true,
				})
			}
			lib.objects[obj.ID] = obj
		}
	}
	return lib, nil
}

// loadRoot walks one root directory and loads every root object file in
// lexical order. Include files are skipped here; they are pulled in by their
// owning object.
func loadRoot(root string) ([]*model.Object, []Issue, error) {
	var objects []*model.Object
	var issues []Issue

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !paths.IsObjectFile(path) {
			return nil
		}

		obj, err := LoadFile(path)
		if err != nil {
			issues = append(issues, Issue{Path: path, Err: err})
			return nil
		}
		objects = append(objects, obj)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk library root %s: %w", root, err)
	}
	return objects, issues, nil
}

// LoadFile reads one decomposed object file, resolves its include references
// against sibling files, and normalizes the content.
func LoadFile(path string) (*model.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec model.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse object file: %w", err)
	}

	obj, err := model.New(rec)
	if err != nil {
		return nil, err
	}
	obj.Path = path

	if err := decompose.ResolveIncludes(obj, path); err != nil {
		return nil, err
	}
	if err := decompose.Normalize(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// Roots returns the configured root directories.
func (l *Library) Roots() []string { return l.roots }

// FirstRoot returns the directory that receives newly created objects.
func (l *Library) FirstRoot() string { return l.roots[0] }

// Get returns the object with the given id, if present.
func (l *Library) Get(id string) (*model.Object, bool) {
	obj, ok := l.objects[id]
	return obj, ok
}

// Len returns the number of objects in the library.
func (l *Library) Len() int { return len(l.objects) }

// Put inserts or replaces an object in the in-memory library.
func (l *Library) Put(obj *model.Object) {
	l.objects[obj.ID] = obj
}

// Objects returns all objects sorted by id.
func (l *Library) Objects() []*model.Object {
	out := make([]*model.Object, 0, len(l.objects))
	for _, obj := range l.objects {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Save writes an object and its includes to disk. If dir is non-empty the
// object is new: its file name is derived from the id and the directory is
// created as needed. Otherwise the object is rewritten in place at its
// retained path. All writes are atomic.
func (l *Library) Save(obj *model.Object, dir string) error {
	path := obj.Path
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
		path = filepath.Join(dir, paths.ObjectFileName(obj.ID))
	}
	if path == "" {
		return fmt.Errorf("object %s has no path and no target directory", obj.ID)
	}

	set, err := decompose.PrepareSave(obj)
	if err != nil {
		return err
	}

	for name, data := range set.Includes {
		if err := atomicfile.WriteFile(paths.IncludeFileName(path, name), data, 0); err != nil {
			return fmt.Errorf("write include %s: %w", name, err)
		}
	}
	if err := atomicfile.WriteFile(path, set.Root, 0); err != nil {
		return fmt.Errorf("write object: %w", err)
	}

	obj.Path = path
	return nil
}
