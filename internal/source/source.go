// Package source manages the on-disk file hierarchy of a crate: opening
// files lazily and buffering their content once read, per spec.md §5's
// resource discipline. Grounded on original_source/src/source.rs.
package source

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sunshine-lang/sunc/internal/diag"
	"github.com/sunshine-lang/sunc/internal/itempath"
)

// state distinguishes an opened-but-unread file from one whose contents
// have been buffered into memory.
type state int

const (
	opened state = iota
	loaded
)

// File is a single source file. Its content is buffered only once Read is
// called; before that only its handle is held open.
type File struct {
	path  string
	state state
	file  *os.File
	text  string
}

func newFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, diag.PathNotFound{Path: path}
		}
		if os.IsPermission(err) {
			return nil, diag.PermissionDenied{Path: path}
		}
		return nil, diag.SourceIOError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, diag.PathNotAFile{Path: path}
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, diag.PermissionDenied{Path: path}
		}
		return nil, diag.SourceIOError{Path: path, Err: err}
	}
	return &File{path: path, state: opened, file: f}, nil
}

// Path returns the file's path on disk.
func (f *File) Path() string { return f.path }

// Read returns the file's full text, reading and buffering it on first
// call and releasing the underlying descriptor immediately afterwards.
func (f *File) Read() (string, error) {
	if f.state == loaded {
		return f.text, nil
	}
	defer f.file.Close()
	b, err := io.ReadAll(f.file)
	if err != nil {
		return "", diag.SourceIOError{Path: f.path, Err: err}
	}
	f.text = string(b)
	f.state = loaded
	f.file = nil
	return f.text, nil
}

// Map holds the whole source-file hierarchy of a compilation. Insertion
// is the only mutation; once a path is inserted its File value is
// immutable, matching spec.md §5's "insertion-only" shared-state note.
type Map struct {
	mu    sync.Mutex
	root  string
	files map[itempath.Absolute]*File
}

// NewMap creates a Map rooted at the directory containing the crate's
// root file, and inserts that root file under the crate's own absolute
// path (the empty-rest path). It returns the map and the opened root
// file.
func NewMap(rootFile string, crateName string) (*Map, *File, error) {
	dir := filepath.Dir(rootFile)
	m := &Map{root: dir, files: make(map[itempath.Absolute]*File)}
	crateRoot := itempath.Absolute{Crate: crateName}
	f, err := newFile(rootFile)
	if err != nil {
		return nil, nil, err
	}
	m.files[crateRoot] = f
	return m, f, nil
}

// Insert opens (without reading) the file for the module at path,
// relative to the map's root directory, as "<dir>/<segments>.sun" per
// spec.md §6's file layout rule. Re-inserting an already-known path
// returns the existing File.
func (m *Map) Insert(path itempath.Absolute) (*File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[path]; ok {
		return f, nil
	}
	rel := filepath.Join(path.Rest()...) + ".sun"
	full := filepath.Join(m.root, rel)
	f, err := newFile(full)
	if err != nil {
		return nil, err
	}
	m.files[path] = f
	return f, nil
}

// Get returns the already-inserted file at path, if any.
func (m *Map) Get(path itempath.Absolute) (*File, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[path]
	return f, ok
}
