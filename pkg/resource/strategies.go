package resource

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// FS looks identifiers up in a file system such as an embed.FS.
// One leading "/" is ignored since fs paths are always relative.
type FS struct {
	FS fs.FS
}

func (s FS) Open(id string) (io.ReadCloser, bool, error) {
	name := strings.TrimPrefix(id, "/")
	if s.FS == nil || !fs.ValidPath(name) {
		return nil, false, nil
	}
	f, err := s.FS.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if info, err := f.Stat(); err == nil && info.IsDir() {
		f.Close()
		return nil, false, nil
	}
	return f, true, nil
}

// Bytes serves in-memory resources keyed by their exact identifier.
type Bytes map[string][]byte

func (s Bytes) Open(id string) (io.ReadCloser, bool, error) {
	data, ok := s[id]
	if !ok {
		return nil, false, nil
	}
	return io.NopCloser(bytes.NewReader(data)), true, nil
}

// Dir reads identifiers from the file system.
//
// One leading separator is stripped and the rest is read relative to Root
// (the working directory when empty). An absolute identifier that is not found
// that way is then tried as given.
type Dir struct {
	Root string
}

func (s Dir) Open(id string) (io.ReadCloser, bool, error) {
	if id == "" {
		return nil, false, nil
	}
	stripped := strings.TrimPrefix(id, "/")
	if len(stripped) == len(id) {
		stripped = strings.TrimPrefix(id, string(filepath.Separator))
	}

	candidates := []string{filepath.Join(s.Root, filepath.FromSlash(stripped))}
	if filepath.IsAbs(id) {
		candidates = append(candidates, id)
	}

	for _, path := range candidates {
		rc, ok, err := openFile(path)
		if err != nil || ok {
			return rc, ok, err
		}
	}
	return nil, false, nil
}

func openFile(path string) (io.ReadCloser, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, false, nil
		}
		return nil, false, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, false, err
	}
	if info.IsDir() {
		f.Close()
		return nil, false, nil
	}
	return f, true, nil
}
