package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-applefile/internal/types"
)

// ResourceForkLayout selects where resource forks are written
type ResourceForkLayout string

const (
	// ResourceForkSidecar writes the resource fork next to the file as <path>.rsrc
	ResourceForkSidecar ResourceForkLayout = "sidecar"

	// ResourceForkNamed writes the resource fork through the macOS named fork path <path>/..namedfork/rsrc
	ResourceForkNamed ResourceForkLayout = "namedfork"
)

// ForkStore creates data-fork destinations and opens resource forks on a file system
type ForkStore struct {
	fs         afero.Fs
	layout     ResourceForkLayout
	bufferSize int
}

// NewForkStore creates a ForkStore. A bufferSize of zero writes the data fork unbuffered.
func NewForkStore(fs afero.Fs, layout ResourceForkLayout, bufferSize int) (*ForkStore, error) {
	switch layout {
	case ResourceForkSidecar, ResourceForkNamed:
	default:
		return nil, fmt.Errorf("unsupported resource fork layout: %q", layout)
	}

	return &ForkStore{
		fs:         fs,
		layout:     layout,
		bufferSize: bufferSize,
	}, nil
}

// CreateDataFork creates or truncates the file at path and returns it as a data-fork destination
func (s *ForkStore) CreateDataFork(path string) (*DataForkFile, error) {
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create data fork: %w", err)
	}

	dfk := &DataForkFile{file: f, w: f}
	if s.bufferSize > 0 {
		dfk.buf = bufio.NewWriterSize(f, s.bufferSize)
		dfk.w = dfk.buf
	}
	return dfk, nil
}

// ResourceForkPath returns the path the resource fork of ref is written to
func (s *ForkStore) ResourceForkPath(ref types.FileRef) string {
	if s.layout == ResourceForkNamed {
		return string(ref) + "/..namedfork/rsrc"
	}
	return string(ref) + ".rsrc"
}

// OpenResourceFork opens the resource fork of ref for writing from the start
func (s *ForkStore) OpenResourceFork(ref types.FileRef) (io.WriteCloser, error) {
	path := s.ResourceForkPath(ref)
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open resource fork %s: %w", path, err)
	}
	return f, nil
}

// DataForkFile is a data-fork destination backed by a file
type DataForkFile struct {
	file afero.File
	buf  *bufio.Writer
	w    io.Writer
}

// Write writes p to the data fork
func (d *DataForkFile) Write(p []byte) (int, error) {
	return d.w.Write(p)
}

// Flush pushes buffered bytes to the file
func (d *DataForkFile) Flush() error {
	if d.buf == nil {
		return nil
	}
	return d.buf.Flush()
}

// Close flushes and closes the file
func (d *DataForkFile) Close() error {
	return errors.Join(d.Flush(), d.file.Close())
}

// Name returns the path of the underlying file
func (d *DataForkFile) Name() string {
	return d.file.Name()
}
