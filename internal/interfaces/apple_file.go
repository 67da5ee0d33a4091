package interfaces

import (
	"io"
	"time"

	"github.com/deploymenttheory/go-applefile/internal/types"
)

// HeaderReader provides methods for reading an AppleSingle/AppleDouble header
type HeaderReader interface {
	// Magic returns the magic number
	Magic() uint32

	// Version returns the format version
	Version() uint32

	// NumEntries returns the number of entry descriptors following the header
	NumEntries() uint16

	// IsAppleSingle checks if the magic number is the AppleSingle magic
	IsAppleSingle() bool

	// IsAppleDouble checks if the magic number is the AppleDouble magic
	IsAppleDouble() bool

	// IsValid checks magic, version, filler and entry count together
	IsValid() bool

	// Header returns the decoded header
	Header() *types.ASHeaderT
}

// EntryTableReader provides methods for reading the entry descriptor table
type EntryTableReader interface {
	// Entries returns the decoded entry descriptors in table order
	Entries() []types.ASEntryT

	// Find returns the first entry with the given id
	Find(id types.ASEntryIDT) (types.ASEntryT, bool)

	// EntryAt returns the first entry starting at offset with a nonzero length
	EntryAt(offset uint64) (types.ASEntryT, bool)

	// NextOffsetAfter returns the smallest nonzero-length entry offset strictly after offset
	NextOffsetAfter(offset uint64) (uint64, bool)

	// DataForkBound returns the highest offset+length over all entries
	DataForkBound() uint64
}

// FileDatesReader provides methods for reading a file dates record
type FileDatesReader interface {
	// Dates returns the raw record
	Dates() types.ASFileDatesT

	// Created returns the creation date
	Created() time.Time

	// Modified returns the modification date
	Modified() time.Time

	// BackedUp returns the last backup date
	BackedUp() time.Time

	// Accessed returns the last access date
	Accessed() time.Time
}

// FinderInfoReader provides methods for reading Finder info and extended Finder info
type FinderInfoReader interface {
	// FinderInfo returns the decoded Finder info record
	FinderInfo() types.FInfoT

	// ExtendedFinderInfo returns the extended Finder info bytes
	ExtendedFinderInfo() types.FXInfoT

	// FileType returns the four character type code
	FileType() string

	// Creator returns the four character creator code
	Creator() string

	// Flags returns the Finder flags
	Flags() uint16
}

// DataForkWriter is the destination of data-fork bytes.
// In pass-through mode it receives the whole input unchanged.
type DataForkWriter interface {
	io.Writer

	// Flush pushes buffered bytes to the underlying storage
	Flush() error

	// Close flushes and releases the destination
	Close() error
}

// ResourceForkOpener opens the resource fork of a target file for writing
type ResourceForkOpener interface {
	// OpenResourceFork returns a writer positioned at the start of the resource fork
	OpenResourceFork(ref types.FileRef) (io.WriteCloser, error)
}

// MetadataSink reads and writes host catalog metadata for a target file
type MetadataSink interface {
	// GetMetadata returns the current catalog record of the file
	GetMetadata(ref types.FileRef) (*types.CatalogInfo, error)

	// SetMetadata replaces the catalog record of the file
	SetMetadata(ref types.FileRef, info *types.CatalogInfo) error

	// SupportsComments reports whether the volume holding the file can store comments
	SupportsComments(ref types.FileRef) bool

	// SetComment attaches a comment to the file
	SetComment(ref types.FileRef, comment []byte) error
}
