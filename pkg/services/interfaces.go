package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/deploymenttheory/go-applefile/internal/decoder"
)

// ErrServiceNotAvailable is returned when a service cannot be created
var ErrServiceNotAvailable = errors.New("service not available")

// DecodeJob names one container to decode and the file to decode it into
type DecodeJob struct {
	Source string
	Target string
}

// DecodeResult describes one finished decode session
type DecodeResult struct {
	Source           string
	Target           string
	ResourceForkPath string
	SessionID        string
	Outcome          decoder.Outcome
	Stats            decoder.Stats
	Metadata         decoder.Metadata
	Duration         time.Duration
	Err              error
}

// EntryInfo describes one entry of a container's entry table
type EntryInfo struct {
	ID     uint32
	Name   string
	Offset uint32
	Length uint32
}

// ContainerReport describes a container without decoding it
type ContainerReport struct {
	Path             string
	Size             int64
	Layout           string
	Magic            uint32
	Version          uint32
	Entries          []EntryInfo
	DataForkSize     uint64
	ResourceForkSize uint64

	HasFinderInfo bool
	FileType      string
	Creator       string
	FinderFlags   uint16

	HasDates bool
	Created  time.Time
	Modified time.Time
	BackedUp time.Time
	Accessed time.Time

	Comment string
}

// DecodeService decodes AppleSingle/AppleDouble containers into files
type DecodeService interface {
	// Decode streams src into a new file at target
	Decode(ctx context.Context, src io.Reader, target string) (*DecodeResult, error)

	// DecodeFile decodes the container at source into target
	DecodeFile(ctx context.Context, source, target string) (*DecodeResult, error)

	// DecodeBatch decodes independent jobs concurrently, one session per job.
	// Results are returned in job order; per-job failures are reported in DecodeResult.Err.
	DecodeBatch(ctx context.Context, jobs []DecodeJob, workers int) []*DecodeResult
}

// InspectService reports on the structure of containers
type InspectService interface {
	// Inspect reads the header, entry table and small metadata parts of a container
	Inspect(ctx context.Context, r io.ReaderAt, size int64) (*ContainerReport, error)

	// InspectFile inspects the container at path
	InspectFile(ctx context.Context, path string) (*ContainerReport, error)
}
