// Package decoder reconstructs a file from an AppleSingle or AppleDouble container
// delivered as a stream of arbitrarily sized writes.
package decoder

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-applefile/internal/interfaces"
	"github.com/deploymenttheory/go-applefile/internal/types"
)

// Options configures the collaborators of a decode session
type Options struct {
	// ResourceForks opens the target's resource fork on the first resource-fork byte.
	// A container with a resource fork fails with ErrResourceForkOpen when it is nil.
	ResourceForks interfaces.ResourceForkOpener

	// Metadata receives Finder info, dates and comment at finalize time.
	// When nil, finalize still audits the forks but writes nothing.
	Metadata interfaces.MetadataSink

	// Logger receives session logs. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Decoder is a single decode session. It is not safe for concurrent use.
type Decoder struct {
	dest    interfaces.DataForkWriter
	ref     types.FileRef
	forks   interfaces.ResourceForkOpener
	catalog interfaces.MetadataSink
	logger  *slog.Logger
	session uuid.UUID

	phase  phase
	offset uint64
	acc    accumulator

	header   interfaces.HeaderReader
	table    interfaces.EntryTableReader
	headerOK bool

	// inferred start of the AppleDouble data fork
	double        bool
	dataForkBound uint64

	part       types.ASEntryIDT
	partLength uint64
	partCount  uint64
	unbounded  bool

	rsrc io.WriteCloser
	meta Metadata

	stats   Stats
	err     error
	closed  bool
	outcome Outcome
}

// New starts a decode session writing the data fork to dest for the file named by ref
func New(dest interfaces.DataForkWriter, ref types.FileRef, opts Options) *Decoder {
	if dest == nil {
		dest = discardFork{}
	}

	session := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d := &Decoder{
		dest:    dest,
		ref:     ref,
		forks:   opts.ResourceForks,
		catalog: opts.Metadata,
		logger:  logger.With("session", session.String(), "file", string(ref)),
		session: session,
		phase:   phaseParsingHeader,
		acc:     newAccumulator(),
	}
	d.acc.reset(types.ASHeaderSize, types.ASHeaderSize)

	return d
}

// Write feeds the next chunk of container bytes. It consumes the whole chunk unless a
// sink fails, in which case the session is failed and every later write is rejected.
func (d *Decoder) Write(p []byte) (int, error) {
	if d.closed {
		return 0, ErrSessionClosed
	}
	if d.err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSessionFailed, d.err)
	}

	written := 0
	for len(p) > 0 {
		n, err := d.step(p)
		written += n
		p = p[n:]
		d.offset += uint64(n)
		d.stats.TotalBytes += uint64(n)

		if err != nil {
			d.fail(err)
			return written, err
		}
	}

	return written, nil
}

// Flush flushes the data-fork destination
func (d *Decoder) Flush() error {
	if d.closed {
		return ErrSessionClosed
	}
	return d.dest.Flush()
}

// SessionID returns the identifier attached to this session's logs
func (d *Decoder) SessionID() uuid.UUID {
	return d.session
}

// Offset returns the position of the cursor in the input stream
func (d *Decoder) Offset() uint64 {
	return d.offset
}

// Stats returns the running totals of the session
func (d *Decoder) Stats() Stats {
	return d.stats
}

// Metadata returns a copy of the metadata received so far
func (d *Decoder) Metadata() Metadata {
	m := d.meta
	m.Comment = append([]byte(nil), d.meta.Comment...)
	return m
}

// Entries returns the entry table, or nil until it has been received
func (d *Decoder) Entries() []types.ASEntryT {
	if d.table == nil {
		return nil
	}
	return d.table.Entries()
}

// Header returns the container header, or nil until it has been received
func (d *Decoder) Header() *types.ASHeaderT {
	if d.header == nil {
		return nil
	}
	return d.header.Header()
}

// Err returns the error that failed the session, if any
func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) setPhase(next phase) {
	if d.phase == next {
		return
	}
	d.logger.Debug("phase transition", "from", d.phase.String(), "to", next.String(), "offset", d.offset)
	d.phase = next
}

func (d *Decoder) fail(err error) {
	d.err = err
	d.logger.Error("decode session failed", "offset", d.offset, "phase", d.phase.String(), "error", err)
	if cerr := d.releaseResourceFork(); cerr != nil {
		d.logger.Warn("failed to release resource fork", "error", cerr)
	}
}

// discardFork is the destination used when none is supplied
type discardFork struct{}

func (discardFork) Write(p []byte) (int, error) { return len(p), nil }
func (discardFork) Flush() error                { return nil }
func (discardFork) Close() error                { return nil }
