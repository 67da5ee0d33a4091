package decoder

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-applefile/internal/types"
)

// Finish ends the session: it closes the destination and the resource fork, then writes
// the received metadata to the host catalog if, and only if, every fork arrived complete.
// An incomplete transfer is reported through the outcome, not as an error.
func (d *Decoder) Finish() (Outcome, error) {
	if d.closed {
		return d.outcome, ErrSessionClosed
	}
	d.closed = true

	var errs []error

	if d.err == nil && d.acc.pending() {
		d.logger.Debug("input ended inside a record", "phase", d.phase.String(), "offset", d.offset)
	}

	// Input shorter than a header is not a container.
	if d.err == nil && d.phase == phaseParsingHeader {
		d.stats.Layout = LayoutPassThrough
		d.setPhase(phasePassThrough)
		if d.acc.have > 0 {
			if _, err := d.writeData(d.acc.bytes()); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if err := d.dest.Close(); err != nil {
		errs = append(errs, fmt.Errorf("%w: failed to close data fork: %w", ErrDestinationWrite, err))
	}
	if err := d.releaseResourceFork(); err != nil {
		errs = append(errs, fmt.Errorf("%w: failed to close resource fork: %w", ErrDestinationWrite, err))
	}

	switch {
	case d.err != nil || len(errs) > 0:
		d.outcome = OutcomeFailed
	case d.stats.Layout == LayoutPassThrough:
		d.outcome = OutcomePassThrough
	case !d.headerOK:
		d.logger.Info("entry table incomplete, metadata not written", "bytes", d.stats.TotalBytes)
		d.outcome = OutcomeIncomplete
	case !d.forksComplete():
		d.logger.Info("forks incomplete, metadata not written",
			"data_fork_bytes", d.stats.DataForkBytes,
			"resource_fork_bytes", d.stats.ResourceForkBytes)
		d.outcome = OutcomeIncomplete
	default:
		if err := d.commit(); err != nil {
			errs = append(errs, err)
			d.outcome = OutcomeFailed
		} else {
			d.outcome = OutcomeCommitted
		}
	}

	d.logger.Info("decode session finished", "outcome", d.outcome.String(), "bytes", d.stats.TotalBytes)
	return d.outcome, errors.Join(errs...)
}

// Close finishes the session and discards the outcome. Closing twice is a no-op.
func (d *Decoder) Close() error {
	if d.closed {
		return nil
	}
	_, err := d.Finish()
	return err
}

// Abort ends the session without touching metadata, releasing every handle it holds
func (d *Decoder) Abort() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.outcome = OutcomeAborted

	var errs []error
	if err := d.releaseResourceFork(); err != nil {
		errs = append(errs, err)
	}
	if err := d.dest.Close(); err != nil {
		errs = append(errs, err)
	}

	d.logger.Info("decode session aborted", "offset", d.offset)
	return errors.Join(errs...)
}

// Outcome returns the result of Finish, valid once the session is closed
func (d *Decoder) Outcome() Outcome {
	return d.outcome
}

func (d *Decoder) releaseResourceFork() error {
	if d.rsrc == nil {
		return nil
	}
	err := d.rsrc.Close()
	d.rsrc = nil
	return err
}

// forksComplete checks both forks against the bytes written.
// A missing data-fork entry, as in AppleDouble, counts as complete.
// The resource fork must be declared, even with zero length.
func (d *Decoder) forksComplete() bool {
	if entry, ok := d.table.Find(types.ASEntryDataFork); ok && d.stats.DataForkBytes != uint64(entry.Length) {
		return false
	}
	entry, ok := d.table.Find(types.ASEntryResourceFork)
	return ok && d.stats.ResourceForkBytes == uint64(entry.Length)
}

// commit overlays the received metadata on the host catalog record
func (d *Decoder) commit() error {
	if d.catalog == nil {
		return nil
	}

	info, err := d.catalog.GetMetadata(d.ref)
	if err != nil {
		return fmt.Errorf("%w: failed to read catalog info: %w", ErrMetadataWrite, err)
	}

	applyMetadata(info, &d.meta)

	if err := d.catalog.SetMetadata(d.ref, info); err != nil {
		return fmt.Errorf("%w: failed to write catalog info: %w", ErrMetadataWrite, err)
	}

	if d.meta.HasComment && d.catalog.SupportsComments(d.ref) {
		if err := d.catalog.SetComment(d.ref, d.meta.Comment); err != nil {
			return fmt.Errorf("%w: failed to set comment: %w", ErrMetadataWrite, err)
		}
	}

	d.logger.Info("metadata committed",
		"finder_info", d.meta.HasFinderInfo,
		"dates", d.meta.HasDates,
		"comment", d.meta.HasComment)
	return nil
}

// applyMetadata overlays received Finder info and dates on a catalog record.
// Finder flags owned by the Finder itself are cleared rather than imported.
func applyMetadata(info *types.CatalogInfo, meta *Metadata) {
	if meta.HasFinderInfo {
		info.FinderInfo = meta.FinderInfo
		info.ExtendedFinderInfo = meta.ExtendedFinderInfo
		flags := binary.BigEndian.Uint16(info.FinderInfo[8:10]) & types.FinderFlagsImportMask
		binary.BigEndian.PutUint16(info.FinderInfo[8:10], flags)
	}

	if meta.HasDates {
		info.CreateDate = uint32(meta.Dates.Create) - types.ConvertTime
		info.ModifyDate = uint32(meta.Dates.Modify) - types.ConvertTime
		info.BackupDate = uint32(meta.Dates.Backup) - types.ConvertTime
	}
}
