package decoder

import (
	"fmt"
	"io"

	applefile "github.com/deploymenttheory/go-applefile/internal/parsers/apple_file"
	"github.com/deploymenttheory/go-applefile/internal/types"
)

// step runs the current phase against p and returns how many bytes it consumed.
// Lookup consumes nothing when it finds a part; every other phase consumes at least one byte.
func (d *Decoder) step(p []byte) (int, error) {
	switch d.phase {
	case phaseParsingHeader:
		return d.parseHeader(p)
	case phaseParsingEntryTable:
		return d.parseEntryTable(p)
	case phaseLookupPart:
		return d.lookupPart(p), nil
	case phaseParsingMetadataPart:
		return d.parseMetadataPart(p), nil
	case phaseSkippingPart:
		return d.skipPart(p), nil
	case phaseWritingDataFork:
		return d.writeDataFork(p)
	case phaseWritingResourceFork:
		return d.writeResourceFork(p)
	case phasePassThrough:
		return d.writeData(p)
	default:
		return 0, fmt.Errorf("invalid decoder phase %v", d.phase)
	}
}

func (d *Decoder) parseHeader(p []byte) (int, error) {
	n := d.acc.fill(p)
	if !d.acc.complete() {
		return n, nil
	}

	header, err := applefile.NewHeaderReader(d.acc.bytes())
	if err != nil {
		return n, fmt.Errorf("failed to read header: %w", err)
	}

	if !header.IsValid() {
		d.logger.Info("input is not an AppleSingle/AppleDouble container, passing through",
			"magic", fmt.Sprintf("%#08x", header.Magic()),
			"version", fmt.Sprintf("%#08x", header.Version()),
			"entries", header.NumEntries())
		d.stats.Layout = LayoutPassThrough
		d.setPhase(phasePassThrough)
		if _, err := d.writeData(d.acc.bytes()); err != nil {
			return n, err
		}
		return n, nil
	}

	d.header = header
	if header.IsAppleDouble() {
		d.stats.Layout = LayoutAppleDouble
	} else {
		d.stats.Layout = LayoutAppleSingle
	}

	size := uint64(header.NumEntries()) * types.ASEntrySize
	d.acc.reset(size, int(size))
	d.setPhase(phaseParsingEntryTable)

	return n, nil
}

func (d *Decoder) parseEntryTable(p []byte) (int, error) {
	n := d.acc.fill(p)
	if !d.acc.complete() {
		return n, nil
	}

	table, err := applefile.NewEntryTableReader(d.acc.bytes(), d.header.NumEntries())
	if err != nil {
		return n, fmt.Errorf("failed to read entry table: %w", err)
	}

	d.table = table
	d.headerOK = true
	d.stats.Entries = len(table.Entries())
	if d.header.IsAppleDouble() {
		d.double = true
		d.dataForkBound = table.DataForkBound()
	}

	d.logger.Debug("entry table parsed", "layout", d.stats.Layout.String(), "entries", d.stats.Entries, "data_fork_bound", d.dataForkBound)
	d.acc.reset(0, 0)
	d.setPhase(phaseLookupPart)

	return n, nil
}

// lookupPart selects the part starting at the cursor. When no part starts there, it
// discards the bytes up to the nearest place one could start, which has the same
// effect as advancing the cursor a byte at a time.
func (d *Decoder) lookupPart(p []byte) int {
	if entry, ok := d.table.EntryAt(d.offset); ok {
		d.beginPart(entry)
		return 0
	}

	if d.double && d.offset == d.dataForkBound {
		d.part = types.ASEntryDataFork
		d.partLength = 0
		d.partCount = 0
		d.unbounded = true
		d.logger.Debug("data fork follows entries", "offset", d.offset)
		d.setPhase(phaseWritingDataFork)
		return 0
	}

	target, ok := d.table.NextOffsetAfter(d.offset)
	if d.double && d.dataForkBound > d.offset && (!ok || d.dataForkBound < target) {
		target, ok = d.dataForkBound, true
	}

	n := len(p)
	if ok && target-d.offset < uint64(n) {
		n = int(target - d.offset)
	}
	d.stats.StrayBytes += uint64(n)

	return n
}

func (d *Decoder) beginPart(entry types.ASEntryT) {
	d.part = entry.EntryID
	d.partLength = uint64(entry.Length)
	d.partCount = 0
	d.unbounded = false

	switch entry.EntryID {
	case types.ASEntryDataFork:
		d.setPhase(phaseWritingDataFork)
	case types.ASEntryResourceFork:
		d.setPhase(phaseWritingResourceFork)
	case types.ASEntryComment, types.ASEntryFileDates, types.ASEntryFinderInfo:
		d.acc.reset(d.partLength, metadataKeep(entry.EntryID, entry.Length))
		d.setPhase(phaseParsingMetadataPart)
	default:
		d.setPhase(phaseSkippingPart)
	}
}

// remaining returns how many bytes of p belong to the bounded active part
func (d *Decoder) remaining(p []byte) int {
	n := len(p)
	if rem := d.partLength - d.partCount; uint64(n) > rem {
		n = int(rem)
	}
	return n
}

// endPart returns to lookup once a bounded part has been fully consumed
func (d *Decoder) endPart() {
	if !d.unbounded && d.partCount == d.partLength {
		d.setPhase(phaseLookupPart)
	}
}

func (d *Decoder) parseMetadataPart(p []byte) int {
	n := d.acc.fill(p)
	d.partCount += uint64(n)
	d.stats.MetadataBytes += uint64(n)

	if d.acc.complete() {
		d.storeMetadata()
		d.setPhase(phaseLookupPart)
	}

	return n
}

func (d *Decoder) skipPart(p []byte) int {
	n := d.remaining(p)
	d.partCount += uint64(n)
	d.stats.SkippedBytes += uint64(n)
	d.endPart()
	return n
}

func (d *Decoder) writeDataFork(p []byte) (int, error) {
	n := len(p)
	if !d.unbounded {
		n = d.remaining(p)
	}

	w, err := d.writeData(p[:n])
	d.partCount += uint64(w)
	if err != nil {
		return w, err
	}

	d.endPart()
	return n, nil
}

func (d *Decoder) writeResourceFork(p []byte) (int, error) {
	if d.rsrc == nil {
		if d.forks == nil {
			return 0, fmt.Errorf("%w: no resource fork opener for %s", ErrResourceForkOpen, d.ref)
		}
		rsrc, err := d.forks.OpenResourceFork(d.ref)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrResourceForkOpen, err)
		}
		d.rsrc = rsrc
		d.logger.Debug("resource fork opened", "length", d.partLength)
	}

	n := d.remaining(p)
	w, err := d.rsrc.Write(p[:n])
	d.partCount += uint64(w)
	d.stats.ResourceForkBytes += uint64(w)
	if err == nil && w != n {
		err = io.ErrShortWrite
	}
	if err != nil {
		return w, fmt.Errorf("%w: resource fork: %w", ErrDestinationWrite, err)
	}

	d.endPart()
	return n, nil
}

// writeData sends p to the data-fork destination
func (d *Decoder) writeData(p []byte) (int, error) {
	w, err := d.dest.Write(p)
	d.stats.DataForkBytes += uint64(w)
	if err == nil && w != len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return w, fmt.Errorf("%w: data fork: %w", ErrDestinationWrite, err)
	}
	return len(p), nil
}
