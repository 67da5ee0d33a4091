package applefile

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-applefile/internal/interfaces"
	"github.com/deploymenttheory/go-applefile/internal/types"
)

// entryTableReader implements the EntryTableReader interface
type entryTableReader struct {
	entries []types.ASEntryT
	bound   uint64
}

// NewEntryTableReader decodes count entry descriptors from data.
// The entry slice is allocated once here and never resized.
func NewEntryTableReader(data []byte, count uint16) (interfaces.EntryTableReader, error) {
	need := int(count) * types.ASEntrySize
	if len(data) < need {
		return nil, fmt.Errorf("data too small for %d entries: %d bytes, need %d", count, len(data), need)
	}

	etr := &entryTableReader{
		entries: make([]types.ASEntryT, count),
	}

	endian := binary.BigEndian
	for i := range etr.entries {
		rec := data[i*types.ASEntrySize : (i+1)*types.ASEntrySize]
		etr.entries[i] = types.ASEntryT{
			EntryID: types.ASEntryIDT(endian.Uint32(rec[0:4])),
			Offset:  endian.Uint32(rec[4:8]),
			Length:  endian.Uint32(rec[8:12]),
		}
		if end := etr.entries[i].End(); end > etr.bound {
			etr.bound = end
		}
	}

	return etr, nil
}

// Entries returns the decoded entry descriptors in table order
func (etr *entryTableReader) Entries() []types.ASEntryT {
	return etr.entries
}

// Find returns the first entry with the given id
func (etr *entryTableReader) Find(id types.ASEntryIDT) (types.ASEntryT, bool) {
	for _, e := range etr.entries {
		if e.EntryID == id {
			return e, true
		}
	}
	return types.ASEntryT{}, false
}

// EntryAt returns the first entry starting at offset with a nonzero length
func (etr *entryTableReader) EntryAt(offset uint64) (types.ASEntryT, bool) {
	for _, e := range etr.entries {
		if uint64(e.Offset) == offset && e.Length != 0 {
			return e, true
		}
	}
	return types.ASEntryT{}, false
}

// NextOffsetAfter returns the smallest nonzero-length entry offset strictly after offset
func (etr *entryTableReader) NextOffsetAfter(offset uint64) (uint64, bool) {
	var next uint64
	found := false
	for _, e := range etr.entries {
		o := uint64(e.Offset)
		if e.Length == 0 || o <= offset {
			continue
		}
		if !found || o < next {
			next = o
			found = true
		}
	}
	return next, found
}

// DataForkBound returns the highest offset+length over all entries.
// For AppleDouble this is where the unlisted data fork begins.
func (etr *entryTableReader) DataForkBound() uint64 {
	return etr.bound
}
