package decoder

import (
	"bytes"

	applefile "github.com/deploymenttheory/go-applefile/internal/parsers/apple_file"
	"github.com/deploymenttheory/go-applefile/internal/types"
)

// Metadata holds the metadata parts received during a session
type Metadata struct {
	// Comment is capped at MaxCommentSize bytes
	Comment    []byte
	HasComment bool

	Dates    types.ASFileDatesT
	HasDates bool

	FinderInfo         [types.FInfoSize]byte
	ExtendedFinderInfo types.FXInfoT
	HasFinderInfo      bool
}

// metadataKeep returns how many bytes of a metadata part the accumulator must retain.
// Fixed-size records of the wrong length are consumed without being retained.
func metadataKeep(id types.ASEntryIDT, length uint32) int {
	switch id {
	case types.ASEntryComment:
		return int(min(length, types.MaxCommentSize))
	case types.ASEntryFileDates:
		if length == types.ASFileDatesSize {
			return types.ASFileDatesSize
		}
	case types.ASEntryFinderInfo:
		if length == types.ASFinderInfoSize {
			return types.ASFinderInfoSize
		}
	}
	return 0
}

// storeMetadata copies a completed metadata part into its slot
func (d *Decoder) storeMetadata() {
	data := d.acc.bytes()

	switch d.part {
	case types.ASEntryComment:
		d.meta.Comment = bytes.Clone(data)
		d.meta.HasComment = true
		if d.partLength > types.MaxCommentSize {
			d.logger.Debug("comment truncated", "length", d.partLength, "kept", len(data))
		}

	case types.ASEntryFileDates:
		reader, err := applefile.NewFileDatesReader(data)
		if err != nil {
			d.logger.Debug("ignoring file dates entry", "length", d.partLength, "error", err)
			return
		}
		d.meta.Dates = reader.Dates()
		d.meta.HasDates = true

	case types.ASEntryFinderInfo:
		if _, err := applefile.NewFinderInfoReader(data); err != nil {
			d.logger.Debug("ignoring finder info entry", "length", d.partLength, "error", err)
			return
		}
		copy(d.meta.FinderInfo[:], data[:types.FInfoSize])
		copy(d.meta.ExtendedFinderInfo[:], data[types.FInfoSize:])
		d.meta.HasFinderInfo = true
	}
}
