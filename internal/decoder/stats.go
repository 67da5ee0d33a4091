package decoder

import "fmt"

// phase is the state of the decoding state machine
type phase int

const (
	phaseParsingHeader phase = iota
	phaseParsingEntryTable
	phaseLookupPart
	phaseParsingMetadataPart
	phaseSkippingPart
	phaseWritingDataFork
	phaseWritingResourceFork
	phasePassThrough
)

func (p phase) String() string {
	switch p {
	case phaseParsingHeader:
		return "parsing-header"
	case phaseParsingEntryTable:
		return "parsing-entry-table"
	case phaseLookupPart:
		return "lookup-part"
	case phaseParsingMetadataPart:
		return "parsing-metadata-part"
	case phaseSkippingPart:
		return "skipping-part"
	case phaseWritingDataFork:
		return "writing-data-fork"
	case phaseWritingResourceFork:
		return "writing-resource-fork"
	case phasePassThrough:
		return "pass-through"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Layout identifies how the input was interpreted
type Layout int

const (
	// LayoutUnknown means the header has not been fully received yet
	LayoutUnknown Layout = iota
	// LayoutAppleSingle is a container carrying every fork
	LayoutAppleSingle
	// LayoutAppleDouble is a container whose data fork follows the last entry
	LayoutAppleDouble
	// LayoutPassThrough means the input was not a container and went to the data fork unchanged
	LayoutPassThrough
)

func (l Layout) String() string {
	switch l {
	case LayoutAppleSingle:
		return "AppleSingle"
	case LayoutAppleDouble:
		return "AppleDouble"
	case LayoutPassThrough:
		return "pass-through"
	default:
		return "unknown"
	}
}

// Outcome is the result of finishing a decode session
type Outcome int

const (
	// OutcomeCommitted means every fork was complete and metadata was written
	OutcomeCommitted Outcome = iota
	// OutcomeIncomplete means a fork was short and metadata was deliberately not written
	OutcomeIncomplete
	// OutcomePassThrough means the input was copied verbatim and there was no metadata
	OutcomePassThrough
	// OutcomeFailed means an I/O error ended the session
	OutcomeFailed
	// OutcomeAborted means the session was abandoned by the caller
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeIncomplete:
		return "incomplete"
	case OutcomePassThrough:
		return "pass-through"
	case OutcomeFailed:
		return "failed"
	case OutcomeAborted:
		return "aborted"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Stats summarizes a decode session
type Stats struct {
	Layout            Layout
	Entries           int
	TotalBytes        uint64
	DataForkBytes     uint64
	ResourceForkBytes uint64
	MetadataBytes     uint64
	// SkippedBytes counts bytes of entries the decoder does not interpret
	SkippedBytes uint64
	// StrayBytes counts bytes no entry claims
	StrayBytes uint64
}
