package applefile

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-applefile/internal/interfaces"
	"github.com/deploymenttheory/go-applefile/internal/types"
)

// headerReader implements the HeaderReader interface
type headerReader struct {
	header *types.ASHeaderT
	data   []byte
}

// NewHeaderReader creates a new HeaderReader implementation.
// Container fields are always big-endian.
func NewHeaderReader(data []byte) (interfaces.HeaderReader, error) {
	if len(data) < types.ASHeaderSize {
		return nil, fmt.Errorf("data too small for apple file header: %d bytes", len(data))
	}

	header, err := parseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse apple file header: %w", err)
	}

	return &headerReader{
		header: header,
		data:   data[:types.ASHeaderSize],
	}, nil
}

// parseHeader parses raw bytes into an ASHeaderT structure
func parseHeader(data []byte) (*types.ASHeaderT, error) {
	if len(data) < types.ASHeaderSize {
		return nil, fmt.Errorf("insufficient data for header")
	}

	endian := binary.BigEndian
	header := &types.ASHeaderT{}
	header.Magic = endian.Uint32(data[0:4])
	header.Version = endian.Uint32(data[4:8])
	copy(header.Filler[:], data[8:24])
	header.NumEntries = endian.Uint16(data[24:26])

	return header, nil
}

// Magic returns the magic number
func (hr *headerReader) Magic() uint32 {
	return hr.header.Magic
}

// Version returns the format version
func (hr *headerReader) Version() uint32 {
	return hr.header.Version
}

// NumEntries returns the number of entry descriptors following the header
func (hr *headerReader) NumEntries() uint16 {
	return hr.header.NumEntries
}

// IsAppleSingle checks if the magic number is the AppleSingle magic
func (hr *headerReader) IsAppleSingle() bool {
	return hr.header.Magic == types.AppleSingleMagic
}

// IsAppleDouble checks if the magic number is the AppleDouble magic
func (hr *headerReader) IsAppleDouble() bool {
	return hr.header.Magic == types.AppleDoubleMagic
}

// IsValid checks magic, version, filler and entry count together.
// A header that fails any check is not treated as an error by the decoder.
func (hr *headerReader) IsValid() bool {
	if !hr.IsAppleSingle() && !hr.IsAppleDouble() {
		return false
	}
	if hr.header.Version != types.AppleFileVersion || hr.header.NumEntries == 0 {
		return false
	}
	for _, b := range hr.header.Filler {
		if b != 0 {
			return false
		}
	}
	return true
}

// Header returns the decoded header
func (hr *headerReader) Header() *types.ASHeaderT {
	return hr.header
}
