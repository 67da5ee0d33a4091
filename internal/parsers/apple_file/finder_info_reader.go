package applefile

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/deploymenttheory/go-applefile/internal/interfaces"
	"github.com/deploymenttheory/go-applefile/internal/types"
)

// finderInfoReader implements the FinderInfoReader interface
type finderInfoReader struct {
	info  types.FInfoT
	extra types.FXInfoT
}

// NewFinderInfoReader decodes Finder info followed by extended Finder info.
// The data must be exactly ASFinderInfoSize bytes.
func NewFinderInfoReader(data []byte) (interfaces.FinderInfoReader, error) {
	if len(data) != types.ASFinderInfoSize {
		return nil, fmt.Errorf("finder info must be %d bytes, got %d", types.ASFinderInfoSize, len(data))
	}

	fir := &finderInfoReader{
		info: parseFInfo(data[:types.FInfoSize]),
	}
	copy(fir.extra[:], data[types.FInfoSize:])

	return fir, nil
}

// parseFInfo parses the 16 byte classic Finder info record
func parseFInfo(data []byte) types.FInfoT {
	endian := binary.BigEndian
	var info types.FInfoT
	copy(info.FdType[:], data[0:4])
	copy(info.FdCreator[:], data[4:8])
	info.FdFlags = endian.Uint16(data[8:10])
	info.FdLocation[0] = int16(endian.Uint16(data[10:12]))
	info.FdLocation[1] = int16(endian.Uint16(data[12:14]))
	info.FdFldr = int16(endian.Uint16(data[14:16]))
	return info
}

// FinderInfo returns the decoded Finder info record
func (fir *finderInfoReader) FinderInfo() types.FInfoT {
	return fir.info
}

// ExtendedFinderInfo returns the extended Finder info bytes
func (fir *finderInfoReader) ExtendedFinderInfo() types.FXInfoT {
	return fir.extra
}

// FileType returns the four character type code
func (fir *finderInfoReader) FileType() string {
	return fourCC(fir.info.FdType)
}

// Creator returns the four character creator code
func (fir *finderInfoReader) Creator() string {
	return fourCC(fir.info.FdCreator)
}

// Flags returns the Finder flags
func (fir *finderInfoReader) Flags() uint16 {
	return fir.info.FdFlags
}

func fourCC(code [4]byte) string {
	return strings.TrimRight(string(code[:]), "\x00")
}
