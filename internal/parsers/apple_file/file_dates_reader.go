package applefile

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/deploymenttheory/go-applefile/internal/interfaces"
	"github.com/deploymenttheory/go-applefile/internal/types"
)

// fileDatesReader implements the FileDatesReader interface
type fileDatesReader struct {
	dates types.ASFileDatesT
}

// NewFileDatesReader decodes a file dates record. The data must be exactly ASFileDatesSize bytes.
func NewFileDatesReader(data []byte) (interfaces.FileDatesReader, error) {
	if len(data) != types.ASFileDatesSize {
		return nil, fmt.Errorf("file dates record must be %d bytes, got %d", types.ASFileDatesSize, len(data))
	}

	endian := binary.BigEndian
	return &fileDatesReader{
		dates: types.ASFileDatesT{
			Create: int32(endian.Uint32(data[0:4])),
			Modify: int32(endian.Uint32(data[4:8])),
			Backup: int32(endian.Uint32(data[8:12])),
			Access: int32(endian.Uint32(data[12:16])),
		},
	}, nil
}

// Dates returns the raw record
func (fdr *fileDatesReader) Dates() types.ASFileDatesT {
	return fdr.dates
}

// Created returns the creation date
func (fdr *fileDatesReader) Created() time.Time {
	return types.AppleFileTime(fdr.dates.Create)
}

// Modified returns the modification date
func (fdr *fileDatesReader) Modified() time.Time {
	return types.AppleFileTime(fdr.dates.Modify)
}

// BackedUp returns the last backup date
func (fdr *fileDatesReader) BackedUp() time.Time {
	return types.AppleFileTime(fdr.dates.Backup)
}

// Accessed returns the last access date
func (fdr *fileDatesReader) Accessed() time.Time {
	return types.AppleFileTime(fdr.dates.Access)
}
