package host

import (
	"fmt"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/deploymenttheory/go-applefile/internal/interfaces"
	"github.com/deploymenttheory/go-applefile/internal/types"
)

// Metadata backends
const (
	BackendSidecar = "sidecar"
	BackendXattr   = "xattr"
	BackendNone    = "none"
)

// NewMetadataSink returns the metadata sink for a configured backend
func NewMetadataSink(backend string, fs afero.Fs) (interfaces.MetadataSink, error) {
	switch backend {
	case BackendSidecar:
		return NewSidecarCatalog(fs), nil
	case BackendXattr:
		return NewXattrCatalog()
	case BackendNone:
		return NopCatalog{}, nil
	default:
		return nil, fmt.Errorf("unsupported metadata backend: %q", backend)
	}
}

// DecodeComment converts a Finder comment from Mac OS Roman to UTF-8
func DecodeComment(comment []byte) string {
	decoded, err := charmap.Macintosh.NewDecoder().Bytes(comment)
	if err != nil {
		return string(comment)
	}
	return string(decoded)
}

// EncodeComment converts a UTF-8 comment to Mac OS Roman, replacing unmappable runes
func EncodeComment(comment string) []byte {
	encoded, err := encoding.ReplaceUnsupported(charmap.Macintosh.NewEncoder()).String(comment)
	if err != nil {
		return []byte(comment)
	}
	return []byte(encoded)
}

// NopCatalog discards metadata. Comments are reported as unsupported.
type NopCatalog struct{}

// GetMetadata returns an empty record
func (NopCatalog) GetMetadata(ref types.FileRef) (*types.CatalogInfo, error) {
	return &types.CatalogInfo{}, nil
}

// SetMetadata does nothing
func (NopCatalog) SetMetadata(ref types.FileRef, info *types.CatalogInfo) error {
	return nil
}

// SupportsComments always reports false
func (NopCatalog) SupportsComments(ref types.FileRef) bool {
	return false
}

// SetComment does nothing
func (NopCatalog) SetComment(ref types.FileRef, comment []byte) error {
	return nil
}
