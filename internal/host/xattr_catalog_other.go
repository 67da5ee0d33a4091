//go:build !linux && !darwin

package host

import (
	"errors"

	"github.com/deploymenttheory/go-applefile/internal/interfaces"
)

// ErrXattrUnsupported is returned when extended attributes are not available on this platform
var ErrXattrUnsupported = errors.New("extended attribute metadata is not supported on this platform")

// NewXattrCatalog is not available on this platform
func NewXattrCatalog() (interfaces.MetadataSink, error) {
	return nil, ErrXattrUnsupported
}
