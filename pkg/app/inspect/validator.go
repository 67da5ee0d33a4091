package inspect

import (
	"strings"

	"github.com/deploymenttheory/go-applefile/pkg/app"
)

// Validate validates an inspect request
func (r *Request) Validate() error {
	if strings.TrimSpace(r.ContainerPath) == "" {
		return app.NewError(app.ErrCodeInvalidInput, "container path is required", nil)
	}
	return nil
}
