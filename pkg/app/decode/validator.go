package decode

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/deploymenttheory/go-applefile/pkg/app"
)

// MaxWorkers bounds the number of concurrent decode sessions
const MaxWorkers = 64

// AppleDoublePrefix is the name prefix of AppleDouble header files
const AppleDoublePrefix = "._"

// containerExtensions are stripped from input names when deriving output names
var containerExtensions = []string{".as", ".asf", ".adf", ".applesingle", ".appledouble"}

// Validate validates a decode request
func (r *Request) Validate() error {
	if len(r.Inputs) == 0 {
		return app.NewError(app.ErrCodeInvalidInput, "at least one input container is required", nil)
	}
	for _, input := range r.Inputs {
		if strings.TrimSpace(input) == "" {
			return app.NewError(app.ErrCodeInvalidInput, "input path must not be empty", nil)
		}
	}

	if err := r.Output.Validate(); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid output target", err)
	}

	if len(r.Inputs) > 1 && !r.Output.Directory {
		return app.NewError(app.ErrCodeInvalidInput, "multiple inputs require an output directory", nil)
	}

	if r.Workers < 1 || r.Workers > MaxWorkers {
		return app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("workers must be between 1 and %d", MaxWorkers), nil)
	}

	seen := make(map[string]string, len(r.Inputs))
	for _, input := range r.Inputs {
		target := r.TargetFor(input)
		if filepath.Clean(target) == filepath.Clean(input) {
			return app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("output %s would overwrite its input", target), nil)
		}
		if other, ok := seen[target]; ok {
			return app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("inputs %s and %s decode to the same output %s", other, input, target), nil)
		}
		seen[target] = input
	}

	return nil
}

// TargetFor returns the file an input container is decoded into
func (r *Request) TargetFor(input string) string {
	if !r.Output.Directory {
		return r.Output.Path
	}
	return filepath.Join(r.Output.Path, TargetName(input))
}

// TargetName derives an output file name from a container path.
// "._name" becomes "name" and known container extensions are removed.
func TargetName(input string) string {
	name := filepath.Base(input)
	if trimmed := strings.TrimPrefix(name, AppleDoublePrefix); trimmed != "" {
		name = trimmed
	}
	for _, ext := range containerExtensions {
		if len(name) > len(ext) && strings.EqualFold(filepath.Ext(name), ext) {
			return strings.TrimSuffix(name, filepath.Ext(name))
		}
	}
	return name
}
