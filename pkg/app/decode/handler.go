package decode

import (
	"time"

	"github.com/deploymenttheory/go-applefile/internal/decoder"
	"github.com/deploymenttheory/go-applefile/internal/host"
	"github.com/deploymenttheory/go-applefile/pkg/app"
	"github.com/deploymenttheory/go-applefile/pkg/services"
)

// Handle processes a decode request.
// The response is returned even when some containers fail; the first failure is returned as the error.
func Handle(ctx *app.Context, svc services.DecodeService, req *Request) (*Response, error) {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]services.DecodeJob, len(req.Inputs))
	for i, input := range req.Inputs {
		jobs[i] = services.DecodeJob{Source: input, Target: req.TargetFor(input)}
		ctx.Log("queued container", "source", input, "target", jobs[i].Target)
	}

	// Sessions still running when the run is cancelled or times out are aborted.
	runCtx, cancel := ctx.Derive()
	defer cancel()

	ctx.Progress("Decoding containers...", 10)
	results := svc.DecodeBatch(runCtx, jobs, req.Workers)

	response := &Response{Files: make([]FileResult, 0, len(results))}
	var firstErr error
	for _, result := range results {
		file := newFileResult(result)
		response.Files = append(response.Files, file)
		response.TotalBytes += result.Stats.TotalBytes

		switch result.Outcome {
		case decoder.OutcomeCommitted:
			response.Committed++
		case decoder.OutcomeIncomplete:
			response.Incomplete++
		case decoder.OutcomePassThrough:
			response.PassThrough++
		default:
			response.Failed++
		}

		if result.Err != nil {
			ctx.Error("decode failed", "source", result.Source, "error", result.Err)
			if firstErr == nil {
				firstErr = app.ClassifyDecodeError("failed to decode "+result.Source, result.Err)
			}
			continue
		}
		ctx.Log("decoded container",
			"source", result.Source,
			"outcome", file.Outcome,
			"session", file.Session,
			"duration", result.Duration)
	}

	response.Duration = time.Since(startTime)
	ctx.Progress("Complete", 100)

	return response, firstErr
}

// newFileResult converts a service result into its display form
func newFileResult(result *services.DecodeResult) FileResult {
	file := FileResult{
		Source:            result.Source,
		Target:            result.Target,
		ResourceFork:      result.ResourceForkPath,
		Session:           result.SessionID,
		Layout:            result.Stats.Layout.String(),
		Outcome:           result.Outcome.String(),
		DataForkBytes:     result.Stats.DataForkBytes,
		ResourceForkBytes: result.Stats.ResourceForkBytes,
		MetadataBytes:     result.Stats.MetadataBytes,
		SkippedBytes:      result.Stats.SkippedBytes,
		StrayBytes:        result.Stats.StrayBytes,
		FinderInfo:        result.Metadata.HasFinderInfo,
		Dates:             result.Metadata.HasDates,
	}
	if result.Metadata.HasComment {
		file.Comment = host.DecodeComment(result.Metadata.Comment)
	}
	if result.Err != nil {
		file.Error = result.Err.Error()
	}
	return file
}
