package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-applefile/internal/decoder"
	"github.com/deploymenttheory/go-applefile/internal/host"
	"github.com/deploymenttheory/go-applefile/internal/interfaces"
	"github.com/deploymenttheory/go-applefile/internal/types"
)

// decodeService implements the DecodeService interface
type decodeService struct {
	fs        afero.Fs
	forks     *host.ForkStore
	catalog   interfaces.MetadataSink
	chunkSize int
	logger    *slog.Logger
}

// NewDecodeService creates a decode service writing through fs with the given configuration
func NewDecodeService(fs afero.Fs, config *host.Config, logger *slog.Logger) (DecodeService, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	forks, err := host.NewForkStore(fs, host.ResourceForkLayout(config.ResourceForkLayout), config.BufferSize)
	if err != nil {
		return nil, err
	}

	catalog, err := host.NewMetadataSink(config.MetadataBackend, fs)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &decodeService{
		fs:        fs,
		forks:     forks,
		catalog:   catalog,
		chunkSize: config.ChunkSize,
		logger:    logger,
	}, nil
}

// Decode streams src into a new file at target, feeding the decoder one chunk at a time
func (ds *decodeService) Decode(ctx context.Context, src io.Reader, target string) (*DecodeResult, error) {
	start := time.Now()

	dest, err := ds.forks.CreateDataFork(target)
	if err != nil {
		return nil, err
	}

	ref := types.FileRef(target)
	dec := decoder.New(dest, ref, decoder.Options{
		ResourceForks: ds.forks,
		Metadata:      ds.catalog,
		Logger:        ds.logger,
	})

	buf := make([]byte, ds.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(err, dec.Abort())
		}

		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := dec.Write(buf[:n]); werr != nil {
				return nil, errors.Join(fmt.Errorf("failed to decode %s: %w", target, werr), dec.Abort())
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, errors.Join(fmt.Errorf("failed to read container: %w", rerr), dec.Abort())
		}
	}

	outcome, err := dec.Finish()
	result := &DecodeResult{
		Target:    target,
		SessionID: dec.SessionID().String(),
		Outcome:   outcome,
		Stats:     dec.Stats(),
		Metadata:  dec.Metadata(),
		Duration:  time.Since(start),
	}
	if result.Stats.ResourceForkBytes > 0 {
		result.ResourceForkPath = ds.forks.ResourceForkPath(ref)
	}
	if err != nil {
		return result, fmt.Errorf("failed to finish %s: %w", target, err)
	}

	return result, nil
}

// DecodeFile decodes the container at source into target
func (ds *decodeService) DecodeFile(ctx context.Context, source, target string) (*DecodeResult, error) {
	f, err := ds.fs.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open container: %w", err)
	}
	defer f.Close()

	result, err := ds.Decode(ctx, f, target)
	if result != nil {
		result.Source = source
	}
	return result, err
}

// DecodeBatch decodes independent jobs concurrently, one session per job
func (ds *decodeService) DecodeBatch(ctx context.Context, jobs []DecodeJob, workers int) []*DecodeResult {
	if workers < 1 {
		workers = 1
	}

	type indexed struct {
		index  int
		result *DecodeResult
	}

	p := pool.NewWithResults[indexed]().WithMaxGoroutines(workers)
	for i, job := range jobs {
		i, job := i, job
		p.Go(func() indexed {
			result, err := ds.DecodeFile(ctx, job.Source, job.Target)
			if result == nil {
				result = &DecodeResult{Source: job.Source, Target: job.Target, Outcome: decoder.OutcomeFailed}
			}
			result.Err = err
			return indexed{index: i, result: result}
		})
	}

	collected := p.Wait()
	sort.Slice(collected, func(a, b int) bool {
		return collected[a].index < collected[b].index
	})

	results := make([]*DecodeResult, len(collected))
	for i, c := range collected {
		results[i] = c.result
	}
	return results
}
