package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-applefile/internal/host"
	"github.com/deploymenttheory/go-applefile/pkg/app"
	"github.com/deploymenttheory/go-applefile/pkg/app/decode"
)

var (
	decodeOut       string
	decodeOutDir    bool
	decodeWorkers   int
	decodeChunkSize int
	decodeLayout    string
	decodeMetadata  string
	decodeTimeout   time.Duration
)

var decodeCmd = &cobra.Command{
	Use:   "decode [container-path...]",
	Short: "Decode AppleSingle or AppleDouble containers into files",
	Long: `Decode one or more containers. The data fork becomes the output file,
the resource fork is written beside it, and Finder info, dates and the
comment are applied through the configured metadata backend once every
fork has arrived complete.

Examples:
  # Decode a single AppleSingle file
  applefile decode report.as --out report.txt

  # Decode AppleDouble header files into a directory
  applefile decode ._photo.jpg ._notes.txt --out restored/ --dir

  # Write resource forks as named forks and metadata as extended attributes
  applefile decode app.as --out App --layout namedfork --metadata xattr`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecode(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVar(&decodeOut, "out", "", "output file, or directory with --dir")
	decodeCmd.Flags().BoolVar(&decodeOutDir, "dir", false, "treat --out as a directory")
	decodeCmd.Flags().IntVarP(&decodeWorkers, "jobs", "j", 1, "containers decoded concurrently")
	decodeCmd.Flags().IntVar(&decodeChunkSize, "chunk-size", 0, "bytes fed to the decoder per write (default from config)")
	decodeCmd.Flags().StringVar(&decodeLayout, "layout", "", "resource fork layout: sidecar or namedfork (default from config)")
	decodeCmd.Flags().StringVar(&decodeMetadata, "metadata", "", "metadata backend: sidecar, xattr or none (default from config)")
	decodeCmd.Flags().DurationVar(&decodeTimeout, "timeout", 0, "abort sessions still running after this long (0 for no limit)")

	_ = decodeCmd.MarkFlagRequired("out")
}

func runDecode(cmd *cobra.Command, inputs []string) error {
	ctx := newContext(cmd)
	ctx.Timeout = decodeTimeout

	overrides := *config
	if decodeChunkSize > 0 {
		overrides.ChunkSize = decodeChunkSize
	}
	if decodeLayout != "" {
		overrides.ResourceForkLayout = decodeLayout
	}
	if decodeMetadata != "" {
		overrides.MetadataBackend = decodeMetadata
	}
	if err := overrides.Validate(); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid decode options", err)
	}

	svcFactory := factory
	if overrides != *config {
		svcFactory = factory.WithConfig(&overrides)
	}

	svc, err := svcFactory.DecodeService()
	if err != nil {
		return err
	}

	ctx.Log("decode configuration", describeConfig(&overrides)...)

	directory := decodeOutDir || len(inputs) > 1
	if directory {
		if err := svcFactory.Fs().MkdirAll(decodeOut, 0o755); err != nil {
			return app.NewError(app.ErrCodeDestinationWrite, "failed to create output directory", err)
		}
	}

	request := &decode.Request{
		Inputs:  inputs,
		Output:  app.OutputTarget{Path: decodeOut, Directory: directory},
		Workers: decodeWorkers,
	}

	response, err := decode.Handle(ctx, svc, request)
	if response != nil && !ctx.Quiet {
		if ferr := decode.FormatOutput(cmd.OutOrStdout(), response, ctx.OutputFormat); ferr != nil {
			return ferr
		}
		ctx.Log(decode.FormatSummary(response))
	}
	if err != nil {
		return err
	}

	if response.Incomplete > 0 {
		return fmt.Errorf("%d container(s) were incomplete; metadata was not applied to them", response.Incomplete)
	}
	return nil
}

// describeConfig names the effective backends for verbose logs
func describeConfig(cfg *host.Config) []any {
	return []any{
		"chunk_size", cfg.ChunkSize,
		"resource_fork_layout", cfg.ResourceForkLayout,
		"metadata_backend", cfg.MetadataBackend,
	}
}
