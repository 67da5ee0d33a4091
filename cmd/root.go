package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-applefile/internal/host"
	"github.com/deploymenttheory/go-applefile/pkg/app"
	"github.com/deploymenttheory/go-applefile/pkg/services"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string

	// Set up before any subcommand runs
	config  *host.Config
	factory *services.ServiceFactory
)

var rootCmd = &cobra.Command{
	Use:   "applefile",
	Short: "Streaming AppleSingle and AppleDouble decoder",
	Long: `applefile decodes AppleSingle and AppleDouble containers back into
ordinary files, restoring the resource fork and Finder metadata alongside
the data fork.

Containers are decoded as a stream, so arbitrarily large files never need
to fit in memory. Files that are not containers are copied unchanged.

Commands:
  decode      Decode containers into files
  inspect     Show the header, entries and metadata of a container`,
	Version:           "0.1.0-dev",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// An interrupt cancels the running command, which aborts any open decode sessions.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Only global output control flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// setup loads configuration and builds the service factory shared by every command
func setup(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()

	cfg, err := host.LoadConfig(fs)
	if err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "failed to load configuration", err)
	}
	config = cfg

	logger, err := app.NewLogger(os.Stderr, logLevel(cfg), cfg.LogFormat)
	if err != nil {
		return err
	}

	factory = services.NewServiceFactory(fs, cfg, logger)
	return nil
}

// logLevel lets the verbosity flags override the configured level
func logLevel(cfg *host.Config) string {
	switch {
	case verbose:
		return "debug"
	case quiet:
		return "error"
	default:
		return cfg.LogLevel
	}
}

// newContext creates the application context for a command
func newContext(cmd *cobra.Command) *app.Context {
	ctx := app.NewContext()
	ctx.Context = cmd.Context()
	ctx.OutputFormat = GetOutputFormat()
	ctx.Verbose = GetVerbose()
	ctx.Quiet = GetQuiet()
	if factory != nil {
		ctx.Logger = factory.Logger()
	}
	if ctx.Verbose {
		logger := ctx.Logger
		ctx.SetProgress(func(message string, percent int) {
			logger.Debug("progress", "step", message, "percent", percent)
		})
	}
	return ctx
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}

// GetOutputFormat returns the output format
func GetOutputFormat() string {
	return outputFormat
}
