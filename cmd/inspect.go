package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-applefile/pkg/app/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [container-path]",
	Short: "Show the header, entry table and metadata of a container",
	Long: `Read a container without decoding it and report its layout, every
entry in its entry table, the fork sizes and the decoded Finder info,
dates and comment.

Examples:
  applefile inspect report.as
  applefile inspect ._photo.jpg --output json`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, containerPath string) error {
	ctx := newContext(cmd)

	svc, err := factory.InspectService()
	if err != nil {
		return err
	}

	response, err := inspect.Handle(ctx, svc, &inspect.Request{ContainerPath: containerPath})
	if err != nil {
		return err
	}

	return inspect.FormatOutput(cmd.OutOrStdout(), response, ctx.OutputFormat)
}
