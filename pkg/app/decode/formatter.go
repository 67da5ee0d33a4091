package decode

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// FormatOutput writes decode results to w in the requested format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats results as a table
func formatTable(w io.Writer, response *Response) error {
	if len(response.Files) == 0 {
		_, err := fmt.Fprintln(w, "No containers decoded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "SOURCE\tTARGET\tLAYOUT\tOUTCOME\tSIZE\tMETADATA\n")
	fmt.Fprintf(tw, "------\t------\t------\t-------\t----\t--------\n")
	for _, file := range response.Files {
		outcome := file.Outcome
		if file.Error != "" {
			outcome += " (" + file.Error + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			file.Source, file.Target, file.Layout, outcome, file.FormatSize(), file.Metadata())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s containers: %d committed, %d incomplete, %d pass-through, %d failed (%s read in %v)\n",
		humanize.Comma(int64(len(response.Files))),
		response.Committed, response.Incomplete, response.PassThrough, response.Failed,
		humanize.Bytes(response.TotalBytes), response.Duration)
	return err
}

// formatJSON formats results as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats results as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}

// FormatSummary provides a brief summary for verbose output
func FormatSummary(response *Response) string {
	if len(response.Files) == 0 {
		return "No containers decoded"
	}

	summary := fmt.Sprintf("Decoded %d container", len(response.Files))
	if len(response.Files) != 1 {
		summary += "s"
	}
	if response.Failed > 0 {
		summary += fmt.Sprintf(" (%d failed)", response.Failed)
	}
	return summary + fmt.Sprintf(" totaling %s in %v", humanize.Bytes(response.TotalBytes), response.Duration)
}
