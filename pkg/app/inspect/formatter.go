package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// FormatOutput writes the inspection report to w in the requested format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats the report as a summary followed by the entry table
func formatTable(w io.Writer, response *Response) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Path:\t%s\n", response.Path)
	fmt.Fprintf(tw, "Size:\t%s\n", humanize.Bytes(uint64(response.Size)))
	fmt.Fprintf(tw, "Layout:\t%s\n", response.Layout)
	if response.Layout == "pass-through" {
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, "\nNot an AppleSingle or AppleDouble container; decoding copies it unchanged.")
		return err
	}

	fmt.Fprintf(tw, "Magic:\t%s\n", response.Magic)
	fmt.Fprintf(tw, "Version:\t%s\n", response.Version)
	fmt.Fprintf(tw, "Data fork:\t%s\n", humanize.Bytes(response.DataForkSize))
	fmt.Fprintf(tw, "Resource fork:\t%s\n", humanize.Bytes(response.ResourceForkSize))
	if fi := response.FinderInfo; fi != nil {
		fmt.Fprintf(tw, "Type/Creator:\t%s/%s\n", fi.Type, fi.Creator)
		fmt.Fprintf(tw, "Finder flags:\t%s\n", fi.Flags)
	}
	if d := response.Dates; d != nil {
		fmt.Fprintf(tw, "Created:\t%s\n", d.Created.Format(time.RFC3339))
		fmt.Fprintf(tw, "Modified:\t%s\n", d.Modified.Format(time.RFC3339))
		fmt.Fprintf(tw, "Backed up:\t%s\n", d.BackedUp.Format(time.RFC3339))
		fmt.Fprintf(tw, "Accessed:\t%s\n", d.Accessed.Format(time.RFC3339))
	}
	if response.Comment != "" {
		fmt.Fprintf(tw, "Comment:\t%q\n", response.Comment)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tENTRY\tOFFSET\tLENGTH\tSIZE\n")
	fmt.Fprintf(tw, "--\t-----\t------\t------\t----\n")
	for _, e := range response.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", e.ID, e.Name, e.Offset, e.Length, e.FormatSize())
	}
	return tw.Flush()
}
