package decode

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/deploymenttheory/go-applefile/pkg/app"
)

// Request represents a decode request
type Request struct {
	Inputs  []string
	Output  app.OutputTarget
	Workers int
}

// Response represents the results of a decode run
type Response struct {
	Files       []FileResult  `json:"files" yaml:"files"`
	Committed   int           `json:"committed" yaml:"committed"`
	Incomplete  int           `json:"incomplete" yaml:"incomplete"`
	PassThrough int           `json:"pass_through" yaml:"pass_through"`
	Failed      int           `json:"failed" yaml:"failed"`
	TotalBytes  uint64        `json:"total_bytes" yaml:"total_bytes"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

// FileResult represents one decoded container
type FileResult struct {
	Source            string `json:"source" yaml:"source"`
	Target            string `json:"target" yaml:"target"`
	ResourceFork      string `json:"resource_fork,omitempty" yaml:"resource_fork,omitempty"`
	Session           string `json:"session,omitempty" yaml:"session,omitempty"`
	Layout            string `json:"layout" yaml:"layout"`
	Outcome           string `json:"outcome" yaml:"outcome"`
	DataForkBytes     uint64 `json:"data_fork_bytes" yaml:"data_fork_bytes"`
	ResourceForkBytes uint64 `json:"resource_fork_bytes" yaml:"resource_fork_bytes"`
	MetadataBytes     uint64 `json:"metadata_bytes" yaml:"metadata_bytes"`
	SkippedBytes      uint64 `json:"skipped_bytes" yaml:"skipped_bytes"`
	StrayBytes        uint64 `json:"stray_bytes" yaml:"stray_bytes"`
	FinderInfo        bool   `json:"finder_info" yaml:"finder_info"`
	Dates             bool   `json:"dates" yaml:"dates"`
	Comment           string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Error             string `json:"error,omitempty" yaml:"error,omitempty"`
}

// FormatSize returns the human readable size of both forks together
func (f *FileResult) FormatSize() string {
	return humanize.Bytes(f.DataForkBytes + f.ResourceForkBytes)
}

// Metadata lists the metadata parts received, for table output
func (f *FileResult) Metadata() string {
	var parts []string
	if f.FinderInfo {
		parts = append(parts, "finder")
	}
	if f.Dates {
		parts = append(parts, "dates")
	}
	if f.Comment != "" {
		parts = append(parts, "comment")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}
