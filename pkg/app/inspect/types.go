package inspect

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Request represents an inspect request
type Request struct {
	ContainerPath string
}

// Response describes one container
type Response struct {
	Path             string      `json:"path" yaml:"path"`
	Size             int64       `json:"size" yaml:"size"`
	Layout           string      `json:"layout" yaml:"layout"`
	Magic            string      `json:"magic" yaml:"magic"`
	Version          string      `json:"version" yaml:"version"`
	Entries          []Entry     `json:"entries" yaml:"entries"`
	DataForkSize     uint64      `json:"data_fork_size" yaml:"data_fork_size"`
	ResourceForkSize uint64      `json:"resource_fork_size" yaml:"resource_fork_size"`
	FinderInfo       *FinderInfo `json:"finder_info,omitempty" yaml:"finder_info,omitempty"`
	Dates            *Dates      `json:"dates,omitempty" yaml:"dates,omitempty"`
	Comment          string      `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Entry is one entry of the entry table
type Entry struct {
	ID     uint32 `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Offset uint32 `json:"offset" yaml:"offset"`
	Length uint32 `json:"length" yaml:"length"`
}

// FinderInfo is the decoded Finder info entry
type FinderInfo struct {
	Type    string `json:"type" yaml:"type"`
	Creator string `json:"creator" yaml:"creator"`
	Flags   string `json:"flags" yaml:"flags"`
}

// Dates is the decoded file dates entry
type Dates struct {
	Created  time.Time `json:"created" yaml:"created"`
	Modified time.Time `json:"modified" yaml:"modified"`
	BackedUp time.Time `json:"backed_up" yaml:"backed_up"`
	Accessed time.Time `json:"accessed" yaml:"accessed"`
}

// FormatSize returns a human-readable size string
func (e *Entry) FormatSize() string {
	return humanize.Bytes(uint64(e.Length))
}
