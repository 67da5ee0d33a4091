package app

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Context carries cancellation, output preferences and the logger of one command run
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool

	Logger *slog.Logger

	// Timeout bounds the work started from this context. Zero means no limit.
	Timeout time.Duration

	progress func(message string, percent int)
}

// NewContext creates a new application context
func NewContext() *Context {
	return &Context{
		Context: context.Background(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Derive returns a copy bound to a child context. The child ends when cancel is
// called, when the parent ends, or once Timeout has elapsed.
func (c *Context) Derive() (*Context, context.CancelFunc) {
	child := *c
	var cancel context.CancelFunc
	if c.Timeout > 0 {
		child.Context, cancel = context.WithTimeout(c.Context, c.Timeout)
	} else {
		child.Context, cancel = context.WithCancel(c.Context)
	}
	return &child, cancel
}

// SetProgress sets the progress callback function
func (c *Context) SetProgress(callback func(string, int)) {
	c.progress = callback
}

// Progress reports progress if a callback is set
func (c *Context) Progress(message string, percent int) {
	if c.progress != nil {
		c.progress(message, percent)
	}
}

// Log writes an info record when verbose output is on
func (c *Context) Log(message string, args ...any) {
	if c.Verbose && !c.Quiet {
		c.Logger.Info(message, args...)
	}
}

// Error writes an error record unless quiet
func (c *Context) Error(message string, args ...any) {
	if !c.Quiet {
		c.Logger.Error(message, args...)
	}
}
