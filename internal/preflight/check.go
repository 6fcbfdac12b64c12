package preflight

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// CheckStatus represents the result of a preflight check.
type CheckStatus int

const (
	// StatusPass indicates the check passed successfully.
	StatusPass CheckStatus = iota
	// StatusWarn indicates a non-critical warning.
	StatusWarn
	// StatusFail indicates the check failed.
	StatusFail
)

// String returns the string representation of a CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the status as its name in JSON output.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult holds the result of a single preflight check.
type CheckResult struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Message  string      `json:"message"`
	Details  string      `json:"details,omitempty"`
	Required bool        `json:"required"`
}

// IsCritical returns true if this is a required check that failed.
func (r CheckResult) IsCritical() bool {
	return r.Required && r.Status == StatusFail
}

// Target names what RunAll inspects. Empty fields skip their check.
type Target struct {
	// Catalog is scanned once to verify the root.
	Catalog Indexer
	// Addr is the address `promptdex serve` would bind.
	Addr string
	// LogDir is where the server log is written.
	LogDir string
	// Watch raises the file descriptor check to required.
	Watch bool
}

// Checker performs preflight validation checks.
type Checker struct {
	verbose bool
	output  io.Writer
}

// Option configures a Checker.
type Option func(*Checker)

// WithVerbose enables verbose output.
func WithVerbose(verbose bool) Option {
	return func(c *Checker) {
		c.verbose = verbose
	}
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.output = w
	}
}

// New creates a new Checker with the given options.
func New(opts ...Option) *Checker {
	c := &Checker{
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunAll runs every check that applies to target and returns the results.
func (c *Checker) RunAll(ctx context.Context, target Target) []CheckResult {
	var results []CheckResult

	if target.Catalog != nil {
		results = append(results, c.CheckCatalog(ctx, target.Catalog))
	}
	if target.Addr != "" {
		results = append(results, c.CheckListenAddr(target.Addr))
	}
	if target.LogDir != "" {
		results = append(results, c.CheckWritePermissions(target.LogDir))
	}
	results = append(results, c.CheckFileDescriptors(target.Watch))

	return results
}

// HasCriticalFailures returns true if any required check failed.
func (c *Checker) HasCriticalFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.IsCritical() {
			return true
		}
	}
	return false
}

// SummaryStatus is "failed" when a required check failed, "ready_with_warnings"
// when anything else did not pass and "ready" otherwise.
func (c *Checker) SummaryStatus(results []CheckResult) string {
	status := "ready"
	for _, r := range results {
		switch {
		case r.IsCritical():
			return "failed"
		case r.Status != StatusPass:
			status = "ready_with_warnings"
		}
	}
	return status
}

// PrintResults writes one line per check followed by the summary status.
// Details are shown in verbose mode only.
func (c *Checker) PrintResults(results []CheckResult) {
	for _, r := range results {
		line := fmt.Sprintf("[%s] %s: %s", r.Status, r.Name, r.Message)
		if r.IsCritical() {
			line += " (required)"
		}
		_, _ = fmt.Fprintln(c.output, line)
		if c.verbose && r.Details != "" {
			_, _ = fmt.Fprintf(c.output, "       %s\n", r.Details)
		}
	}
	_, _ = fmt.Fprintf(c.output, "\nStatus: %s\n", strings.ToUpper(c.SummaryStatus(results)))
}
