package renderbench

import (
	"fmt"
	"io"
	"strings"
	"time"
)

var separator = strings.Repeat("-", 63)

// Reporter writes the line oriented benchmark report.
type Reporter struct {
	w io.Writer
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Filters lists the filters supported by the backend.
func (r *Reporter) Filters(label string, filters []string) {
	fmt.Fprintf(r.w, "Available %s filters:\n", strings.ToUpper(label))
	for _, name := range filters {
		fmt.Fprintln(r.w, name)
	}
}

// Setup announces surface setup.
func (r *Reporter) Setup() {
	fmt.Fprintln(r.w, "Setup...")
}

// BeginTest prints the separator and the test title.
func (r *Reporter) BeginTest(description string) {
	fmt.Fprintln(r.w, separator)
	fmt.Fprintf(r.w, "Test: %s\n", description)
}

// EndTest prints the elapsed time in seconds.
func (r *Reporter) EndTest(elapsed time.Duration) {
	fmt.Fprintf(r.w, "Time: %3.3f sec.\n", elapsed.Seconds())
}
