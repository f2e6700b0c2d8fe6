package artifacttool

import (
	"fmt"
	"io"
)

// ProgressReporter receives observational download progress. It never
// affects the outcome of a fetch.
type ProgressReporter interface {
	// Start announces a download with a human-readable label.
	Start(label string)
	// Step reports progress as a percentage in [0, 100]. Successive
	// values are non-decreasing and reach 100 only when all declared
	// bytes have been read.
	Step(percent float64)
	// Done marks the download finished, successfully or not.
	Done()
}

// nopReporter is the default reporter when none is configured.
type nopReporter struct{}

func (nopReporter) Start(label string)   {}
func (nopReporter) Step(percent float64) {}
func (nopReporter) Done()                {}

// SpinnerReporter writes carriage-return progress lines to a stream,
// typically stderr. Percentages are clamped to be monotonic so a noisy
// caller can never make the display go backwards.
type SpinnerReporter struct {
	w     io.Writer
	label string
	last  float64
}

// NewSpinnerReporter creates a reporter writing to w.
func NewSpinnerReporter(w io.Writer) *SpinnerReporter {
	return &SpinnerReporter{w: w}
}

// Start begins a new progress line.
func (s *SpinnerReporter) Start(label string) {
	s.label = label
	s.last = 0
	fmt.Fprintf(s.w, "%s...", label)
}

// Step updates the progress line.
func (s *SpinnerReporter) Step(percent float64) {
	if percent < s.last {
		percent = s.last
	}
	if percent > 100 {
		percent = 100
	}
	s.last = percent
	fmt.Fprintf(s.w, "\r%s... %3.0f%%", s.label, percent)
}

// Done finishes the progress line.
func (s *SpinnerReporter) Done() {
	fmt.Fprintf(s.w, "\r%s... done\n", s.label)
}
