// Package metrics defines observability hooks for site builds.
package metrics

import "time"

// Recorder defines observability hooks for build metrics. All methods must
// be safe on the NoopRecorder so injection stays optional.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome string) // outcome: success|failed
	AddIndexPages(n int)
	AddPostPages(n int)
}

// Outcome labels for IncBuildOutcome.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(string)             {}
func (NoopRecorder) AddIndexPages(int)                  {}
func (NoopRecorder) AddPostPages(int)                   {}
