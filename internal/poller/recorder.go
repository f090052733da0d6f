package poller

import "time"

// Order outcomes reported to a Recorder.
const (
	OutcomeAccepted = "accepted"
	OutcomeDeclined = "declined"
	OutcomeFiltered = "filtered"
)

// Recorder receives poller measurements.
type Recorder interface {
	ObservePoll(duration time.Duration, err error)
	OrderProcessed(outcome string)
	CursorAdvanced(value string)
}

type nopRecorder struct{}

func (nopRecorder) ObservePoll(time.Duration, error) {}
func (nopRecorder) OrderProcessed(string)            {}
func (nopRecorder) CursorAdvanced(string)            {}
