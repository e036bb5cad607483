package attendance

import (
	"github.com/talenthub-id/ess-gateway-go/internal/domain/attendance"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/dateutil"
)

// FlowState tracks where a manual entry attempt stands.
type FlowState string

const (
	FlowClosed     FlowState = "closed"
	FlowDialogOpen FlowState = "dialog_open"
	FlowSubmitting FlowState = "submitting"
)

// EntryFlow is the manual-entry state machine for one submission attempt.
// It refuses to open for an ineligible day and refuses a second submission
// while one is in flight; a failed submission returns to the open state so
// the attempt can be retried.
type EntryFlow struct {
	state     FlowState
	date      dateutil.Date
	direction attendance.Direction
}

func NewEntryFlow() *EntryFlow {
	return &EntryFlow{state: FlowClosed}
}

func (f *EntryFlow) State() FlowState { return f.state }

// Date and Direction describe the attempt the flow was opened for. They are
// meaningful only while the flow is not closed.
func (f *EntryFlow) Date() dateutil.Date { return f.date }

func (f *EntryFlow) Direction() attendance.Direction { return f.direction }

// Open transitions Closed -> DialogOpen using the policy gate's verdict. An
// ineligible verdict leaves the flow closed and returns the rejection.
func (f *EntryFlow) Open(date dateutil.Date, elig Eligibility) error {
	if f.state != FlowClosed {
		return attendance.ErrSubmissionInFlight
	}
	if !elig.Eligible {
		return elig.Err
	}
	f.state = FlowDialogOpen
	f.date = date
	f.direction = elig.Direction
	return nil
}

// BeginSubmit transitions DialogOpen -> Submitting.
func (f *EntryFlow) BeginSubmit() error {
	switch f.state {
	case FlowDialogOpen:
		f.state = FlowSubmitting
		return nil
	case FlowSubmitting:
		return attendance.ErrSubmissionInFlight
	default:
		return attendance.ErrEntryNotEligible
	}
}

// Complete resolves an in-flight submission. Success closes the flow;
// failure reopens the dialog so the same attempt can be retried.
func (f *EntryFlow) Complete(err error) {
	if f.state != FlowSubmitting {
		return
	}
	if err != nil {
		f.state = FlowDialogOpen
		return
	}
	f.reset()
}

// Cancel abandons the attempt from any non-submitting state.
func (f *EntryFlow) Cancel() {
	if f.state == FlowSubmitting {
		return
	}
	f.reset()
}

func (f *EntryFlow) reset() {
	f.state = FlowClosed
	f.date = dateutil.Date{}
	f.direction = ""
}
