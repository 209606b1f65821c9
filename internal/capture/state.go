// Package capture implements the public review flow: rating, optional
// feedback form, thank-you screen. Transition is pure; side effects are
// returned as Effect values and executed by Flow.
package capture

import (
	"fmt"
	"net/url"

	"clientvoice/internal/domain"
)

type Step int

const (
	StepRating Step = iota
	StepFeedback
	StepThanked
)

func (s Step) String() string {
	switch s {
	case StepRating:
		return "rating"
	case StepFeedback:
		return "feedback"
	case StepThanked:
		return "thanked"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// State is the full, copyable state of one capture flow.
type State struct {
	Step    Step
	Rating  int // 0 when nothing is selected
	Comment string
	Contact string

	// Err is the message shown under the form: a *domain.ValidationError for
	// local failures, a *SubmitError when the backend rejected the call.
	Err error

	// InFlight is set while a submission awaits its result.
	InFlight bool
}

// Env is the per-business context a flow runs in.
type Env struct {
	Locale  domain.Locale
	PlaceID string
}

// SubmitError carries the message shown after a failed submission.
type SubmitError struct{ Message string }

func (e *SubmitError) Error() string { return e.Message }

// Event is an input to Transition.
type Event interface{ event() }

type (
	SelectRating    struct{ Rating int }
	EditComment     struct{ Text string }
	EditContact     struct{ Text string }
	BackToRating    struct{}
	Submit          struct{}
	SubmitSucceeded struct{}
	SubmitFailed    struct{ Message string }
	LeaveAnother    struct{}
)

func (SelectRating) event()    {}
func (EditComment) event()     {}
func (EditContact) event()     {}
func (BackToRating) event()    {}
func (Submit) event()          {}
func (SubmitSucceeded) event() {}
func (SubmitFailed) event()    {}
func (LeaveAnother) event()    {}

// Effect is a side effect requested by Transition.
type Effect interface{ effect() }

type (
	// OpenExternal opens URL in a new browsing context.
	OpenExternal struct{ URL string }
	// PostReview sends the submission to the backend; the caller must feed
	// back SubmitSucceeded or SubmitFailed.
	PostReview struct{ Submission domain.Submission }
	// NotifySubmitted invokes the caller's completion callback.
	NotifySubmitted struct{}
)

func (OpenExternal) effect()    {}
func (PostReview) effect()      {}
func (NotifySubmitted) effect() {}

const writeReviewURL = "https://search.google.com/local/writereview"

// ExternalReviewURL builds the third-party review link of a place.
func ExternalReviewURL(placeID string) string {
	return writeReviewURL + "?placeid=" + url.QueryEscape(placeID)
}
