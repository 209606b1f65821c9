package capture

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"clientvoice/internal/adapters/observability"
	"clientvoice/internal/domain"
)

// ErrInFlight is returned by Submit while a previous submission is pending.
var ErrInFlight = errors.New("capture: submission already in flight")

type Submitter interface {
	SubmitReview(ctx context.Context, slug string, s domain.Submission) error
}

// Opener opens an external URL in a new browsing context.
type Opener interface {
	Open(ctx context.Context, url string) error
}

type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) Open(ctx context.Context, url string) error { return f(ctx, url) }

// Flow drives Transition for one business page and executes its effects.
// It is safe for concurrent use; network calls run without holding the lock.
type Flow struct {
	mu    sync.Mutex
	state State

	slug      string
	env       Env
	submitter Submitter
	opener    Opener
	onDone    func()
}

type Option func(*Flow)

// WithOnSubmitted registers a callback run after each stored review.
func WithOnSubmitted(fn func()) Option { return func(f *Flow) { f.onDone = fn } }

func NewFlow(slug string, env Env, s Submitter, o Opener, opts ...Option) *Flow {
	f := &Flow{slug: slug, env: env, submitter: s, opener: o}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Env() Env { return f.env }

func (f *Flow) SelectRating(ctx context.Context, n int) error {
	return f.dispatch(ctx, SelectRating{Rating: n})
}

func (f *Flow) SetComment(text string) { _ = f.dispatch(context.Background(), EditComment{Text: text}) }
func (f *Flow) SetContact(text string) { _ = f.dispatch(context.Background(), EditContact{Text: text}) }
func (f *Flow) Back()                  { _ = f.dispatch(context.Background(), BackToRating{}) }
func (f *Flow) LeaveAnother()          { _ = f.dispatch(context.Background(), LeaveAnother{}) }

// Submit validates and sends the feedback form. It returns the
// *domain.ValidationError or *SubmitError left in the state, if any.
func (f *Flow) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state.InFlight {
		f.mu.Unlock()
		return ErrInFlight
	}
	next, effects := Transition(f.state, Submit{}, f.env)
	f.state = next
	f.mu.Unlock()

	if next.Err != nil {
		observability.ObserveFlow("rejected")
		return next.Err
	}
	if err := f.run(ctx, effects); err != nil {
		return err
	}
	return f.State().Err
}

func (f *Flow) dispatch(ctx context.Context, ev Event) error {
	f.mu.Lock()
	next, effects := Transition(f.state, ev, f.env)
	f.state = next
	f.mu.Unlock()
	return f.run(ctx, effects)
}

func (f *Flow) run(ctx context.Context, effects []Effect) error {
	for _, eff := range effects {
		switch e := eff.(type) {
		case OpenExternal:
			observability.ObserveFlow("redirect")
			if f.opener == nil {
				continue
			}
			if err := f.opener.Open(ctx, e.URL); err != nil {
				log.Warn().Err(err).Str("url", e.URL).Msg("open external review page failed")
			}
		case PostReview:
			if err := f.submitter.SubmitReview(ctx, f.slug, e.Submission); err != nil {
				observability.ObserveFlow("failed")
				log.Warn().Err(err).Str("slug", f.slug).Int("note", e.Submission.Note).Msg("review submission failed")
				return f.dispatch(ctx, SubmitFailed{Message: serverMessage(err)})
			}
			observability.ObserveFlow("submitted")
			if err := f.dispatch(ctx, SubmitSucceeded{}); err != nil {
				return err
			}
		case NotifySubmitted:
			if f.onDone != nil {
				f.onDone()
			}
		}
	}
	return nil
}

// serverMessage extracts a user-facing message provided by the backend.
func serverMessage(err error) string {
	var sm interface{ ServerMessage() string }
	if errors.As(err, &sm) {
		return sm.ServerMessage()
	}
	return ""
}
