package capture

import (
	"strings"

	"clientvoice/internal/domain"
	"clientvoice/internal/i18n"
)

// Transition applies ev to s. Events that make no sense in the current step
// leave the state unchanged and produce no effects.
func Transition(s State, ev Event, env Env) (State, []Effect) {
	msgs := i18n.For(env.Locale)

	switch e := ev.(type) {
	case SelectRating:
		if s.Step != StepRating || e.Rating < domain.MinNote || e.Rating > domain.MaxNote {
			return s, nil
		}
		if e.Rating >= domain.RedirectNote {
			return State{Step: StepRating}, []Effect{OpenExternal{URL: ExternalReviewURL(env.PlaceID)}}
		}
		return State{Step: StepFeedback, Rating: e.Rating}, nil

	case EditComment:
		if s.Step != StepFeedback {
			return s, nil
		}
		s.Comment = e.Text
		return s, nil

	case EditContact:
		if s.Step != StepFeedback {
			return s, nil
		}
		s.Contact = e.Text
		return s, nil

	case BackToRating:
		if s.Step != StepFeedback || s.InFlight {
			return s, nil
		}
		return State{Step: StepRating}, nil

	case Submit:
		if s.Step != StepFeedback || s.InFlight {
			return s, nil
		}
		if s.Rating < domain.MinNote {
			return State{Step: StepRating}, nil
		}
		if s.Rating < domain.RedirectNote && strings.TrimSpace(s.Comment) == "" {
			s.Err = &domain.ValidationError{Field: "commentaire", Message: msgs.CommentRequired}
			return s, nil
		}
		s.Err = nil
		s.InFlight = true
		return s, []Effect{PostReview{Submission: domain.NewSubmission(s.Rating, s.Comment, s.Contact)}}

	case SubmitSucceeded:
		if !s.InFlight {
			return s, nil
		}
		return State{Step: StepThanked}, []Effect{NotifySubmitted{}}

	case SubmitFailed:
		if !s.InFlight {
			return s, nil
		}
		msg := strings.TrimSpace(e.Message)
		if msg == "" {
			msg = msgs.SubmitFailed
		}
		s.InFlight = false
		s.Err = &SubmitError{Message: msg}
		return s, nil

	case LeaveAnother:
		if s.Step != StepThanked {
			return s, nil
		}
		s.Step = StepRating
		return s, nil
	}
	return s, nil
}
