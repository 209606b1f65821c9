package capture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientvoice/internal/capture"
	"clientvoice/internal/domain"
)

var envEN = capture.Env{Locale: domain.LocaleEN, PlaceID: "ChIJ123"}

func TestTransition_HighRatingRedirects(t *testing.T) {
	for _, n := range []int{4, 5} {
		s, effs := capture.Transition(capture.State{}, capture.SelectRating{Rating: n}, envEN)
		assert.Equal(t, capture.StepRating, s.Step)
		assert.Equal(t, 0, s.Rating)
		require.Len(t, effs, 1)
		open, ok := effs[0].(capture.OpenExternal)
		require.True(t, ok, "rating %d: expected OpenExternal, got %T", n, effs[0])
		assert.Equal(t, "https://search.google.com/local/writereview?placeid=ChIJ123", open.URL)
	}
}

func TestTransition_LowRatingOpensForm(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		s, effs := capture.Transition(capture.State{}, capture.SelectRating{Rating: n}, envEN)
		assert.Equal(t, capture.StepFeedback, s.Step)
		assert.Equal(t, n, s.Rating)
		assert.Empty(t, effs)
	}
}

func TestTransition_OutOfRangeRatingIgnored(t *testing.T) {
	for _, n := range []int{-1, 0, 6} {
		s, effs := capture.Transition(capture.State{}, capture.SelectRating{Rating: n}, envEN)
		assert.Equal(t, capture.State{}, s)
		assert.Empty(t, effs)
	}
}

func TestTransition_EmptyCommentFailsValidation(t *testing.T) {
	for _, comment := range []string{"", "   ", "\n\t"} {
		s := capture.State{Step: capture.StepFeedback, Rating: 2, Comment: comment}
		next, effs := capture.Transition(s, capture.Submit{}, envEN)
		assert.Empty(t, effs)
		assert.Equal(t, capture.StepFeedback, next.Step)
		assert.False(t, next.InFlight)
		var ve *domain.ValidationError
		require.ErrorAs(t, next.Err, &ve)
		assert.Equal(t, "Please leave a comment to help us improve.", ve.Message)
	}
}

func TestTransition_SubmitPostsTrimmedPayload(t *testing.T) {
	s := capture.State{Step: capture.StepFeedback, Rating: 3, Comment: "  cold food ", Contact: "  "}
	next, effs := capture.Transition(s, capture.Submit{}, envEN)
	assert.True(t, next.InFlight)
	require.Len(t, effs, 1)
	post := effs[0].(capture.PostReview)
	assert.Equal(t, 3, post.Submission.Note)
	assert.Equal(t, "cold food", post.Submission.Commentaire)
	assert.Nil(t, post.Submission.Contact)

	// a second submit while in flight is ignored
	again, effs := capture.Transition(next, capture.Submit{}, envEN)
	assert.Equal(t, next, again)
	assert.Empty(t, effs)
}

func TestTransition_ZeroRatingSubmitReturnsToRating(t *testing.T) {
	s := capture.State{Step: capture.StepFeedback, Rating: 0, Comment: "x"}
	next, effs := capture.Transition(s, capture.Submit{}, envEN)
	assert.Equal(t, capture.StepRating, next.Step)
	assert.Empty(t, effs)
}

func TestTransition_SubmitOutcome(t *testing.T) {
	inFlight := capture.State{Step: capture.StepFeedback, Rating: 1, Comment: "x", Contact: "bob", InFlight: true}

	ok, effs := capture.Transition(inFlight, capture.SubmitSucceeded{}, envEN)
	assert.Equal(t, capture.State{Step: capture.StepThanked}, ok)
	assert.Equal(t, []capture.Effect{capture.NotifySubmitted{}}, effs)

	failed, effs := capture.Transition(inFlight, capture.SubmitFailed{Message: "slug inconnu"}, envEN)
	assert.Empty(t, effs)
	assert.Equal(t, capture.StepFeedback, failed.Step)
	assert.False(t, failed.InFlight)
	assert.EqualError(t, failed.Err, "slug inconnu")
	assert.Equal(t, "x", failed.Comment)

	generic, _ := capture.Transition(inFlight, capture.SubmitFailed{}, capture.Env{Locale: domain.LocaleAR})
	assert.EqualError(t, generic.Err, "حدث خطأ أثناء إرسال تعليقك.")
}

func TestTransition_BackAndLeaveAnother(t *testing.T) {
	s := capture.State{Step: capture.StepFeedback, Rating: 2, Comment: "draft", Contact: "me"}
	back, _ := capture.Transition(s, capture.BackToRating{}, envEN)
	assert.Equal(t, capture.State{Step: capture.StepRating}, back)

	thanked := capture.State{Step: capture.StepThanked}
	again, _ := capture.Transition(thanked, capture.LeaveAnother{}, envEN)
	assert.Equal(t, capture.StepRating, again.Step)

	// rating buttons are inert on the thank-you screen
	same, effs := capture.Transition(thanked, capture.SelectRating{Rating: 5}, envEN)
	assert.Equal(t, thanked, same)
	assert.Empty(t, effs)
}

func TestExternalReviewURL_Escapes(t *testing.T) {
	assert.Equal(t, "https://search.google.com/local/writereview?placeid=a+b%26c", capture.ExternalReviewURL("a b&c"))
}
