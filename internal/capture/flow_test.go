package capture_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientvoice/internal/capture"
	"clientvoice/internal/domain"
)

type fakeSubmitter struct {
	mu    sync.Mutex
	calls []domain.Submission
	err   error
	block chan struct{}
}

func (f *fakeSubmitter) SubmitReview(ctx context.Context, slug string, s domain.Submission) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, s)
	return f.err
}

func (f *fakeSubmitter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type serverErr struct{ msg string }

func (e serverErr) Error() string         { return "server: " + e.msg }
func (e serverErr) ServerMessage() string { return e.msg }

func newFlow(sub *fakeSubmitter, opened *[]string, opts ...capture.Option) *capture.Flow {
	op := capture.OpenerFunc(func(_ context.Context, u string) error {
		*opened = append(*opened, u)
		return nil
	})
	return capture.NewFlow("chez-ali", envEN, sub, op, opts...)
}

func TestFlow_HighRatingNeverSubmits(t *testing.T) {
	sub := &fakeSubmitter{}
	var opened []string
	f := newFlow(sub, &opened)

	for _, n := range []int{4, 5} {
		require.NoError(t, f.SelectRating(context.Background(), n))
		assert.Equal(t, 0, f.State().Rating)
		assert.Equal(t, capture.StepRating, f.State().Step)
	}
	assert.Len(t, opened, 2)
	assert.Zero(t, sub.count())
}

func TestFlow_LowRatingSubmitsOnce(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		sub := &fakeSubmitter{}
		var opened []string
		done := 0
		f := newFlow(sub, &opened, capture.WithOnSubmitted(func() { done++ }))

		require.NoError(t, f.SelectRating(context.Background(), n))
		f.SetComment("   ")
		var ve *domain.ValidationError
		require.ErrorAs(t, f.Submit(context.Background()), &ve)
		assert.Zero(t, sub.count())

		f.SetComment("slow service")
		f.SetContact(" 0600000000 ")
		require.NoError(t, f.Submit(context.Background()))
		require.Equal(t, 1, sub.count())
		assert.Equal(t, n, sub.calls[0].Note)
		assert.Equal(t, "0600000000", *sub.calls[0].Contact)
		assert.Equal(t, capture.State{Step: capture.StepThanked}, f.State())
		assert.Equal(t, 1, done)
		assert.Empty(t, opened)
	}
}

func TestFlow_ServerMessageWins(t *testing.T) {
	sub := &fakeSubmitter{err: serverErr{msg: "Client introuvable"}}
	var opened []string
	f := newFlow(sub, &opened)

	require.NoError(t, f.SelectRating(context.Background(), 2))
	f.SetComment("meh")
	err := f.Submit(context.Background())
	var se *capture.SubmitError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Client introuvable", se.Message)
	assert.Equal(t, capture.StepFeedback, f.State().Step)

	// network failure without a server message -> locale fallback; user may retry
	sub.err = errors.New("dial tcp: connection refused")
	err = f.Submit(context.Background())
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "An error occurred while submitting your feedback.", se.Message)
	assert.Equal(t, 2, sub.count())
}

func TestFlow_DuplicateSubmitWhileInFlight(t *testing.T) {
	sub := &fakeSubmitter{block: make(chan struct{})}
	var opened []string
	f := newFlow(sub, &opened)
	require.NoError(t, f.SelectRating(context.Background(), 1))
	f.SetComment("broken")

	first := make(chan error, 1)
	go func() { first <- f.Submit(context.Background()) }()

	// wait until the first submit marked the state in flight
	for !f.State().InFlight {
	}
	assert.ErrorIs(t, f.Submit(context.Background()), capture.ErrInFlight)

	close(sub.block)
	require.NoError(t, <-first)
	assert.Equal(t, 1, sub.count())
}
