package retrier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func TestDoSucceedsFirstAttempt(t *testing.T) {
	r := New()
	attempts := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, attempts)
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	r := New(WithMaxRetries(3), WithInitialInterval(time.Millisecond))
	attempts := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errTransient
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, attempts)
}

func TestDoExhaustsBudget(t *testing.T) {
	r := New(WithMaxRetries(2), WithInitialInterval(time.Millisecond))
	attempts := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return errTransient
	})
	require.ErrorIs(t, err, errTransient)
	require.Equal(t, 3, attempts, "one initial attempt plus two retries")
}

func TestDoStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("permanent")
	r := New(
		WithMaxRetries(5),
		WithInitialInterval(time.Millisecond),
		WithPermanent(func(err error) bool { return errors.Is(err, permanent) }),
	)
	attempts := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return permanent
	})
	require.ErrorIs(t, err, permanent)
	require.Equal(t, 1, attempts)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	r := New(WithMaxRetries(5), WithInitialInterval(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := r.Do(ctx, func(ctx context.Context) error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errTransient
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 2, attempts)
}

func TestDoWithData(t *testing.T) {
	r := New(WithMaxRetries(1), WithInitialInterval(time.Millisecond))

	val, err := DoWithData(r, context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	require.Equal(t, 42, val)

	_, err = DoWithData(r, context.Background(), func(ctx context.Context) (int, error) {
		return 0, errTransient
	})
	require.ErrorIs(t, err, errTransient)
}
