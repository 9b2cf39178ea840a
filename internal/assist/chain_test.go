package assist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunChain_FirstSuccessWins(t *testing.T) {
	calls := 0
	attempts := []Attempt[string]{
		{Name: "a", Invoke: func(context.Context) (string, error) { calls++; return "from-a", nil }},
		{Name: "b", Invoke: func(context.Context) (string, error) { calls++; return "from-b", nil }},
	}

	v, winner, err := RunChain(context.Background(), attempts)
	require.NoError(t, err)
	assert.Equal(t, "from-a", v)
	assert.Equal(t, "a", winner)
	assert.Equal(t, 1, calls, "second attempt must not run after a success")
}

func TestRunChain_RecoverableErrorAdvances(t *testing.T) {
	attempts := []Attempt[string]{
		{Name: "a", Invoke: func(context.Context) (string, error) {
			return "", NewError(KindBackendUnavailable, "down", nil)
		}},
		{Name: "b", Invoke: func(context.Context) (string, error) { return "from-b", nil }},
	}

	v, winner, err := RunChain(context.Background(), attempts)
	require.NoError(t, err)
	assert.Equal(t, "from-b", v)
	assert.Equal(t, "b", winner)
}

func TestRunChain_FatalErrorStops(t *testing.T) {
	secondCalled := false
	attempts := []Attempt[string]{
		{Name: "a", Invoke: func(context.Context) (string, error) {
			return "", NewError(KindBackendLogic, "rejected", nil)
		}},
		{Name: "b", Invoke: func(context.Context) (string, error) { secondCalled = true; return "from-b", nil }},
	}

	_, winner, err := RunChain(context.Background(), attempts)
	require.Error(t, err)
	assert.Equal(t, KindBackendLogic, KindOf(err))
	assert.Equal(t, "a", winner)
	assert.False(t, secondCalled)
}

func TestRunChain_ExhaustionReturnsLastError(t *testing.T) {
	attempts := []Attempt[string]{
		{Name: "a", Invoke: func(context.Context) (string, error) {
			return "", NewError(KindCredentialMissing, "no-key", nil)
		}},
		{Name: "b", Invoke: func(context.Context) (string, error) {
			return "", NewError(KindProviderRejected, "status-503", nil)
		}},
	}

	_, _, err := RunChain(context.Background(), attempts)
	require.Error(t, err)
	assert.Equal(t, KindProviderRejected, KindOf(err))
}

func TestRunChain_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	attempts := []Attempt[string]{
		{Name: "a", Invoke: func(context.Context) (string, error) { called = true; return "x", nil }},
	}

	_, _, err := RunChain(ctx, attempts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, called, "cancelled request must not start outbound work")
}
