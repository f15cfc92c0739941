package model_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jethabot/model"
	"jethabot/provider/testutil"
)

func newGate(mock *testutil.MockProvider, valid ...string) *model.Gate {
	return model.NewGate(mock.Connector(valid...), model.GateOptions{
		RequireKey:     true,
		Timeout:        time.Second,
		ProbeMaxTokens: 5,
	})
}

func TestProbeBadKey(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	gate := newGate(mock, "good-key")

	res := gate.Probe(context.Background(), "bad-key")

	assert.False(t, res.Valid)
	assert.Equal(t, model.KindCredentialInvalid, res.Kind)
	assert.Equal(t, "bad credential", res.Reason())
	assert.Equal(t, model.MsgKeyInvalid, res.Message)
	assert.Equal(t, model.Unvalidated, gate.Status())
	assert.Empty(t, gate.Secret())
}

func TestProbeGoodKeyThenCommit(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	gate := newGate(mock, "good-key")

	res := gate.Probe(context.Background(), "good-key")
	require.True(t, res.Valid)
	assert.Equal(t, model.MsgKeyValid, res.Message)
	assert.Empty(t, res.Reason())
	assert.Equal(t, model.Unvalidated, gate.Status(), "probe must not commit")

	require.NoError(t, gate.SetValidated("good-key", res))
	assert.Equal(t, model.Validated, gate.Status())
	assert.Equal(t, "good-key", gate.Secret())

	p, err := gate.Provider()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.GetModel())
}

func TestProbeRequestShape(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	gate := newGate(mock)

	gate.Probe(context.Background(), "  key-with-spaces  ")

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, 5, reqs[0].MaxTokens)
	assert.False(t, reqs[0].JSONObject)
	require.Len(t, reqs[0].Turns, 1)
	assert.Equal(t, model.RoleUser, reqs[0].Turns[0].Role)
	assert.Equal(t, "Hello", reqs[0].Turns[0].Content)
}

func TestProbeClassification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    model.ErrorKind
		message string
		reason  string
	}{
		{"no quota", testutil.NoQuotaError(), model.KindCredentialNoQuota, model.MsgKeyNoQuota, "valid credential, no usable quota"},
		{"transport", testutil.TransportError("connection refused"), model.KindProviderTransport,
			"Error validating API key: connection refused", "transport/provider error: connection refused"},
		{"unclassified", errors.New("boom"), model.KindProviderTransport,
			"Error validating API key: boom", "transport/provider error: boom"},
		{"reply parse reported as other", &model.ProviderError{Kind: model.KindReplyParse, Detail: "malformed"},
			model.KindProviderTransport, "Error validating API key: malformed", "transport/provider error: malformed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockProvider("gpt-4o-mini")
			mock.CompleteFunc = func(ctx context.Context, req model.CompletionRequest) (string, error) {
				return "", tt.err
			}
			gate := newGate(mock)

			res := gate.Probe(context.Background(), "some-key")

			assert.False(t, res.Valid)
			assert.Equal(t, tt.kind, res.Kind)
			assert.Equal(t, tt.message, res.Message)
			assert.Equal(t, tt.reason, res.Reason())
			assert.Equal(t, model.Unvalidated, gate.Status())
		})
	}
}

func TestProbeEmptyKeyMakesNoCall(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	gate := newGate(mock)

	res := gate.Probe(context.Background(), "   ")

	assert.False(t, res.Valid)
	assert.Equal(t, model.MsgKeyEmpty, res.Message)
	assert.Zero(t, mock.Calls())
}

func TestProbeEmptyKeyAllowedWithoutRequirement(t *testing.T) {
	mock := testutil.NewMockProvider("llama3.1:latest")
	gate := model.NewGate(mock.Connector(), model.GateOptions{})

	res := gate.Probe(context.Background(), "")

	assert.True(t, res.Valid)
	require.NoError(t, gate.SetValidated("", res))
	assert.Equal(t, model.Validated, gate.Status())
}

func TestProbeIsSideEffectFree(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	gate := newGate(mock, "good-key")

	for i := 0; i < 5; i++ {
		gate.Probe(context.Background(), "good-key")
		gate.Probe(context.Background(), "bad-key")
		assert.Equal(t, model.Unvalidated, gate.Status())
	}

	res := gate.Probe(context.Background(), "good-key")
	require.NoError(t, gate.SetValidated("good-key", res))
	for i := 0; i < 3; i++ {
		gate.Probe(context.Background(), "bad-key")
		assert.Equal(t, model.Validated, gate.Status())
		assert.Equal(t, "good-key", gate.Secret())
	}
}

func TestProbeTimeout(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	mock.CompleteFunc = func(ctx context.Context, req model.CompletionRequest) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}
	gate := model.NewGate(mock.Connector(), model.GateOptions{RequireKey: true, Timeout: 20 * time.Millisecond})

	res := gate.Probe(context.Background(), "slow-key")

	assert.False(t, res.Valid)
	assert.Equal(t, model.KindProviderTransport, res.Kind)
	assert.Contains(t, res.Message, "deadline exceeded")
}

func TestSetValidatedRequiresMatchingProbe(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	gate := newGate(mock, "good-key", "other-key")

	bad := gate.Probe(context.Background(), "bad-key")
	assert.ErrorIs(t, gate.SetValidated("bad-key", bad), model.ErrProbeMismatch)

	good := gate.Probe(context.Background(), "good-key")
	assert.ErrorIs(t, gate.SetValidated("other-key", good), model.ErrProbeMismatch)
	assert.ErrorIs(t, gate.SetValidated("good-key", model.ProbeResult{Valid: true}), model.ErrProbeMismatch)

	assert.Equal(t, model.Unvalidated, gate.Status())
}

func TestResetIsIdempotent(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	gate := newGate(mock)

	gate.Reset()
	assert.Equal(t, model.Unvalidated, gate.Status())

	res := gate.Probe(context.Background(), "key")
	require.NoError(t, gate.SetValidated("key", res))

	gate.Reset()
	gate.Reset()
	assert.Equal(t, model.Unvalidated, gate.Status())
	assert.Empty(t, gate.Secret())

	_, err := gate.Provider()
	assert.ErrorIs(t, err, model.ErrNotValidated)
}
