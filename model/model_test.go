package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jethabot/config"
	"jethabot/model"
	"jethabot/provider/testutil"
)

func testConfig() *config.Config {
	return config.Default()
}

func TestNewModel(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	m := model.NewModel(testConfig(), mock.Connector(), "v1.0.0", "MIT")

	assert.Equal(t, "v1.0.0", m.Version)
	assert.Equal(t, model.Unvalidated, m.Gate.Status())
	assert.Len(t, m.Session.Snapshot().Protocol, 1)
	assert.Same(t, m.Gate, m.Session.Gate())
}

func TestProbeAndSubmitCmds(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	m := model.NewModel(testConfig(), mock.Connector("good-key"), "v1.0.0", "MIT")

	msg := m.ProbeCmd("bad-key")()
	probe, ok := msg.(model.ProbeResultMsg)
	require.True(t, ok)
	assert.False(t, probe.Result.Valid)
	assert.Equal(t, "bad-key", probe.Candidate)

	probe = m.ProbeCmd("good-key")().(model.ProbeResultMsg)
	require.True(t, probe.Result.Valid)

	committed := m.CommitCredentialCmd(probe.Candidate, probe.Result)().(model.CredentialCommittedMsg)
	require.NoError(t, committed.Err)
	assert.Equal(t, model.Validated, m.Gate.Status())

	reply := m.SubmitCmd("Jethalal, kaise ho?")().(model.ReplyMsg)
	require.NoError(t, reply.Err)
	assert.Equal(t, "Mock response", reply.Text)

	empty := m.SubmitCmd("  ")().(model.ReplyMsg)
	assert.ErrorIs(t, empty.Err, model.ErrEmptyMessage)
}

func TestCommitWithoutValidProbe(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o-mini")
	m := model.NewModel(testConfig(), mock.Connector("good-key"), "v1.0.0", "MIT")

	probe := m.ProbeCmd("bad-key")().(model.ProbeResultMsg)
	committed := m.CommitCredentialCmd(probe.Candidate, probe.Result)().(model.CredentialCommittedMsg)

	assert.ErrorIs(t, committed.Err, model.ErrProbeMismatch)
	assert.Equal(t, model.Unvalidated, m.Gate.Status())
}
