package model

import (
	"jethabot/config"
)

// Model holds the core application data shared by the terminal screens.
type Model struct {
	Config  *config.Config
	Gate    *Gate
	Session *Session

	// Runtime state (not UI)
	Quitting bool

	// Application metadata
	Version string
	License string
}

// NewModel wires a gate and a fresh session for cfg. connect builds the
// provider for a candidate credential.
func NewModel(cfg *config.Config, connect Connector, version, license string) *Model {
	gate := NewGate(connect, GateOptions{
		RequireKey:     cfg.RequiresKey(),
		Timeout:        cfg.RequestTimeout,
		ProbeMaxTokens: cfg.ProbeMaxTokens,
	})

	session := NewSession(gate, SessionOptions{Timeout: cfg.RequestTimeout})

	config.Debugf("[Model] NewModel: provider=%s model=%s session=%s", cfg.Provider, cfg.Model, session.ID)

	return &Model{
		Config:  cfg,
		Gate:    gate,
		Session: session,
		Version: version,
		License: license,
	}
}

// ChangeCredential drops the committed key and starts over with an empty chat.
func (m *Model) ChangeCredential() {
	m.Gate.Reset()
	m.Session.Clear()
}
