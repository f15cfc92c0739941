package model

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"jethabot/config"
)

// CredentialStatus is the validation state of the API key.
type CredentialStatus int

const (
	Unvalidated CredentialStatus = iota
	Validated
)

func (s CredentialStatus) String() string {
	if s == Validated {
		return "validated"
	}
	return "unvalidated"
}

const probePrompt = "Hello"

// Status lines shown on the gate screen.
const (
	MsgKeyValid     = "API key is valid!"
	MsgKeyInvalid   = "Invalid API key. Please check your key and try again."
	MsgKeyNoQuota   = "API key is valid but has insufficient quota/credits."
	MsgKeyEmpty     = "Please enter your API key."
	msgKeyErrorFmt  = "Error validating API key: %s"
	reasonInvalid   = "bad credential"
	reasonNoQuota   = "valid credential, no usable quota"
	reasonTransport = "transport/provider error: %s"
)

// ProbeResult is the outcome of one probe call.
type ProbeResult struct {
	Valid   bool
	Kind    ErrorKind
	Message string

	detail    string
	candidate string
}

// Reason returns the short failure reason, or "" for a valid result.
func (r ProbeResult) Reason() string {
	if r.Valid {
		return ""
	}
	switch r.Kind {
	case KindCredentialInvalid:
		return reasonInvalid
	case KindCredentialNoQuota:
		return reasonNoQuota
	default:
		return fmt.Sprintf(reasonTransport, r.detail)
	}
}

// GateOptions configure a Gate.
type GateOptions struct {
	// RequireKey rejects an empty candidate without a network call.
	RequireKey bool

	Timeout        time.Duration
	ProbeMaxTokens int
}

// Gate owns the credential state. Chat is only reachable once a probed
// credential has been committed with SetValidated.
type Gate struct {
	connect Connector
	opts    GateOptions

	mu       sync.RWMutex
	status   CredentialStatus
	secret   string
	provider Provider
}

// NewGate creates an unvalidated gate.
func NewGate(connect Connector, opts GateOptions) *Gate {
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultRequestTimeout
	}
	if opts.ProbeMaxTokens <= 0 {
		opts.ProbeMaxTokens = config.DefaultProbeMaxTokens
	}
	return &Gate{connect: connect, opts: opts}
}

// Probe sends one minimal completion authenticated with candidate and
// classifies the outcome. It never changes the gate's state.
func (g *Gate) Probe(ctx context.Context, candidate string) ProbeResult {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" && g.opts.RequireKey {
		return ProbeResult{Kind: KindCredentialInvalid, Message: MsgKeyEmpty}
	}

	p, err := g.connect(candidate)
	if err != nil {
		return failedProbe(candidate, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	started := time.Now()
	_, err = p.Complete(ctx, CompletionRequest{
		Turns:     []Turn{{Role: RoleUser, Content: probePrompt}},
		MaxTokens: g.opts.ProbeMaxTokens,
	})
	if err != nil {
		res := failedProbe(candidate, err)
		config.Debugf("[Gate] Probe via %s failed after %v: %s (%s)", p.Name(), time.Since(started), res.Kind, res.detail)
		return res
	}

	config.Debugf("[Gate] Probe via %s succeeded in %v", p.Name(), time.Since(started))
	return ProbeResult{Valid: true, Message: MsgKeyValid, candidate: candidate}
}

func failedProbe(candidate string, err error) ProbeResult {
	perr := AsProviderError(err)
	res := ProbeResult{Kind: perr.Kind, detail: perr.Detail, candidate: candidate}
	switch perr.Kind {
	case KindCredentialInvalid:
		res.Message = MsgKeyInvalid
	case KindCredentialNoQuota:
		res.Message = MsgKeyNoQuota
	default:
		res.Kind = KindProviderTransport
		res.Message = fmt.Sprintf(msgKeyErrorFmt, perr.Detail)
	}
	return res
}

// SetValidated commits candidate as the active credential. res must be a
// Valid result returned by Probe for the same candidate.
func (g *Gate) SetValidated(candidate string, res ProbeResult) error {
	candidate = strings.TrimSpace(candidate)
	if !res.Valid || res.candidate != candidate {
		return ErrProbeMismatch
	}

	p, err := g.connect(candidate)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	g.mu.Lock()
	g.status = Validated
	g.secret = candidate
	g.provider = p
	g.mu.Unlock()

	config.Debugf("[Gate] Credential validated for %s (model %s)", p.Name(), p.GetModel())
	return nil
}

// Reset discards the credential. Calling it on an unvalidated gate is a no-op.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status == Unvalidated {
		return
	}
	g.status = Unvalidated
	g.secret = ""
	g.provider = nil
	config.Debugf("[Gate] Credential reset")
}

func (g *Gate) Status() CredentialStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

// Secret returns the committed credential, or "" while unvalidated.
func (g *Gate) Secret() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.secret
}

// Provider returns the provider bound to the committed credential.
func (g *Gate) Provider() (Provider, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.status != Validated || g.provider == nil {
		return nil, ErrNotValidated
	}
	return g.provider, nil
}
