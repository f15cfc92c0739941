package model

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"jethabot/config"
)

// SessionOptions configure a Session.
type SessionOptions struct {
	// Persona is the system instruction; defaults to PersonaInstruction.
	Persona string

	// Timeout bounds each provider call.
	Timeout time.Duration
}

// Snapshot is a copy of a session's state for rendering.
type Snapshot struct {
	ID         string
	Display    []Turn
	Protocol   []Turn
	Awaiting   bool
	Generation uint64
}

// LastReply returns the newest assistant entry of the display transcript.
func (s Snapshot) LastReply() (Turn, bool) {
	for i := len(s.Display) - 1; i >= 0; i-- {
		if s.Display[i].Role == RoleAssistant {
			return s.Display[i], true
		}
	}
	return Turn{}, false
}

// Session owns the protocol and display transcripts of one conversation.
// Exchanges run one at a time; Clear invalidates any exchange in flight.
type Session struct {
	ID string

	gate *Gate
	opts SessionOptions

	// turn holds one token while an exchange is running
	turn chan struct{}

	mu         sync.Mutex
	protocol   []Turn
	display    []Turn
	awaiting   bool
	generation uint64
	cancel     context.CancelFunc
}

// NewSession creates a session whose protocol transcript holds only the
// persona instruction.
func NewSession(gate *Gate, opts SessionOptions) *Session {
	if opts.Persona == "" {
		opts.Persona = PersonaInstruction
	}
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultRequestTimeout
	}
	s := &Session{
		ID:   uuid.New().String(),
		gate: gate,
		opts: opts,
		turn: make(chan struct{}, 1),
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.protocol = []Turn{{Role: RoleSystem, Content: s.opts.Persona, Timestamp: time.Now()}}
	s.display = nil
}

// Submit sends text as the next user turn and returns the display text of
// the reply. A call made while another exchange is running waits for it,
// or for ctx to be done.
func (s *Session) Submit(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}

	select {
	case s.turn <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-s.turn }()

	return s.exchange(ctx, text)
}

// TrySubmit is Submit without waiting: it fails with ErrBusy while another
// exchange is running.
func (s *Session) TrySubmit(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}

	select {
	case s.turn <- struct{}{}:
	default:
		return "", ErrBusy
	}
	defer func() { <-s.turn }()

	return s.exchange(ctx, text)
}

func (s *Session) exchange(ctx context.Context, text string) (string, error) {
	p, err := s.gate.Provider()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	user := Turn{Role: RoleUser, Content: text, Timestamp: time.Now()}
	s.protocol = append(s.protocol, user)
	s.display = append(s.display, user)
	gen := s.generation
	turns := requestTurns(s.protocol)
	reqCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	s.awaiting = true
	s.cancel = cancel
	s.mu.Unlock()

	started := time.Now()
	raw, err := p.Complete(reqCtx, CompletionRequest{Turns: turns, JSONObject: true})
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		config.Debugf("[Session %s] Discarding reply of cleared generation %d (current %d)", s.ID, gen, s.generation)
		return "", ErrStale
	}
	s.awaiting = false
	s.cancel = nil

	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && KindOf(err) == KindNone {
			err = &ProviderError{Kind: KindProviderTransport, Detail: "request timed out", Err: err}
		}
		perr := AsProviderError(err)
		failed := Turn{Role: RoleAssistant, Content: errorTurnText(perr), Timestamp: time.Now(), Failed: true}
		s.protocol = append(s.protocol, failed)
		s.display = append(s.display, failed)
		config.Debugf("[Session %s] Exchange failed after %v: %v", s.ID, time.Since(started), perr)
		if perr.Kind == KindCredentialInvalid {
			// a revoked key locks chat until a new one is validated
			s.gate.Reset()
		}
		return "", perr
	}

	shown, perr := DisplayText(raw)
	if perr != nil {
		config.Debugf("[Session %s] Reply outside the {step, content} contract, showing raw text: %v", s.ID, perr)
	}

	now := time.Now()
	s.protocol = append(s.protocol, Turn{Role: RoleAssistant, Content: raw, Timestamp: now})
	s.display = append(s.display, Turn{Role: RoleAssistant, Content: shown, Timestamp: now})
	config.Debugf("[Session %s] Reply received in %v (%d turns)", s.ID, time.Since(started), len(s.protocol))

	return shown, nil
}

// requestTurns copies the protocol transcript for a provider call,
// leaving out failed exchanges so the model never sees local error text.
func requestTurns(protocol []Turn) []Turn {
	turns := make([]Turn, 0, len(protocol))
	for i, t := range protocol {
		if t.Failed {
			continue
		}
		if t.Role == RoleUser && i+1 < len(protocol) && protocol[i+1].Failed {
			continue
		}
		turns = append(turns, t)
	}
	return turns
}

// Clear resets both transcripts. An exchange still in flight is cancelled
// and its result discarded.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.awaiting = false
	s.reset()
	config.Debugf("[Session %s] Cleared (generation %d)", s.ID, s.generation)
}

// Awaiting reports whether an exchange is waiting on the provider.
func (s *Session) Awaiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:         s.ID,
		Display:    slices.Clone(s.display),
		Protocol:   slices.Clone(s.protocol),
		Awaiting:   s.awaiting,
		Generation: s.generation,
	}
}

// Gate returns the credential gate the session draws its provider from.
func (s *Session) Gate() *Gate {
	return s.gate
}
