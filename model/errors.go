package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures reported by the provider or the reply contract.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindCredentialInvalid
	KindCredentialNoQuota
	KindProviderTransport
	KindReplyParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCredentialInvalid:
		return "credential_invalid"
	case KindCredentialNoQuota:
		return "credential_no_quota"
	case KindProviderTransport:
		return "provider_transport"
	case KindReplyParse:
		return "reply_parse"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	ErrNotValidated  = errors.New("credential not validated")
	ErrBusy          = errors.New("a reply is already pending")
	ErrEmptyMessage  = errors.New("message is empty")
	ErrStale         = errors.New("reply discarded: chat was cleared")
	ErrProbeMismatch = errors.New("credential does not match a successful probe")
)

// ProviderError carries the classified kind of a provider failure.
type ProviderError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AsProviderError returns err as a *ProviderError. Errors that carry no
// classification are reported as transport failures.
func AsProviderError(err error) *ProviderError {
	if err == nil {
		return nil
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr
	}
	return &ProviderError{Kind: KindProviderTransport, Detail: err.Error(), Err: err}
}

// KindOf returns the ErrorKind carried by err, or KindNone.
func KindOf(err error) ErrorKind {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindNone
}
