package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"

	"jethabot/model"
)

// Substrings that identify a rejected key or an exhausted balance when a
// provider gives no structured signal. Matched case-insensitively.
var (
	invalidKeyMarkers = []string{
		"incorrect_api_key",
		"invalid_api_key",
		"incorrect api key",
		"invalid x-api-key",
		"authentication_error",
		"unauthorized",
	}
	noQuotaMarkers = []string{
		"insufficient_quota",
		"exceeded your current quota",
		"credit balance is too low",
		"insufficient credits",
	}
)

// ClassifyError maps an error returned by any provider SDK onto the
// model.ErrorKind taxonomy. Structured fields (HTTP status, error code) are
// consulted first; the message text is matched against known markers only
// when they are inconclusive. Anything unrecognized is a transport error.
func ClassifyError(err error) *model.ProviderError {
	if err == nil {
		return nil
	}

	var perr *model.ProviderError
	if errors.As(err, &perr) {
		return perr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &model.ProviderError{Kind: model.KindProviderTransport, Detail: "request timed out", Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &model.ProviderError{Kind: model.KindProviderTransport, Detail: "request cancelled", Err: err}
	}

	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return classifyOpenAI(oaErr, err)
	}

	var anErr *anthropic.Error
	if errors.As(err, &anErr) {
		return classifyAnthropic(anErr, err)
	}

	var authErr api.AuthorizationError
	if errors.As(err, &authErr) {
		detail := authErr.Status
		if detail == "" {
			detail = "unauthorized"
		}
		return &model.ProviderError{Kind: model.KindCredentialInvalid, Detail: detail, Err: err}
	}

	var olErr api.StatusError
	if errors.As(err, &olErr) {
		return classifyStatus(olErr.StatusCode, olErr.ErrorMessage, olErr.ErrorMessage, err)
	}

	return classifyText(err.Error(), err.Error(), err)
}

func classifyOpenAI(e *openai.Error, err error) *model.ProviderError {
	code := strings.ToLower(e.Code)
	typ := strings.ToLower(e.Type)

	detail := e.Message
	if detail == "" {
		detail = statusDetail(e.StatusCode)
	}

	switch {
	case code == "invalid_api_key" || code == "incorrect_api_key":
		return &model.ProviderError{Kind: model.KindCredentialInvalid, Detail: detail, Err: err}
	case code == "insufficient_quota" || typ == "insufficient_quota":
		return &model.ProviderError{Kind: model.KindCredentialNoQuota, Detail: detail, Err: err}
	}

	return classifyStatus(e.StatusCode, detail, e.Message+" "+e.RawJSON(), err)
}

func classifyAnthropic(e *anthropic.Error, err error) *model.ProviderError {
	raw := e.RawJSON()
	detail := statusDetail(e.StatusCode)
	if raw != "" {
		detail = fmt.Sprintf("%s: %s", detail, raw)
	}
	return classifyStatus(e.StatusCode, detail, raw, err)
}

// classifyStatus decides on the HTTP status, then on the text.
func classifyStatus(status int, detail, text string, err error) *model.ProviderError {
	switch status {
	case http.StatusUnauthorized:
		return &model.ProviderError{Kind: model.KindCredentialInvalid, Detail: detail, Err: err}
	case http.StatusPaymentRequired:
		// OpenRouter reports an empty balance as 402
		return &model.ProviderError{Kind: model.KindCredentialNoQuota, Detail: detail, Err: err}
	}
	return classifyText(detail, text, err)
}

func classifyText(detail, text string, err error) *model.ProviderError {
	lower := strings.ToLower(text)
	kind := model.KindProviderTransport
	switch {
	case containsAny(lower, noQuotaMarkers):
		kind = model.KindCredentialNoQuota
	case containsAny(lower, invalidKeyMarkers):
		kind = model.KindCredentialInvalid
	}
	if detail == "" {
		detail = "unknown provider error"
	}
	return &model.ProviderError{Kind: kind, Detail: strings.TrimSpace(detail), Err: err}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func statusDetail(status int) string {
	if status == 0 {
		return "provider error"
	}
	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}

func missingKeyError(name string) error {
	return &model.ProviderError{
		Kind:   model.KindCredentialInvalid,
		Detail: fmt.Sprintf("%s API key is required", name),
	}
}
