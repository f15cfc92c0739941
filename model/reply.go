package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Reply is the structured object the persona is instructed to answer with.
type Reply struct {
	Step    string `json:"step"`
	Content string `json:"content"`
}

// ParseReply decodes raw as a {"step", "content"} object. A reply is
// well-formed when it is a JSON object with a string "content" field.
func ParseReply(raw string) (Reply, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err != nil {
		return Reply{}, &ProviderError{Kind: KindReplyParse, Detail: "reply is not a JSON object", Err: err}
	}

	content, ok := fields["content"]
	if !ok {
		return Reply{}, &ProviderError{Kind: KindReplyParse, Detail: `reply has no "content" field`}
	}

	var reply Reply
	if err := json.Unmarshal(content, &reply.Content); err != nil {
		return Reply{}, &ProviderError{Kind: KindReplyParse, Detail: `"content" is not a string`, Err: err}
	}
	if step, ok := fields["step"]; ok {
		// step is informational; a non-string value does not invalidate the reply
		_ = json.Unmarshal(step, &reply.Step)
	}

	return reply, nil
}

// DisplayText resolves the text shown to the user for a raw reply: the
// "content" field when the reply parses, the raw body verbatim otherwise.
// The parse error is returned for diagnostics only.
func DisplayText(raw string) (string, error) {
	reply, err := ParseReply(raw)
	if err != nil {
		return raw, err
	}
	return reply.Content, nil
}

// errorTurnText is the inline message shown in place of a reply that never arrived.
func errorTurnText(err error) string {
	perr := AsProviderError(err)
	switch perr.Kind {
	case KindCredentialInvalid:
		return "⚠️ The API key was rejected. Change it to keep chatting."
	case KindCredentialNoQuota:
		return "⚠️ The API key has no usable quota/credits left."
	default:
		return fmt.Sprintf("⚠️ Error: %s", perr.Detail)
	}
}
