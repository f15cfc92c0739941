package model

// ProbeResultMsg is sent when a credential probe completes
type ProbeResultMsg struct {
	Candidate string
	Result    ProbeResult
}

// CredentialCommittedMsg is sent after a valid probe has been committed
type CredentialCommittedMsg struct {
	Err error
}

// ReplyMsg is sent when an exchange started by SubmitCmd finishes
type ReplyMsg struct {
	Text string
	Err  error
}

// MarkdownRenderedMsg carries the rendered form of one display turn.
// Generation ties it to the transcript it was rendered for.
type MarkdownRenderedMsg struct {
	Index      int
	Generation uint64
	Rendered   string
}

type FlashTickMsg struct{}
