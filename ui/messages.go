package ui

import (
	"jethabot/model"
)

// Message type aliases - these are defined in the model package
type probeResultMsg = model.ProbeResultMsg
type credentialCommittedMsg = model.CredentialCommittedMsg
type replyMsg = model.ReplyMsg
type markdownRenderedMsg = model.MarkdownRenderedMsg
type flashTickMsg = model.FlashTickMsg

// screen selects which half of the app receives input
type screen int

const (
	screenGate screen = iota
	screenChat
)

// statusKind colors the transient status line
type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusSuccess
	statusError
)
