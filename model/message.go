package model

import "time"

// Role tags the author of a Turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged message unit in a transcript.
type Turn struct {
	Role      Role
	Content   string
	Timestamp time.Time

	// Failed marks an assistant turn synthesized from a provider error
	// instead of a model reply.
	Failed bool
}
