package models

import "time"

// ChatMessage is one entry in the local chat transcript. History is kept
// for display only and is never sent upstream.
type ChatMessage struct {
	Message   string    `json:"message"`
	Role      string    `json:"role"` // "user" or "ai"
	Agent     string    `json:"agent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionSnapshot is the durable form of a session: the current idea list
// plus the moment it was written.
type SessionSnapshot struct {
	Ideas     []Idea    `json:"ideas"`
	Timestamp time.Time `json:"timestamp"`
}
