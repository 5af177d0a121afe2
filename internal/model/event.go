package model

// PushEventType is the only event type that carries commits we display.
const PushEventType = "PushEvent"

// RawEvent is one entry of the public events feed
type RawEvent struct {
	ID      string     `json:"id"`
	Type    string     `json:"type"`
	Repo    RawRepo    `json:"repo"`
	Payload RawPayload `json:"payload"`
}

// IsPush reports whether the event is a push event
func (e RawEvent) IsPush() bool {
	return e.Type == PushEventType
}

// RawRepo identifies the repository of an event. URL is the API url,
// e.g. https://api.github.com/repos/owner/name
type RawRepo struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RawPayload holds event-type-specific data.
// Commits is nil for events without commit data.
type RawPayload struct {
	Commits []RawCommit `json:"commits,omitempty"`
}

// RawCommit is a commit inside a push event payload
type RawCommit struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}
