package model

import (
	"path"
	"time"
)

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypePush             WebhookEventType = "push"
	EventTypeWorkflowDispatch WebhookEventType = "workflow_dispatch"
	EventTypeUnknown          WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Ref        string           // Git ref for push events
	Repository string           // Repository full name
	Sender     string           // Sender username
	ReceivedAt time.Time        // Time when the event was received
	// ChangedFiles is the union of added/modified/removed paths across
	// the pushed commits
	ChangedFiles []string
	RawPayload   []byte // Raw JSON payload
}

// IsSupportedEvent checks if the event can trigger an update run
func (e *WebhookEvent) IsSupportedEvent() bool {
	switch e.Type {
	case EventTypePush, EventTypeWorkflowDispatch:
		return true
	default:
		return false
	}
}

// TouchesAny reports whether any changed file matches one of the watched
// path patterns. Patterns use path.Match syntax; a pattern without glob
// characters also matches as an exact path or directory prefix.
func (e *WebhookEvent) TouchesAny(patterns []string) bool {
	if e.Type == EventTypeWorkflowDispatch {
		return true // manual dispatch always triggers
	}
	for _, changed := range e.ChangedFiles {
		for _, pattern := range patterns {
			if ok, err := path.Match(pattern, changed); err == nil && ok {
				return true
			}
			if changed == pattern || hasPathPrefix(changed, pattern) {
				return true
			}
		}
	}
	return false
}

func hasPathPrefix(p, prefix string) bool {
	if len(p) <= len(prefix) {
		return false
	}
	return p[:len(prefix)] == prefix && p[len(prefix)] == '/'
}
