package interfaces

import (
	"context"

	"github.com/memari-majid/paperwatch/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// UpdateUseCase runs one full update cycle and returns its findings
type UpdateUseCase interface {
	Run(ctx context.Context) (*model.Findings, error)
}

// SnapshotUseCase fetches a repository snapshot for serve-mode runs that
// have no local checkout
type SnapshotUseCase interface {
	Fetch(ctx context.Context, owner, repo, ref string) (*model.Snapshot, error)
}

// RelevanceScorer assesses a paper against the review scope
type RelevanceScorer interface {
	Score(ctx context.Context, paper *model.Paper) (*model.Relevance, error)
}

// Suggester generates content improvement suggestions from file excerpts
type Suggester interface {
	Suggest(ctx context.Context, contextText string, count int) ([]string, error)
}
