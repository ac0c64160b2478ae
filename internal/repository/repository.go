package repository

import (
	"context"

	"github.com/mr1hm/go-balloon-watch/internal/models"
)

// Filter narrows list queries. Limit <= 0 means no cap.
type Filter struct {
	Limit int
	Tier  *models.Tier
}

// PositionRepository serves the latest merged position set. Every refresh
// replaces the set wholesale; nothing survives a restart.
type PositionRepository interface {
	ReplacePositions(ctx context.Context, positions []models.Position) error
	ListPositions(ctx context.Context, opts Filter) ([]models.Position, error)
}

// AdvisoryRepository serves the latest classified, ranked advisory set.
type AdvisoryRepository interface {
	ReplaceAdvisories(ctx context.Context, advisories []models.Advisory) error
	ListAdvisories(ctx context.Context, opts Filter) ([]models.Advisory, error)
	GetAdvisory(ctx context.Context, id string) (*models.Advisory, error)
}
