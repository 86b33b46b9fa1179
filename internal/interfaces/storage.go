package interfaces

import (
	"context"

	"github.com/antigravity-io/antigravity/internal/models"
)

// SnapshotStore persists the last successfully computed movers response so
// the dashboard survives upstream outages.
//
// Save overwrites any prior snapshot atomically. Load returns
// storage.ErrSnapshotNotFound when no usable snapshot exists; a corrupt or
// unreadable backing store is reported the same way, never as a distinct
// error.
type SnapshotStore interface {
	Save(ctx context.Context, response *models.MoversResponse) error
	Load(ctx context.Context) (*models.MoversResponse, error)
}
