package prediction

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new prediction snapshot.
	Create(ctx context.Context, p *Prediction) error

	// GetByID retrieves a prediction by primary key. Returns
	// ErrPredictionNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Prediction, error)

	// ListByUser returns a user's predictions, most recent first,
	// bounded by q.Limit.
	ListByUser(ctx context.Context, q *ListQuery) ([]*Prediction, error)

	// CountByUser returns the total number of stored predictions for a
	// user.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
