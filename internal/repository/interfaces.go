package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/fluxion/internal/domain"
)

var ErrNotFound = errors.New("not found")

type RoutineBlockRepo interface {
	Create(ctx context.Context, b *domain.RoutineBlock) error
	GetByID(ctx context.Context, id string) (*domain.RoutineBlock, error)
	List(ctx context.Context) ([]*domain.RoutineBlock, error)
	ListByDay(ctx context.Context, day time.Weekday) ([]*domain.RoutineBlock, error)
	Update(ctx context.Context, b *domain.RoutineBlock) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// KVEntry is one row of the key-value table.
type KVEntry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
