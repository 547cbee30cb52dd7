package course

import (
	"context"

	"studia/internal/shared/query"
)

// Repository defines the persistence contract for courses.
type Repository interface {
	Create(ctx context.Context, course *Course) error
	GetByID(ctx context.Context, id uint) (*Course, error)
	GetBySID(ctx context.Context, sid string) (*Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id uint) error

	// Search lists published courses matching the filter. Boosted
	// courses rank before unboosted ones regardless of the sort key.
	Search(ctx context.Context, filter SearchFilter) ([]*Course, int64, error)

	ListByAuthor(ctx context.Context, authorID uint) ([]*Course, error)
}

// SearchFilter narrows a catalog search.
type SearchFilter struct {
	Query    string
	AuthorID *uint
	MaxPrice *int64
	query.PageFilter
	SortBy   string
	SortDesc bool
}
