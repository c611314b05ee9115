package handler

import (
	"context"

	"github.com/deppfellow/social-network/internal/validation"
)

// Store is the CRUD contract the handlers need from a repository.
// *repository.UserRepository and *repository.PostRepository satisfy it.
type Store[T any] interface {
	All(ctx context.Context) ([]T, error)
	Find(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, record T) (int64, error)
	Update(ctx context.Context, record T) error
	Delete(ctx context.Context, id int64) error
}

// IDRequest carries the :id path parameter shared by the item routes.
type IDRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (r *IDRequest) Validate() error {
	return validation.Struct(r)
}

// ListRequest has no parameters.
type ListRequest struct{}

func (r *ListRequest) Validate() error {
	return nil
}
