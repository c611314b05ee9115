package handler

import (
	"github.com/deppfellow/social-network/internal/repository"
	"github.com/deppfellow/social-network/internal/server"
)

// Handlers groups all HTTP handlers so the router receives one object.
type Handlers struct {
	Health *HealthHandler
	User   *UserHandler
	Post   *PostHandler
}

func NewHandlers(s *server.Server, repos *repository.Repositories) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		User:   NewUserHandler(s, repos.Users),
		Post:   NewPostHandler(s, repos.Posts),
	}
}
