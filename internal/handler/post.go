package handler

import (
	"net/http"

	"github.com/deppfellow/social-network/internal/model"
	"github.com/deppfellow/social-network/internal/server"
	"github.com/deppfellow/social-network/internal/validation"
	"github.com/labstack/echo/v4"
)

type PostHandler struct {
	Handler
	posts Store[model.Post]
}

func NewPostHandler(s *server.Server, posts Store[model.Post]) *PostHandler {
	return &PostHandler{
		Handler: NewHandler(s),
		posts:   posts,
	}
}

// PostPayload is the writable part of a post. Values are passed to the
// database as-is; constraints belong to the schema.
type PostPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Views   int64  `json:"views"`
	UserID  int64  `json:"user_id"`
}

type CreatePostRequest struct {
	PostPayload
}

func (r *CreatePostRequest) Validate() error {
	return nil
}

type UpdatePostRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
	PostPayload
}

func (r *UpdatePostRequest) Validate() error {
	return validation.Struct(r)
}

func (h *PostHandler) ListPosts() echo.HandlerFunc {
	return Handle(func(c echo.Context, _ *ListRequest) ([]model.Post, error) {
		return h.posts.All(c.Request().Context())
	}, http.StatusOK, func() *ListRequest { return &ListRequest{} })
}

func (h *PostHandler) GetPost() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *IDRequest) (model.Post, error) {
		return h.posts.Find(c.Request().Context(), req.ID)
	}, http.StatusOK, func() *IDRequest { return &IDRequest{} })
}

func (h *PostHandler) CreatePost() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *CreatePostRequest) (model.Post, error) {
		post := model.Post{
			Title:   req.Title,
			Content: req.Content,
			Views:   req.Views,
			UserID:  req.UserID,
		}

		id, err := h.posts.Create(c.Request().Context(), post)
		if err != nil {
			return model.Post{}, err
		}

		post.ID = id
		return post, nil
	}, http.StatusCreated, func() *CreatePostRequest { return &CreatePostRequest{} })
}

func (h *PostHandler) UpdatePost() echo.HandlerFunc {
	return HandleNoContent(func(c echo.Context, req *UpdatePostRequest) error {
		return h.posts.Update(c.Request().Context(), model.Post{
			ID:      req.ID,
			Title:   req.Title,
			Content: req.Content,
			Views:   req.Views,
			UserID:  req.UserID,
		})
	}, http.StatusNoContent, func() *UpdatePostRequest { return &UpdatePostRequest{} })
}

func (h *PostHandler) DeletePost() echo.HandlerFunc {
	return HandleNoContent(func(c echo.Context, req *IDRequest) error {
		return h.posts.Delete(c.Request().Context(), req.ID)
	}, http.StatusNoContent, func() *IDRequest { return &IDRequest{} })
}
