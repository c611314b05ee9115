package handler

import (
	"net/http"

	"github.com/deppfellow/social-network/internal/model"
	"github.com/deppfellow/social-network/internal/server"
	"github.com/deppfellow/social-network/internal/validation"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	users Store[model.User]
}

func NewUserHandler(s *server.Server, users Store[model.User]) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// UserPayload is the writable part of a user. Values are passed to the
// database as-is; constraints belong to the schema.
type UserPayload struct {
	Username     string `json:"username"`
	EmailAddress string `json:"email_address"`
}

type CreateUserRequest struct {
	UserPayload
}

func (r *CreateUserRequest) Validate() error {
	return nil
}

type UpdateUserRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
	UserPayload
}

func (r *UpdateUserRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) ListUsers() echo.HandlerFunc {
	return Handle(func(c echo.Context, _ *ListRequest) ([]model.User, error) {
		return h.users.All(c.Request().Context())
	}, http.StatusOK, func() *ListRequest { return &ListRequest{} })
}

func (h *UserHandler) GetUser() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *IDRequest) (model.User, error) {
		return h.users.Find(c.Request().Context(), req.ID)
	}, http.StatusOK, func() *IDRequest { return &IDRequest{} })
}

func (h *UserHandler) CreateUser() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *CreateUserRequest) (model.User, error) {
		user := model.User{
			Username:     req.Username,
			EmailAddress: req.EmailAddress,
		}

		id, err := h.users.Create(c.Request().Context(), user)
		if err != nil {
			return model.User{}, err
		}

		user.ID = id
		return user, nil
	}, http.StatusCreated, func() *CreateUserRequest { return &CreateUserRequest{} })
}

func (h *UserHandler) UpdateUser() echo.HandlerFunc {
	return HandleNoContent(func(c echo.Context, req *UpdateUserRequest) error {
		return h.users.Update(c.Request().Context(), model.User{
			ID:           req.ID,
			Username:     req.Username,
			EmailAddress: req.EmailAddress,
		})
	}, http.StatusNoContent, func() *UpdateUserRequest { return &UpdateUserRequest{} })
}

func (h *UserHandler) DeleteUser() echo.HandlerFunc {
	return HandleNoContent(func(c echo.Context, req *IDRequest) error {
		return h.users.Delete(c.Request().Context(), req.ID)
	}, http.StatusNoContent, func() *IDRequest { return &IDRequest{} })
}
