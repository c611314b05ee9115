// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/social-network/internal/handler"
	"github.com/deppfellow/social-network/internal/middleware"
	"github.com/deppfellow/social-network/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with the global middleware chain and
// every route registered.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id must exist before the logger is built,
	// and the transaction before trace ids are attached to it.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerUserRoutes(v1, h)
	registerPostRoutes(v1, h)

	return router
}

func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
}

func registerUserRoutes(g *echo.Group, h *handler.Handlers) {
	users := g.Group("/users")
	users.GET("", h.User.ListUsers())
	users.POST("", h.User.CreateUser())
	users.GET("/:id", h.User.GetUser())
	users.PUT("/:id", h.User.UpdateUser())
	users.DELETE("/:id", h.User.DeleteUser())
}

func registerPostRoutes(g *echo.Group, h *handler.Handlers) {
	posts := g.Group("/posts")
	posts.GET("", h.Post.ListPosts())
	posts.POST("", h.Post.CreatePost())
	posts.GET("/:id", h.Post.GetPost())
	posts.PUT("/:id", h.Post.UpdatePost())
	posts.DELETE("/:id", h.Post.DeletePost())
}
