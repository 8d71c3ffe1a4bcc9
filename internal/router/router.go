package router

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"alemsite/internal/config"
	apperrors "alemsite/internal/errors"
	"alemsite/internal/handler"
	"alemsite/internal/middleware"
	"alemsite/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authn *middleware.Authenticator,
	authHandler *handler.AuthHandler,
	forumHandler *handler.ForumHandler,
	userHandler *handler.UserHandler,
	opinionHandler *handler.OpinionHandler,
) {
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Authentication
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, authn.Required())
	api.GET("/auth/logout", authHandler.Logout)

	// Forum, public surface. Writes need identity; moderation additionally
	// needs an admin or moderator role.
	forum := api.Group("/forum")
	forum.GET("/stats", forumHandler.Stats)
	forum.GET("/posts", forumHandler.ListPosts, authn.Optional())
	forum.POST("/posts", forumHandler.CreatePost, authn.Required())
	forum.PATCH("/posts/:id", forumHandler.UpdatePost, authn.Required(), middleware.AdminOrModerator())
	forum.DELETE("/posts/:id", forumHandler.DeletePost, authn.Required(), middleware.AdminOrModerator())
	forum.GET("/posts/:id/comments", forumHandler.ListPostComments)
	forum.POST("/posts/:id/react", forumHandler.React, authn.Required())
	forum.GET("/comments", forumHandler.ListComments)
	forum.POST("/comments", forumHandler.CreateComment, authn.Required())
	forum.PATCH("/comments/:id", forumHandler.UpdateComment, authn.Required(), middleware.AdminOrModerator())
	forum.DELETE("/comments/:id", forumHandler.DeleteComment, authn.Required(), middleware.AdminOrModerator())
	forum.GET("/categories", forumHandler.ListCategories)
	forum.POST("/categories", forumHandler.CreateCategory, authn.Required(), middleware.AdminOrModerator())
	forum.PATCH("/categories/:id", forumHandler.UpdateCategory, authn.Required(), middleware.AdminOrModerator())

	// Visitor opinions, public surface.
	api.POST("/opinions", opinionHandler.Submit)
	api.GET("/opinions", opinionHandler.ListApproved)

	// Dashboard: everything behind identity plus admin-or-moderator.
	dashboard := api.Group("/dashboard", authn.Required(), middleware.AdminOrModerator())
	dashboard.GET("/forum/posts", forumHandler.ListPostsDashboard)
	dashboard.GET("/forum/comments", forumHandler.ListCommentsDashboard)
	dashboard.GET("/opinions", opinionHandler.ListAll)
	dashboard.PATCH("/opinions/:id", opinionHandler.SetApproval)
	dashboard.DELETE("/opinions/:id", opinionHandler.Delete)

	// User administration is admin-only.
	users := dashboard.Group("/users", middleware.RequireRoles(model.RoleAdmin))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PATCH("/:id", userHandler.UpdateRole)
	users.DELETE("/:id", userHandler.Delete)
}

// errorHandler shapes every error into the response envelope. Domain errors
// map to their client-facing status; anything unexpected is reported
// generically and logged.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var status int
	var message string
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		message = fmt.Sprintf("%v", he.Message)
	} else {
		httpErr := apperrors.MapErrorToHTTP(err)
		status = httpErr.StatusCode
		message = httpErr.Message
		if status == http.StatusInternalServerError {
			c.Logger().Error(err)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, handler.Envelope{Success: false, Message: message})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
