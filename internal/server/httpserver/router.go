// Package httpserver is the HTTP gate in front of the token service: it
// logs users in and out, and guards the private routes with bearer tokens.
package httpserver

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/labstack/echo/v4"
)

// UserService is what the gate needs from services.UserService.
type UserService interface {
	Login(ctx context.Context, userName, password string) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// StudentService is what the gate needs from services.StudentService.
type StudentService interface {
	ListForUser(ctx context.Context, userID int64, page, perPage int) ([]*models.Student, error)
}

type Deps struct {
	Users    UserService
	Students StudentService
	Logger   logging.Logger
	// Ready reports whether the server can take traffic; nil means always.
	Ready func(ctx context.Context) error
}

// New returns an echo instance with every route registered.
func New(d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.Use(RequestLogger(d.Logger))

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready").SetInternal(err)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	h := &handlers{users: d.Users, students: d.Students}

	e.POST("/auth", h.login)

	private := e.Group("")
	private.Use(RequireAuth(d.Users))

	private.DELETE("/auth", h.logout)
	private.GET("/users", h.listStudents)
}
