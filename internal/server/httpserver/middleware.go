package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by RequireAuth.
const (
	ctxUser  = "user"
	ctxToken = "token"
)

// RequestLogger attaches a request-scoped logger carrying a request id to
// the request context and logs every completed request.
func RequestLogger(base logging.Logger) echo.MiddlewareFunc {
	if base == nil {
		base = logging.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			l := base.With(
				"request_id", rid,
				"method", req.Method,
				"path", c.Path(),
				"remote_ip", c.RealIP(),
			)
			ctx := logging.IntoContext(req.Context(), l)
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			status := c.Response().Status
			dur := time.Since(start).Milliseconds()

			switch {
			case status >= 500:
				l.Error(ctx, "request completed", "status", status, "duration_ms", dur, "error", errString(err))
			case status >= 400:
				l.Warn(ctx, "request completed", "status", status, "duration_ms", dur, "error", errString(err))
			default:
				l.Info(ctx, "request completed", "status", status, "duration_ms", dur)
			}
			return nil
		}
	}
}

// RequireAuth resolves the bearer token of the request to a user. Missing,
// invalid, expired and revoked tokens get 401; store failures get 500.
func RequireAuth(users UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, common.ErrTokenNotFound.Error())
			}

			u, err := users.Authenticate(c.Request().Context(), token)
			if err != nil {
				return httpError(err)
			}

			c.Set(ctxUser, u)
			c.Set(ctxToken, token)
			return next(c)
		}
	}
}

func currentUser(c echo.Context) (*models.User, bool) {
	u, ok := c.Get(ctxUser).(*models.User)
	return u, ok && u != nil
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// unauthorized lists the errors answered with 401. Anything else is a 500.
var unauthorized = []error{
	common.ErrInvalidToken,
	common.ErrTokenNotFound,
	common.ErrWrongCredentials,
	common.ErrorUnauthorized,
}

// httpError maps service errors onto HTTP statuses.
func httpError(err error) *echo.HTTPError {
	for _, sentinel := range unauthorized {
		if errors.Is(err, sentinel) {
			return echo.NewHTTPError(http.StatusUnauthorized, sentinel.Error()).SetInternal(err)
		}
	}
	return echo.NewHTTPError(http.StatusInternalServerError, common.ErrorInternal.Error()).SetInternal(err)
}

// errorHandler renders errors as {"error": message}.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := common.ErrorInternal.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"error": msg})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
