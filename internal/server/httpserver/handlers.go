package httpserver

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

type handlers struct {
	users    UserService
	students StudentService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type studentResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Group    string `json:"group"`
}

func (h *handlers) login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "login")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	token, err := h.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}

	l.Info(ctx, "login succeeded", "username", req.Username)
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"token": token}})
}

func (h *handlers) logout(c echo.Context) error {
	ctx := c.Request().Context()

	token, _ := c.Get(ctxToken).(string)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, common.ErrTokenNotFound.Error())
	}

	ok, err := h.users.Logout(ctx, token)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"success": ok}})
}

func (h *handlers) listStudents(c echo.Context) error {
	ctx := c.Request().Context()

	u, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, common.ErrTokenNotFound.Error())
	}

	page, err := queryInt(c, "page", services.DefaultPage)
	if err != nil {
		return err
	}
	perPage, err := queryInt(c, "per-page", services.DefaultPerPage)
	if err != nil {
		return err
	}

	list, err := h.students.ListForUser(ctx, u.ID, page, perPage)
	if err != nil {
		return httpError(err)
	}

	out := make([]studentResponse, 0, len(list))
	for _, s := range list {
		out = append(out, studentResponse{ID: s.ID, FullName: s.FullName, Group: s.Group})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return v, nil
}
