package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_LoginListLogout(t *testing.T) {
	ctx := context.Background()
	db := repotest.NewSQLite(t)
	rm := repomanager.NewRepositoryManager(dbx.SQLite)

	users := services.NewUserService(db, rm, auth.NewTokenService([]byte("k"), rm.Tokens(db), nil))
	students := services.NewStudentService(db, rm)

	u, err := users.Register(ctx, "alice@example.com", "alice", "pw")
	require.NoError(t, err)
	for _, name := range []string{"First", "Second", "Third"} {
		_, err := students.Create(ctx, &models.Student{UserID: u.ID, FullName: name})
		require.NoError(t, err)
	}

	e := New(&Deps{Users: users, Students: students, Logger: logging.New("error", &bytes.Buffer{})})

	rec := do(e, http.MethodPost, "/auth", `{"username":"alice","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	token := login.Data.Token
	require.NotEmpty(t, token)

	rec = do(e, http.MethodGet, "/users?per-page=2&page=2", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"fullName":"Third"`)
	assert.NotContains(t, rec.Body.String(), `"fullName":"First"`)

	rec = do(e, http.MethodDelete, "/auth", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(e, http.MethodGet, "/users", "", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication token not found", decode(t, rec)["error"])

	rec = do(e, http.MethodPost, "/auth", `{"username":"alice","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
