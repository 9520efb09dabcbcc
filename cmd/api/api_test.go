package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	authRepo "notespace-backend/internal/auth/repository"
	authUsecase "notespace-backend/internal/auth/usecase"
	noteRepo "notespace-backend/internal/note/repository"
	noteUsecase "notespace-backend/internal/note/usecase"
	"notespace-backend/internal/testutil"
	"notespace-backend/pkg/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		GinMode:          gin.TestMode,
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
}

func newEngine(t *testing.T, db *gorm.DB, cfg *config.Config) *gin.Engine {
	t.Helper()
	log := zap.NewNop()
	authUc := authUsecase.NewAuthUsecase(authRepo.NewUserRepository(db), cfg, log)
	noteUc := noteUsecase.NewNoteUsecase(noteRepo.NewGormNoteRepository(db), log)
	return NewHandler(authUc, noteUc, db, cfg, log).Engine()
}

type client struct {
	t *testing.T
	r http.Handler
}

func (c client) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	return w
}

func (c client) object(w *httptest.ResponseRecorder) map[string]any {
	c.t.Helper()
	var out map[string]any
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (c client) list(w *httptest.ResponseRecorder) []map[string]any {
	c.t.Helper()
	var out []map[string]any
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// signup registers a user and returns its id and access token.
func (c client) signup(username, password string) (string, string) {
	c.t.Helper()
	w := c.do(http.MethodPost, "/api/users/", `{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())
	id := c.object(w)["id"].(string)

	w = c.do(http.MethodPost, "/api/token/", `{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
	return id, c.object(w)["access"].(string)
}

func TestNotesAreIsolatedBetweenUsers(t *testing.T) {
	db := testutil.NewDB(t)
	c := client{t: t, r: newEngine(t, db, testConfig())}

	aliceID, alice := c.signup("alice", "pw1")
	_, bob := c.signup("bob", "pw2")

	w := c.do(http.MethodPost, "/api/notes/", `{"title":"t","body":"b","owner":"someone-else"}`, alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	note := c.object(w)
	noteID := note["id"].(string)
	assert.Equal(t, aliceID, note["owner"])

	w = c.do(http.MethodGet, "/api/notes/", "", bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, c.list(w))

	w = c.do(http.MethodGet, "/api/notes/"+noteID+"/", "", bob)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = c.do(http.MethodPatch, "/api/notes/"+noteID+"/", `{"title":"pwned"}`, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = c.do(http.MethodDelete, "/api/notes/"+noteID+"/", "", bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodGet, "/api/notes/", "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	notes := c.list(w)
	require.Len(t, notes, 1)
	assert.Equal(t, "t", notes[0]["title"])

	w = c.do(http.MethodPut, "/api/notes/"+noteID+"/", `{"title":"t2","body":"b2"}`, alice)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "t2", c.object(w)["title"])

	w = c.do(http.MethodDelete, "/api/notes/"+noteID+"/", "", alice)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = c.do(http.MethodGet, "/api/notes/"+noteID+"/", "", alice)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProtectedRoutesRequireAccessToken(t *testing.T) {
	db := testutil.NewDB(t)
	c := client{t: t, r: newEngine(t, db, testConfig())}

	for _, path := range []string{"/api/notes/", "/api/users/", "/api/users/me/"} {
		w := c.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		w = c.do(http.MethodGet, path, "", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	cfg := testConfig()
	cfg.JWTAccessExpiry = -time.Minute
	expired := client{t: t, r: newEngine(t, db, cfg)}
	_, token := expired.signup("carol", "pw")
	w := c.do(http.MethodGet, "/api/notes/", "", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterAndMe(t *testing.T) {
	db := testutil.NewDB(t)
	c := client{t: t, r: newEngine(t, db, testConfig())}

	id, token := c.signup("alice", "pw1")

	w := c.do(http.MethodPost, "/api/users/", `{"username":"alice","password":"x"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodGet, "/api/users/me/", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	me := c.object(w)
	assert.Equal(t, id, me["id"])
	assert.NotContains(t, me, "password")

	w = c.do(http.MethodGet, "/api/users/", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, c.list(w), 1)
}

func TestDeleteUserCascadesNotes(t *testing.T) {
	db := testutil.NewDB(t)
	c := client{t: t, r: newEngine(t, db, testConfig())}

	aliceID, alice := c.signup("alice", "pw1")
	_, bob := c.signup("bob", "pw2")
	c.do(http.MethodPost, "/api/notes/", `{"title":"a"}`, alice)
	c.do(http.MethodPost, "/api/notes/", `{"title":"b"}`, bob)

	w := c.do(http.MethodDelete, "/api/users/"+aliceID+"/", "", bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodDelete, "/api/users/"+aliceID+"/", "", alice)
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	require.NoError(t, db.Table("notes").Where("owner_id = ?", aliceID).Count(&count).Error)
	assert.Zero(t, count)

	w = c.do(http.MethodGet, "/api/notes/", "", alice)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = c.do(http.MethodGet, "/api/notes/", "", bob)
	assert.Len(t, c.list(w), 1)
}

func TestHealthCheck(t *testing.T) {
	db := testutil.NewDB(t)
	c := client{t: t, r: newEngine(t, db, testConfig())}

	for _, path := range []string{"/", "/health/"} {
		w := c.do(http.MethodGet, path, "", "")
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"status":"ok","db":true}`, w.Body.String())
	}
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).WillReturnError(errors.New("connection refused"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).WillReturnError(errors.New("connection refused"))

	c := client{t: t, r: newEngine(t, db, testConfig())}
	w := c.do(http.MethodGet, "/health/", "", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := c.object(w)
	assert.Equal(t, false, body["db"])
	assert.Equal(t, "database unreachable", body["error"])

	cfg := testConfig()
	cfg.ExposeErrorDetails = true
	exposed := client{t: t, r: newEngine(t, db, cfg)}
	w = exposed.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, exposed.object(w)["error"], "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissingTrailingSlashRedirects(t *testing.T) {
	db := testutil.NewDB(t)
	c := client{t: t, r: newEngine(t, db, testConfig())}

	w := c.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/health/", w.Header().Get("Location"))
}

func TestCORSPreflight(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := testConfig()
	cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	r := newEngine(t, db, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/notes/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/notes/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
