package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"olcmelab/internal/config"
	"olcmelab/internal/database"
)

type testEnv struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

// newTestEnv wires the real router against an in-memory sqlite
// database. Foreign keys are switched on so the declarative cascade
// behaves like the production schema.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:                "test-secret",
		JWTAlg:                   "HS256",
		AccessTokenExpireMinutes: 60,
	}

	h := New(db, cfg, nil)
	router := gin.New()
	h.RegisterRoutes(router)

	return &testEnv{t: t, router: router, db: db, cfg: cfg}
}

func (e *testEnv) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	e.t.Helper()
	var out map[string]interface{}
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (e *testEnv) decodeList(w *httptest.ResponseRecorder) []map[string]interface{} {
	e.t.Helper()
	var out []map[string]interface{}
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// login registers a researcher account and returns a bearer token.
func (e *testEnv) login() string {
	e.t.Helper()

	creds := map[string]string{"email": "researcher@olcme.tr", "password": "pw1"}
	w := e.request("POST", "/auth/register", creds, "")
	require.Equal(e.t, 200, w.Code)

	w = e.request("POST", "/auth/login", creds, "")
	require.Equal(e.t, 200, w.Code)

	token, ok := e.decode(w)["access_token"].(string)
	require.True(e.t, ok)
	return token
}

// seed creates a study with one instrument and returns both ids.
func (e *testEnv) seed(token string) (studyID, instrumentID float64) {
	e.t.Helper()

	w := e.request("POST", "/studies", map[string]string{"title": "S1"}, token)
	require.Equal(e.t, 200, w.Code)
	studyID = e.decode(w)["id"].(float64)

	w = e.request("POST", "/instruments", map[string]interface{}{
		"study_id": studyID,
		"name":     "I1",
		"spec":     map[string]interface{}{"blocks": []interface{}{}},
	}, token)
	require.Equal(e.t, 200, w.Code)
	instrumentID = e.decode(w)["id"].(float64)
	return studyID, instrumentID
}
