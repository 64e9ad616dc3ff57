package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/chordgen-api/internal/config"
)

const progressionBody = `{"key":"A","scale":"minor","bars":4,"seed":1,"cadence":"deceptive",
	"sevenths":false,"voicing":"drop-2","inversion":"smooth"}`

func testConfig(authMode string) *config.Config {
	return &config.Config{
		Environment: "test",
		AuthMode:    authMode,
		JWTSecret:   "router-secret",
		MaxBars:     64,
		CORSOrigins: []string{"*"},
	}
}

func doRequest(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetupRouter_NoAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(testConfig("none"), nil, "test")

	w := doRequest(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = doRequest(r, http.MethodPost, "/api/v1/progressions", progressionBody, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)

	w = doRequest(r, http.MethodGet, "/api/v1/theory", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_GatewayAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(testConfig("gateway"), nil, "test")

	w := doRequest(r, http.MethodPost, "/api/v1/progressions", progressionBody, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/progressions", progressionBody, map[string]string{"X-User-ID": "7"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Health stays public
	w = doRequest(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_JWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig("jwt")
	r := SetupRouter(cfg, nil, "test")

	w := doRequest(r, http.MethodPost, "/api/v1/progressions", progressionBody, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	w = doRequest(r, http.MethodPost, "/api/v1/progressions", progressionBody, map[string]string{
		"Authorization": "Bearer " + token,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_MaxBarsFromConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig("none")
	cfg.MaxBars = 8
	r := SetupRouter(cfg, nil, "test")

	body := `{"key":"C","scale":"major","bars":9,"cadence":"half","voicing":"close","inversion":"root"}`
	w := doRequest(r, http.MethodPost, "/api/v1/progressions", body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bars must be between 1 and 8, got 9")
}
