//nolint:unused
package httpserver_test

import (
	"bechdel/httpserver"
	"bechdel/pkg/config"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Info    string          `json:"info"`
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testJWTSecret
	return cfg
}

func signTestToken() (string, error) {
	return signTokenWith(testJWTSecret)
}

func signTokenWith(secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub": "operator",
		"exp": time.Now().Add(1 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

func decodeAPIResponse(t *testing.T, recorder *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp), "response body should be JSON: %s", recorder.Body.String())
	return resp
}

func decodeAPIResult(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NotEmpty(t, raw, "response should carry a result")
	require.NoError(t, json.Unmarshal(raw, v))
}

var testConfigWithoutSecret = config.Config{}

func makeRequest(server *httpserver.Server, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}
