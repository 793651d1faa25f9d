package http_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	dufshttp "github.com/chancat87/dufs/http"
)

func authRequest(t *testing.T, credential string, header string) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := dufshttp.BasicAuth(credential)(next)

	req := httptest.NewRequest("GET", "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func basic(cred string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(cred))
}

func TestBasicAuth_DisabledPassesAll(t *testing.T) {
	rec := authRequest(t, "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBasicAuth_ValidCredential(t *testing.T) {
	rec := authRequest(t, "alice:secret", "Basic YWxpY2U6c2VjcmV0")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBasicAuth_MissingHeader(t *testing.T) {
	rec := authRequest(t, "alice:secret", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Basic", rec.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "Unauthorized", rec.Body.String())
}

func TestBasicAuth_WrongCredential(t *testing.T) {
	rec := authRequest(t, "alice:secret", basic("alice:wrong"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBasicAuth_CaseSensitiveScheme(t *testing.T) {
	rec := authRequest(t, "alice:secret", "basic YWxpY2U6c2VjcmV0")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBasicAuth_OtherScheme(t *testing.T) {
	rec := authRequest(t, "alice:secret", "Bearer YWxpY2U6c2VjcmV0")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBasicAuth_InvalidBase64(t *testing.T) {
	rec := authRequest(t, "alice:secret", "Basic !!!not-base64!!!")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBasicAuth_NonUTF8Credential(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd})
	rec := authRequest(t, "alice:secret", "Basic "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
