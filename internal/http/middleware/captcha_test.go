package middleware_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chandrabharti/restaurant-api/internal/config"
	"github.com/chandrabharti/restaurant-api/internal/http/middleware"
)

type stubVerifier struct {
	accept string
}

func (s stubVerifier) Verify(_ context.Context, token, _ string) error {
	if token == s.accept {
		return nil
	}
	return fmt.Errorf("CAPTCHA verification failed")
}

func captchaConfig(env string) *config.Config {
	return &config.Config{
		Env:     env,
		Captcha: config.CaptchaConfig{TestToken: "test-captcha-token-for-development"},
	}
}

func echoBody() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	})
}

func postJSON(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCaptchaSkippedOutsideProduction(t *testing.T) {
	h := middleware.Captcha(stubVerifier{accept: "good"}, captchaConfig("development"))(echoBody())

	rec := postJSON(h, `{"email":"x@example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCaptchaEnforcedInProduction(t *testing.T) {
	h := middleware.Captcha(stubVerifier{accept: "good"}, captchaConfig("production"))(echoBody())

	rec := postJSON(h, `{"email":"x@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(h, `{"email":"x@example.com","captchaToken":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(h, `{"email":"x@example.com","captchaToken":"good"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCaptchaTestTokenAlwaysPasses(t *testing.T) {
	h := middleware.Captcha(stubVerifier{accept: "good"}, captchaConfig("production"))(echoBody())

	rec := postJSON(h, `{"captchaToken":"test-captcha-token-for-development"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// The middleware reads the body to find the token; the handler must still
// see the full payload afterwards.
func TestCaptchaPreservesBody(t *testing.T) {
	h := middleware.Captcha(stubVerifier{accept: "good"}, captchaConfig("production"))(echoBody())

	payload := `{"email":"x@example.com","captchaToken":"good"}`
	rec := postJSON(h, payload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, payload, rec.Body.String())
}
