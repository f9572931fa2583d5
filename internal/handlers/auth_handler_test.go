package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/formteam/formtrack-backend/internal/services/auth"

	"github.com/gin-gonic/gin"
)

type stubOTPVerifier struct {
	sendErr   error
	verifyErr error
}

func (s *stubOTPVerifier) SendOTP(email string) error { return s.sendErr }

func (s *stubOTPVerifier) VerifyOTP(email, code string) error { return s.verifyErr }

func newAuthRouter(otp *stubOTPVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(nil, otp)
	r := gin.New()
	r.POST("/api/auth/send-otp", handler.SendOTP)
	r.POST("/api/auth/verify-otp", handler.VerifyOTP)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyOTPStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		verifyErr  error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"wrong code", auth.ErrOTPIncorrect, http.StatusBadRequest},
		{"expired code", auth.ErrOTPExpired, http.StatusBadRequest},
		{"never requested", auth.ErrOTPNotRequested, http.StatusBadRequest},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAuthRouter(&stubOTPVerifier{verifyErr: tc.verifyErr})
			w := postJSON(t, r, "/api/auth/verify-otp", `{"email":"admin@example.com","code":"123456"}`)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestSendOTPUnknownEmail(t *testing.T) {
	r := newAuthRouter(&stubOTPVerifier{sendErr: auth.ErrEmailNotRegistered})
	w := postJSON(t, r, "/api/auth/send-otp", `{"email":"nobody@example.com"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
