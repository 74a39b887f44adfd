package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"taskpilot/internal/models"
	"taskpilot/internal/repositories"
	"taskpilot/internal/services"
)

type stubOtpService struct {
	requestErr error
	verifyErr  error

	lastCode string
	lastReq  *models.RegistrationRequest
}

func (s *stubOtpService) RequestOtp(ctx context.Context, req *models.RegistrationRequest) (string, error) {
	s.lastReq = req
	if s.requestErr != nil {
		return "", s.requestErr
	}
	return req.Email, nil
}

func (s *stubOtpService) VerifyOtp(ctx context.Context, email, code string, req *models.RegistrationRequest) (*models.User, error) {
	s.lastCode = code
	s.lastReq = req
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return &models.User{ID: 1, Username: req.Username, Email: email}, nil
}

func newRegisterFixture(t *testing.T, otp *stubOtpService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewRegisterHandler(otp)
	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/resendotp", h.ResendOtp)
	r.POST("/verifyotp", h.VerifyOtp)
	return r
}

func registrationBody() gin.H {
	return gin.H{"username": "alice", "email": "a@x.com", "password": "password1"}
}

func TestRegisterSendsOtp(t *testing.T) {
	otp := &stubOtpService{}
	r := newRegisterFixture(t, otp)

	w := postJSON(t, r, "/register", registrationBody())

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, true, body["success"])
	require.Equal(t, "OTP sent to a@x.com. Verify to complete registration.", body["message"])
	require.Equal(t, "alice", otp.lastReq.Username)
}

func TestResendOtpMessage(t *testing.T) {
	r := newRegisterFixture(t, &stubOtpService{})

	w := postJSON(t, r, "/resendotp", registrationBody())

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "OTP Resend Again to a@x.com. Verify to complete registration.",
		decodeBody(t, w)["message"])
}

func TestRegisterValidationErrorsBody(t *testing.T) {
	otp := &stubOtpService{requestErr: services.FieldErrors{
		"email":    {"Enter a valid email address."},
		"password": {"Password must be at least 8 characters long."},
	}}
	r := newRegisterFixture(t, otp)

	w := postJSON(t, r, "/register", registrationBody())

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, false, body["success"])
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "password")
	require.NotContains(t, body, "message")
}

func TestVerifyOtpSuccess(t *testing.T) {
	otp := &stubOtpService{}
	r := newRegisterFixture(t, otp)

	payload := registrationBody()
	payload["otp"] = "12345"
	w := postJSON(t, r, "/verifyotp", payload)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "OTP verified. Account created successfully.", decodeBody(t, w)["message"])
	require.Equal(t, "12345", otp.lastCode)
}

func TestVerifyOtpRequiresCode(t *testing.T) {
	r := newRegisterFixture(t, &stubOtpService{})

	// otp отсутствует, binding:"required" отбрасывает до сервиса
	w := postJSON(t, r, "/verifyotp", registrationBody())

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid request body", decodeBody(t, w)["message"])
}

func TestVerifyOtpErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", services.ErrOtpNotFound, http.StatusBadRequest, "otp not found, request a new one"},
		{"expired", services.ErrOtpExpired, http.StatusBadRequest, "otp expired"},
		{"mismatch", services.ErrOtpMismatch, http.StatusBadRequest, "Invalid OTP"},
		{"duplicate", &repositories.DuplicateUserError{Field: "email"}, http.StatusBadRequest,
			(&repositories.DuplicateUserError{Field: "email"}).Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRegisterFixture(t, &stubOtpService{verifyErr: tc.err})

			payload := registrationBody()
			payload["otp"] = "12345"
			w := postJSON(t, r, "/verifyotp", payload)

			require.Equal(t, tc.status, w.Code)
			require.Equal(t, tc.message, decodeBody(t, w)["message"])
		})
	}
}

func TestVerifyOtpValidationErrors(t *testing.T) {
	otp := &stubOtpService{verifyErr: services.FieldErrors{
		"username": {"username already exist it should be unique"},
	}}
	r := newRegisterFixture(t, otp)

	payload := registrationBody()
	payload["otp"] = "12345"
	w := postJSON(t, r, "/verifyotp", payload)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, errs, "username")
}
