package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskpilot/internal/models"
	"taskpilot/internal/repositories"
	"taskpilot/internal/services"
)

type RegisterHandler struct {
	otpService services.OtpService
}

func NewRegisterHandler(otpService services.OtpService) *RegisterHandler {
	return &RegisterHandler{otpService: otpService}
}

func (h *RegisterHandler) requestOtp(c *gin.Context, resendMessage bool) {
	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[register][request-otp] bind json failed: %v", err)
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	email, err := h.otpService.RequestOtp(c.Request.Context(), &req)
	if err != nil {
		var fieldErrs services.FieldErrors
		if errors.As(err, &fieldErrs) {
			failFields(c, fieldErrs)
			return
		}
		log.Printf("[register][request-otp] failed email=%q: %v", req.Email, err)
		fail(c, http.StatusInternalServerError, "failed to send otp")
		return
	}

	msg := fmt.Sprintf("OTP sent to %s. Verify to complete registration.", email)
	if resendMessage {
		msg = fmt.Sprintf("OTP Resend Again to %s. Verify to complete registration.", email)
	}
	ok(c, http.StatusCreated, msg, nil)
}

// @Summary      Запрос OTP для регистрации
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Param        registration  body      models.RegistrationRequest  true  "Данные регистрации"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /register [post]
func (h *RegisterHandler) Register(c *gin.Context) {
	h.requestOtp(c, false)
}

// @Summary      Повторная отправка OTP
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Param        registration  body      models.RegistrationRequest  true  "Данные регистрации"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /resendotp [post]
func (h *RegisterHandler) ResendOtp(c *gin.Context) {
	// тот же самый issue: новый код перетирает старый
	h.requestOtp(c, true)
}

type verifyOtpRequest struct {
	Otp string `json:"otp" binding:"required"`
	models.RegistrationRequest
}

// @Summary      Проверка OTP и создание аккаунта
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Param        payload  body      verifyOtpRequest  true  "Код и данные регистрации"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /verifyotp [post]
func (h *RegisterHandler) VerifyOtp(c *gin.Context) {
	var req verifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[register][verify-otp] bind json failed: %v", err)
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.otpService.VerifyOtp(c.Request.Context(), req.Email, req.Otp, &req.RegistrationRequest)
	if err != nil {
		var fieldErrs services.FieldErrors
		var dup *repositories.DuplicateUserError
		switch {
		case errors.Is(err, services.ErrOtpNotFound):
			fail(c, http.StatusBadRequest, "otp not found, request a new one")
		case errors.Is(err, services.ErrOtpExpired):
			fail(c, http.StatusBadRequest, "otp expired")
		case errors.Is(err, services.ErrOtpMismatch):
			fail(c, http.StatusBadRequest, "Invalid OTP")
		case errors.As(err, &fieldErrs):
			failFields(c, fieldErrs)
		case errors.As(err, &dup):
			fail(c, http.StatusBadRequest, dup.Error())
		default:
			log.Printf("[register][verify-otp] failed email=%q: %v", req.Email, err)
			fail(c, http.StatusInternalServerError, "verification failed")
		}
		return
	}

	log.Printf("[register][verify-otp] account created userID=%d", user.ID)
	ok(c, http.StatusCreated, "OTP verified. Account created successfully.", nil)
}
