package http

import (
	"net/http"

	"github.com/tarotlyfe/tarotlyfe/internal/auth/service"
	"github.com/tarotlyfe/tarotlyfe/pkg/httpx"
)

// MessageResponse is the minimal success body shared by the reset endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// PasswordResetRequestHandler serves POST /api/auth/password-reset/request.
type PasswordResetRequestHandler struct {
	ResetService *service.PasswordResetService
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ServeHTTP godoc
//
//	@Summary		Request a password reset
//	@Description	Starts the reset flow. The response is the same whether or not the email has an account, so it cannot be used to enumerate users.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	passwordResetRequest	true	"account email"
//	@Success		200	{object}	MessageResponse	"generic acknowledgement"
//	@Failure		400	{object}	apierr.Error	"validation_error"
//	@Router			/api/auth/password-reset/request [post].
func (h *PasswordResetRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if aerr := decodeAndValidate(r, &req); aerr != nil {
		aerr.WriteError(w)
		return
	}

	if err := h.ResetService.RequestReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: "If an account exists with this email, a password reset link has been sent.",
	})
}

// PasswordResetConfirmHandler serves POST /api/auth/password-reset/confirm.
type PasswordResetConfirmHandler struct {
	ResetService *service.PasswordResetService
}

type passwordResetConfirm struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,password"`
}

// ServeHTTP godoc
//
//	@Summary		Confirm a password reset
//	@Description	Consumes a single-use reset token and sets the new password. All active sessions are invalidated.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	passwordResetConfirm	true	"reset token and new password"
//	@Success		200	{object}	MessageResponse	"confirmation"
//	@Failure		400	{object}	apierr.Error	"validation_error, invalid_token or expired_token"
//	@Failure		500	{object}	apierr.Error	"server_error"
//	@Router			/api/auth/password-reset/confirm [post].
func (h *PasswordResetConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req passwordResetConfirm
	if aerr := decodeAndValidate(r, &req); aerr != nil {
		aerr.WriteError(w)
		return
	}

	if err := h.ResetService.ConfirmReset(r.Context(), req.Token, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: "Password has been reset successfully. Please log in with your new password.",
	})
}
