package http

import (
	"errors"
	"net/http"

	"github.com/tarotlyfe/tarotlyfe/internal/auth/apierr"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/domain"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/service"
	"github.com/tarotlyfe/tarotlyfe/pkg/httpx"
)

// RegisterHandler serves POST /api/auth/register.
type RegisterHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
}

// RegisterResponse is the 201 body for a successful registration.
type RegisterResponse struct {
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

// ServeHTTP godoc
//
//	@Summary		Register a new user
//	@Description	Creates an account from an email and password. The email is normalized to lower case and must not already have an account.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	registerRequest	true	"email and password"
//	@Success		201	{object}	RegisterResponse	"message, user"
//	@Failure		400	{object}	apierr.Error		"validation_error"
//	@Failure		409	{object}	apierr.Error		"duplicate_email"
//	@Failure		500	{object}	apierr.Error		"server_error"
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if aerr := decodeAndValidate(r, &req); aerr != nil {
		aerr.WriteError(w)
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		User:    user,
	})
}

// writeServiceError writes a service failure, falling back to the opaque 500
// for anything that is not a tagged API error.
func writeServiceError(w http.ResponseWriter, err error) {
	var aerr *apierr.Error
	if errors.As(err, &aerr) {
		aerr.WriteError(w)
		return
	}
	apierr.ErrServer.WriteError(w)
}
