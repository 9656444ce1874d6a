package http

import (
	"net/http"

	"github.com/tarotlyfe/tarotlyfe/internal/auth/apierr"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/domain"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/service"
	"github.com/tarotlyfe/tarotlyfe/pkg/httpx"
)

// MeHandler serves GET /api/auth/me behind the authentication middleware.
type MeHandler struct {
	AuthService *service.AuthService
}

// MeResponse is the 200 body for the current-user endpoint.
type MeResponse struct {
	User domain.PublicUser `json:"user"`
}

// ServeHTTP godoc
//
//	@Summary		Current user
//	@Description	Returns the account behind the presented access token.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	MeResponse		"user"
//	@Failure		401	{object}	apierr.Error	"missing or invalid bearer token"
//	@Security		BearerAuth
//	@Router			/api/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	if userID == "" {
		apierr.ErrInvalidCredentials.WriteError(w)
		return
	}

	user, err := h.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MeResponse{User: user})
}
