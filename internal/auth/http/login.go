package http

import (
	"net/http"
	"time"

	"github.com/tarotlyfe/tarotlyfe/internal/auth/domain"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/service"
	"github.com/tarotlyfe/tarotlyfe/pkg/httpx"
)

// RefreshCookieName is the HttpOnly cookie carrying the opaque refresh token.
const RefreshCookieName = "refreshToken"

// CookieConfig controls the attributes of the refresh token cookie.
type CookieConfig struct {
	Domain   string
	Path     string
	Secure   bool
	SameSite http.SameSite
	MaxAge   time.Duration
}

// LoginHandler serves POST /api/auth/login.
type LoginHandler struct {
	AuthService *service.AuthService
	Cookie      CookieConfig
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the 200 body for a successful login. The refresh token
// travels only in the HttpOnly cookie, never in the body.
type LoginResponse struct {
	Message     string            `json:"message"`
	User        domain.PublicUser `json:"user"`
	AccessToken string            `json:"accessToken"`
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Verifies credentials, returns a signed access token and sets the refresh token as an HttpOnly cookie. An unknown email and a wrong password yield the same response.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	loginRequest	true	"email and password"
//	@Success		200	{object}	LoginResponse	"message, user, accessToken"
//	@Failure		400	{object}	apierr.Error	"validation_error"
//	@Failure		401	{object}	apierr.Error	"invalid_credentials"
//	@Failure		500	{object}	apierr.Error	"server_error"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if aerr := decodeAndValidate(r, &req); aerr != nil {
		aerr.WriteError(w)
		return
	}

	result, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    result.RefreshToken,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: h.Cookie.SameSite,
		Domain:   h.Cookie.Domain,
		Path:     h.Cookie.Path,
		MaxAge:   int(h.Cookie.MaxAge.Seconds()),
	})

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		Message:     "Login successful",
		User:        result.User,
		AccessToken: result.AccessToken,
	})
}
