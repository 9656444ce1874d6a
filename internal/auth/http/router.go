package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tarotlyfe/tarotlyfe/internal/auth/apierr"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/service"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/store"
	"github.com/tarotlyfe/tarotlyfe/pkg/httpx"
	"github.com/tarotlyfe/tarotlyfe/pkg/jwtx"
	"github.com/tarotlyfe/tarotlyfe/pkg/slogx"

	_ "github.com/tarotlyfe/tarotlyfe/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *httpx.Metrics
	cookie       CookieConfig

	store        store.Store
	AuthService  *service.AuthService
	ResetService *service.PasswordResetService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	metrics *httpx.Metrics,
	cookie CookieConfig,
	corsOrigin string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		metrics:      metrics,
		cookie:       cookie,
		store:        st,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigin),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	// Everything unmatched gets the JSON 404 envelope.
	r.Mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		apierr.NotFound(req.Method, req.URL.Path).WriteError(w)
	})
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TarotLyfe Authentication Service API
//	@version		0.1.0
//	@description	Credential-based authentication service issuing JWT access tokens
//	@description	and HttpOnly refresh token cookies, with a single-use password
//	@description	reset flow.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3001
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(registerHandler,
			r.metrics.Instrument("/api/auth/register"),
		),
	)

	loginHandler := &LoginHandler{AuthService: r.AuthService, Cookie: r.cookie}
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(loginHandler,
			r.metrics.Instrument("/api/auth/login"),
		),
	)

	requestHandler := &PasswordResetRequestHandler{ResetService: r.ResetService}
	r.Mux.Handle("POST /api/auth/password-reset/request",
		httpx.Chain(requestHandler,
			r.metrics.Instrument("/api/auth/password-reset/request"),
		),
	)

	confirmHandler := &PasswordResetConfirmHandler{ResetService: r.ResetService}
	r.Mux.Handle("POST /api/auth/password-reset/confirm",
		httpx.Chain(confirmHandler,
			r.metrics.Instrument("/api/auth/password-reset/confirm"),
		),
	)

	meHandler := &MeHandler{AuthService: r.AuthService}
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(meHandler,
			httpx.AuthnMiddleware(r.verifier),
			r.metrics.Instrument("/api/auth/me"),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
