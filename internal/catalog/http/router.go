package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/codestore"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/service"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
	"github.com/aussiebroadwan/aicatalog/pkg/httpx"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"

	_ "github.com/aussiebroadwan/aicatalog/api/catalog" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits are the three request profiles applied per route.
type RateLimits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
}

func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	codes codestore.Store

	AuthService      *service.AuthService
	TwoFactorService *service.TwoFactorService
	UserAdminService *service.UserAdminService
	CatalogService   *service.CatalogService
	ActivityService  *service.ActivityService
	StatsService     *service.StatsService

	// CookieSecure marks the session cookie Secure. Turn it on behind TLS.
	CookieSecure bool
	Limits       RateLimits
}

func NewRouter(buildVersion string, st store.Store, codes codestore.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		codes:        codes,
		Limits:       DefaultRateLimits(),
	}

	// Session loading runs inside the request logger so user_id lands on
	// the http_request line, and before any per-user rate limit.
	r.middlewares = []httpx.Middleware{
		httpx.Recover,
		slogx.HTTPMiddleware(r.logger),
		r.loadSession,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTwoFactor()
	r.registerCatalog()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			AI Tool Catalog API
//	@version		0.1.0
//	@description	Internal catalog of AI tools with reviews, likes, and an owner-approved user lifecycle.
//	@description
//	@description	Authentication uses the HttpOnly session cookie set by POST /login. Accounts stay at
//	@description	display role "employee" until an approved owner approves them.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/aicatalog
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						catalog_session
//	@description				Session cookie issued by POST /login.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h so it needs a session, then limits per user.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		requireSession,
		httpx.RateLimitByUser(limit),
	)
}

// public limits h per client address.
func (r *Router) public(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h, httpx.RateLimitByIP(limit))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:  r.AuthService,
		CookieSecure: r.CookieSecure,
	}

	// Credential endpoints - strict rate limit by IP
	r.Mux.Handle("POST /register", r.public(h.HandleRegister, r.Limits.Strict))
	r.Mux.Handle("POST /login", r.public(h.HandleLogin, r.Limits.Strict))

	r.Mux.Handle("POST /logout", r.public(h.HandleLogout, r.Limits.Lenient))
	r.Mux.Handle("GET /me", r.secured(h.HandleMe, r.Limits.Lenient))
}

func (r *Router) registerTwoFactor() {
	h := &TwoFactorHandler{TwoFactorService: r.TwoFactorService}

	r.Mux.Handle("GET /2fa/status", r.secured(h.HandleStatus, r.Limits.Lenient))

	// Setup and resend send messages - moderate rate limit by user
	r.Mux.Handle("POST /2fa/setup", r.secured(h.HandleSetup, r.Limits.Moderate))
	r.Mux.Handle("POST /2fa/resend-code", r.secured(h.HandleResend, r.Limits.Moderate))

	// Code submission - strict rate limit by user (prevent brute force of codes)
	r.Mux.Handle("POST /2fa/verify", r.secured(h.HandleVerify, r.Limits.Strict))
	r.Mux.Handle("POST /2fa/disable", r.secured(h.HandleDisable, r.Limits.Strict))
}

func (r *Router) registerCatalog() {
	h := &CatalogHandler{CatalogService: r.CatalogService}

	// Browsing is public; a session, when present, only changes what is visible.
	r.Mux.Handle("GET /categories", r.public(h.HandleListCategories, r.Limits.Lenient))
	r.Mux.Handle("GET /tools", r.public(h.HandleListTools, r.Limits.Lenient))
	r.Mux.Handle("GET /tools/{id}", r.public(h.HandleGetTool, r.Limits.Lenient))
	r.Mux.Handle("GET /tools/{id}/reviews", r.public(h.HandleListReviews, r.Limits.Lenient))

	r.Mux.Handle("POST /tools", r.secured(h.HandleCreateTool, r.Limits.Lenient))
	r.Mux.Handle("PUT /tools/{id}", r.secured(h.HandleUpdateTool, r.Limits.Lenient))
	r.Mux.Handle("DELETE /tools/{id}", r.secured(h.HandleDeleteTool, r.Limits.Lenient))

	r.Mux.Handle("POST /tools/{id}/reviews", r.secured(h.HandleCreateReview, r.Limits.Lenient))
	r.Mux.Handle("PUT /reviews/{id}", r.secured(h.HandleUpdateReview, r.Limits.Lenient))
	r.Mux.Handle("DELETE /reviews/{id}", r.secured(h.HandleDeleteReview, r.Limits.Lenient))

	r.Mux.Handle("POST /tools/{id}/like", r.secured(h.HandleLike, r.Limits.Lenient))
	r.Mux.Handle("DELETE /tools/{id}/like", r.secured(h.HandleUnlike, r.Limits.Lenient))

	// Category writes are owner-only; the service answers 403 for anyone else.
	r.Mux.Handle("POST /categories", r.secured(h.HandleCreateCategory, r.Limits.Lenient))
	r.Mux.Handle("PUT /categories/{id}", r.secured(h.HandleUpdateCategory, r.Limits.Lenient))
	r.Mux.Handle("DELETE /categories/{id}", r.secured(h.HandleDeleteCategory, r.Limits.Lenient))
}

func (r *Router) registerAdmin() {
	users := &AdminUsersHandler{UserAdminService: r.UserAdminService}
	admin := &AdminHandler{
		CatalogService:  r.CatalogService,
		ActivityService: r.ActivityService,
		StatsService:    r.StatsService,
	}

	// Owner-only, enforced by the services.
	r.Mux.Handle("GET /admin/users", r.secured(users.HandleList, r.Limits.Lenient))
	r.Mux.Handle("POST /admin/users", r.secured(users.HandleCreate, r.Limits.Moderate))
	r.Mux.Handle("GET /admin/users/export", r.secured(users.HandleExport, r.Limits.Moderate))
	r.Mux.Handle("GET /admin/users/{id}", r.secured(users.HandleGet, r.Limits.Lenient))
	r.Mux.Handle("POST /admin/users/{id}/approve", r.secured(users.HandleSetStatus, r.Limits.Lenient))
	r.Mux.Handle("PUT /admin/users/{id}/role", r.secured(users.HandleSetRole, r.Limits.Lenient))

	r.Mux.Handle("PUT /admin/tools/{id}/moderation", r.secured(admin.HandleModerateTool, r.Limits.Lenient))
	r.Mux.Handle("GET /admin/activity", r.secured(admin.HandleActivity, r.Limits.Lenient))
	r.Mux.Handle("GET /admin/stats", r.secured(admin.HandleStats, r.Limits.Lenient))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez", r.public(LivezHandler(r.startTime, r.buildVersion), r.Limits.Lenient))
	r.Mux.Handle("GET /readyz", r.public(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.codes), r.Limits.Lenient))
}
