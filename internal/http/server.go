package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"saldo/internal/analytics"
	"saldo/internal/auth"
	applog "saldo/internal/log"
	"saldo/internal/middleware/ratelimit"
	"saldo/internal/middleware/security"
	"saldo/internal/middleware/trace"
	"saldo/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config carries the transport settings of the API server.
type Config struct {
	Addr               string
	ClientURL          string
	RateLimitPerMinute int
}

// Deps are the collaborators the handlers call into.
type Deps struct {
	Auth         *services.AuthService
	Transactions *services.TransactionService
	Dashboard    *services.DashboardService
	Tokens       *auth.TokenManager
	Store        Pinger
	Clock        analytics.Clock
	Logger       *applog.Logger
}

type Server struct {
	http.Server

	auth         *services.AuthService
	transactions *services.TransactionService
	dashboard    *services.DashboardService
	tokens       *auth.TokenManager
	store        Pinger
	clock        analytics.Clock
	logger       *applog.Logger

	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector
	traceMiddleware  *trace.Middleware
	startedAt        time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(cfg Config, deps Deps) *Server {
	clock := deps.Clock
	if clock == nil {
		clock = analytics.SystemClock{}
	}
	logger := deps.Logger.WithComponent(applog.ComponentHTTP)

	s := &Server{
		auth:         deps.Auth,
		transactions: deps.Transactions,
		dashboard:    deps.Dashboard,
		tokens:       deps.Tokens,
		store:        deps.Store,
		clock:        clock,
		logger:       logger,
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimitPerMinute,
		}),
		securityDetector: security.NewDetector(deps.Logger),
		startedAt:        time.Now(),
	}
	s.traceMiddleware = trace.NewMiddleware(deps.Logger, s.securityDetector.ExtractClientIP)

	mux := http.NewServeMux()
	s.routes(mux)

	var handler http.Handler = mux
	handler = s.rateLimiter.Middleware(s.securityDetector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		s.logger.WarnContext(r.Context(), "Rate limit exceeded",
			applog.NewFields().WithClientIP(s.securityDetector.ExtractClientIP(r)).
				WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, r.UserAgent()).Args()...)
		TooManyRequestsError().Write(w)
	})(handler)
	handler = security.CORS(security.NewCORSConfig(cfg.ClientURL))(handler)
	handler = s.securityDetector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.traceMiddleware.Middleware(handler)

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	protected := auth.Middleware(s.tokens)
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, protected(h))
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	handle("GET /api/v1/auth/getUser", s.handleGetUser)

	for _, t := range []transactionRoutes{incomeRoutes, expenseRoutes} {
		base := "/api/v1/" + t.kind.String()
		handle("POST "+base+"/add", s.handleAddTransaction(t))
		handle("GET "+base+"/get", s.handleListTransactions(t))
		handle("DELETE "+base+"/{id}", s.handleDeleteTransaction(t))
		handle("GET "+base+"/downloadexcel", s.handleDownloadTransactions(t))
	}

	handle("GET /api/v1/dashboard/summary", s.handleDashboardSummary)
	handle("GET /api/v1/dashboard/monthly", s.handleDashboardMonthly)
	handle("GET /api/v1/dashboard/yearly", s.handleDashboardYearly)
}

// Shutdown stops the background goroutines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// ownerID returns the authenticated owner. Routes behind auth.Middleware
// always have one.
func ownerID(r *http.Request) string {
	id, _ := auth.OwnerFromContext(r.Context())
	return id
}
