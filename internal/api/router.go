package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type RouterOptions struct {
	AllowedOrigins []string
	// AskRate and AskBurst size the /ask token bucket. A zero rate disables
	// limiting.
	AskRate  float64
	AskBurst int
}

func NewRouter(h *Handler, logger *zap.Logger, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog(logger))
	r.Use(cors(opts.AllowedOrigins))

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if opts.AskRate > 0 {
			burst := opts.AskBurst
			if burst < 1 {
				burst = 1
			}
			r.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.AskRate), burst)))
		}
		r.Post("/ask", h.HandleAsk)
	})

	return r
}
