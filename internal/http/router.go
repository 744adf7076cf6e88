package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/wealthfolio/internal/http/account"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/budget"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/category"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/dashboard"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/export"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/goal"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/importcsv"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/insurance"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/ledger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/matching"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/networth"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/portfolio"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/savings"
)

type Options struct {
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
	// Authenticate rejects unauthenticated requests and stores the user ID
	// in the request context.
	Authenticate func(http.Handler) http.Handler
}

type Handlers struct {
	Accounts   *account.Handler
	Ledger     *ledger.Handler
	Import     *importcsv.Handler
	Stocks     *portfolio.Handler
	Savings    *savings.Handler
	Insurance  *insurance.Handler
	Categories *category.Handler
	Budgets    *budget.Handler
	NetWorth   *networth.Handler
	Goals      *goal.Handler
	Dashboard  *dashboard.Handler
	Matching   *matching.Handler
	Export     *export.Handler
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(RequestLogger)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(RateLimit(opts.RateLimit, opts.RateBurst))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(opts.Authenticate)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))

			r.Route("/accounts", h.Accounts.Routes)
			r.Route("/entries", h.Ledger.Routes)
			r.Route("/stocks", h.Stocks.Routes)
			r.Route("/savings", h.Savings.Routes)
			r.Route("/insurance", h.Insurance.Routes)
			r.Route("/categories", h.Categories.Routes)
			r.Route("/budgets", h.Budgets.Routes)
			r.Route("/networth", h.NetWorth.Routes)
			r.Route("/goals", h.Goals.Routes)
			r.Route("/matching", h.Matching.Routes)
		})

		r.Route("/import", h.Import.Routes)
		r.Route("/dashboard", h.Dashboard.Routes)
		r.Route("/export", h.Export.Routes)
	})

	return router
}
