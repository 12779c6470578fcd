// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/MTalha250/Varzan/internal/adapters/in/http/handlers"
	"github.com/MTalha250/Varzan/internal/adapters/in/http/middleware"
	"github.com/MTalha250/Varzan/internal/adapters/in/http/webhook"
	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
)

// RouterDeps collects all usecases (and other dependencies) injected from main.go.
type RouterDeps struct {
	ProductUC     *usecase.ProductUsecase
	CategoryUC    *usecase.CategoryUsecase
	ContactUC     *usecase.ContactUsecase
	TestimonialUC *usecase.TestimonialUsecase
	ProjectUC     *usecase.ProjectUsecase
	OrderUC       *usecase.OrderUsecase
	PaymentUC     *usecase.PaymentUsecase
	DashboardUC   *usecase.DashboardUsecase
	AuthUC        *usecase.AuthUsecase
	MediaUC       *usecase.MediaUsecase

	StripeWebhookSecret string
	AllowedOrigins      []string

	// Metrics が nil なら /metrics は出さない
	Metrics *middleware.Metrics
}

// NewRouter sets up HTTP routing for all domain endpoints under /api.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORS(deps.AllowedOrigins))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check (always on)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	auth := &middleware.AuthMiddleware{}
	if deps.AuthUC != nil {
		auth.Auth = deps.AuthUC
	}

	r.Route("/api", func(api chi.Router) {
		// 以降、Usecase が存在するものだけマウントする
		if deps.AuthUC != nil {
			h := handlers.NewAuthHandler(deps.AuthUC)
			api.Post("/admin/login", h.Login)
			api.With(auth.Admin).Get("/admin/me", h.Me)
		}

		if deps.ProductUC != nil {
			h := handlers.NewProductHandler(deps.ProductUC)
			api.Route("/product", func(pr chi.Router) {
				pr.Get("/", h.List)
				pr.Get("/filter", h.Filter)
				pr.Get("/filterValues", h.FilterValues)
				pr.Get("/category/{category}", h.ByCategory)
				pr.Get("/type/{type}", h.ByType)
				pr.Get("/category/{category}/type/{type}", h.ByCategoryAndType)
				pr.Get("/{id}", h.Get)

				pr.Group(func(adm chi.Router) {
					adm.Use(auth.Admin)
					adm.Get("/export", h.Export)
					adm.Get("/admin/{id}", h.GetAdmin)
					adm.Post("/", h.Create)
					adm.Put("/{id}", h.Update)
					adm.Delete("/{id}", h.Delete)
				})
			})
		}

		if deps.CategoryUC != nil {
			h := handlers.NewCategoryHandler(deps.CategoryUC)
			api.Route("/category", func(cr chi.Router) {
				cr.Get("/", h.List)
				cr.Get("/{id}", h.Get)
				cr.Group(func(adm chi.Router) {
					adm.Use(auth.Admin)
					adm.Post("/", h.Create)
					adm.Put("/{id}", h.Update)
					adm.Delete("/{id}", h.Delete)
				})
			})
		}

		if deps.ContactUC != nil {
			h := handlers.NewContactHandler(deps.ContactUC)
			api.Route("/contact", func(cr chi.Router) {
				cr.Post("/", h.Create)
				cr.Group(func(adm chi.Router) {
					adm.Use(auth.Admin)
					adm.Get("/", h.List)
					adm.Get("/{id}", h.Get)
				})
			})
		}

		if deps.TestimonialUC != nil {
			h := handlers.NewTestimonialHandler(deps.TestimonialUC)
			api.Route("/testimonial", func(tr chi.Router) {
				tr.Get("/", h.List)
				tr.Get("/all", h.All)
				tr.Get("/{id}", h.Get)
				tr.Group(func(adm chi.Router) {
					adm.Use(auth.Admin)
					adm.Post("/", h.Create)
					adm.Put("/{id}", h.Update)
					adm.Delete("/{id}", h.Delete)
				})
			})
		}

		if deps.ProjectUC != nil {
			h := handlers.NewProjectHandler(deps.ProjectUC)
			api.Route("/project", func(pr chi.Router) {
				pr.Get("/", h.List)
				pr.Get("/{id}", h.Get)
				pr.Group(func(adm chi.Router) {
					adm.Use(auth.Admin)
					adm.Post("/", h.Create)
					adm.Put("/{id}", h.Update)
					adm.Delete("/{id}", h.Delete)
				})
			})
		}

		if deps.OrderUC != nil {
			h := handlers.NewOrderHandler(deps.OrderUC)
			api.Route("/order", func(or chi.Router) {
				or.Post("/", h.Create)
				or.Group(func(adm chi.Router) {
					adm.Use(auth.Admin)
					adm.Get("/", h.List)
					adm.Get("/{id}", h.Get)
					adm.Put("/{id}", h.Update)
					adm.Delete("/{id}", h.Delete)
				})
			})
		}

		if deps.PaymentUC != nil {
			h := handlers.NewPaymentHandler(deps.PaymentUC)
			api.Route("/payment", func(pr chi.Router) {
				// webhook は Stripe 署名で認証する（bearer なし）
				pr.Method(http.MethodPost, "/webhook", webhook.NewStripeWebhookHandler(deps.PaymentUC, deps.StripeWebhookSecret))
				pr.Group(func(adm chi.Router) {
					adm.Use(auth.Admin)
					adm.Get("/", h.List)
					adm.Get("/{id}", h.Get)
				})
			})
		}

		if deps.DashboardUC != nil {
			h := handlers.NewDashboardHandler(deps.DashboardUC)
			api.With(auth.Admin).Get("/dashboard", h.Stats)
		}

		if deps.MediaUC != nil {
			h := handlers.NewUploadHandler(deps.MediaUC)
			api.With(auth.Admin).Post("/upload", h.Upload)
		}
	})

	return r
}
