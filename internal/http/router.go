package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/Adhandevelop/taller-powerby/docs"
	"github.com/Adhandevelop/taller-powerby/internal/http/handlers"
	rl "github.com/Adhandevelop/taller-powerby/internal/http/rate_limiter"
	"github.com/Adhandevelop/taller-powerby/web"
)

type RouterConfig struct {
	Handler        *handlers.Handler
	Logger         *slog.Logger
	AllowedOrigins []string
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *rl.Limiter
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}
		r.Use(JSONBodyGuard)

		h := cfg.Handler
		r.Get("/status", h.StatusHandler)
		r.Post("/save-data", h.CreateProductHandler)
		r.Get("/export-productos", h.ExportProductsHandler)
		r.Post("/import-productos", h.ImportProductsHandler)

		// Every segment under /productos is an IdProducto.
		r.Route("/productos", func(r chi.Router) {
			r.Get("/", h.GetProductsHandler)
			r.Get("/{id}", h.GetProductByIDHandler)
			r.Put("/{id}", h.UpdateProductHandler)
			r.Delete("/{id}", h.DeleteProductHandler)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Handle("/*", http.FileServer(http.FS(web.Static())))

	return r
}
