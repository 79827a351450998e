package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{s.cfg.Site.BaseURL},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	// Marketing pages
	r.Get("/", s.handleHome)
	r.Get("/services", s.handleServices)
	r.Get("/services/{slug}", s.handleServiceDetail)
	r.Get("/pricing", s.handlePricingPage)
	r.Get("/about", s.handleAbout)
	r.Get("/blog", s.handleBlog)
	r.Get("/blog/{slug}", s.handleBlogPost)
	r.Get("/contact", s.handleContactPage)

	// Newsletter token links land on rendered pages, not JSON
	r.Get("/newsletter/confirm", s.handleNewsletterConfirm)
	r.Get("/newsletter/unsubscribe", s.handleNewsletterUnsubscribe)

	// JSON endpoints used by the page scripts
	r.Route("/api", func(r chi.Router) {
		r.Post("/pricing/estimate", s.handlePricingEstimate)
		r.Post("/newsletter/subscribe", s.handleNewsletterSubscribe)
		r.Post("/contact", s.handleContactSubmit)
	})

	// Static assets (icons, css, js)
	fileServer := http.FileServer(http.Dir("web/static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.NotFound(s.handleNotFound)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
