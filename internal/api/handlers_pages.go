package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forgepoint/site-server/internal/pkg/logger"
	"github.com/forgepoint/site-server/internal/site"
)

// renderPage renders a page template and writes it as HTML. Render
// failures become a plain 500; the real error goes to the log.
func (s *Server) renderPage(w http.ResponseWriter, status int, name string, meta site.PageMeta, data map[string]interface{}) {
	html, err := s.renderer.Render(name, meta, data)
	if err != nil {
		logger.Error("page render failed", "template", name, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(html))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "home", site.PageMeta{
		Title:       s.cfg.Site.Name + " | Software development studio",
		Description: "Web development, cloud consulting, and ongoing support for growing businesses.",
		Canonical:   s.renderer.CanonicalURL("/"),
	}, map[string]interface{}{
		"services":     s.library.Services,
		"testimonials": s.library.Testimonials,
		"portfolio":    s.library.Portfolio,
	})
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "services", site.PageMeta{
		Title:       "Services | " + s.cfg.Site.Name,
		Description: "What we build and how we work.",
		Canonical:   s.renderer.CanonicalURL("/services"),
	}, map[string]interface{}{
		"services": s.library.Services,
	})
}

func (s *Server) handleServiceDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	svc, ok := s.library.ServiceBySlug(slug)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	s.renderPage(w, http.StatusOK, "service", site.PageMeta{
		Title:       svc.Title + " | " + s.cfg.Site.Name,
		Description: svc.Summary,
		Canonical:   s.renderer.CanonicalURL("/services/" + svc.Slug),
	}, map[string]interface{}{
		"service": svc,
	})
}

func (s *Server) handlePricingPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "pricing", site.PageMeta{
		Title:       "Pricing | " + s.cfg.Site.Name,
		Description: "Estimate your project cost with our interactive calculator.",
		Canonical:   s.renderer.CanonicalURL("/pricing"),
	}, map[string]interface{}{
		"pricing": s.library.Pricing,
		"faq":     s.library.FAQ,
	})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "about", site.PageMeta{
		Title:       "About | " + s.cfg.Site.Name,
		Description: "Who we are and why we build software.",
		Canonical:   s.renderer.CanonicalURL("/about"),
	}, map[string]interface{}{
		"testimonials": s.library.Testimonials,
	})
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "blog", site.PageMeta{
		Title:       "Blog | " + s.cfg.Site.Name,
		Description: "Notes on software, infrastructure, and running a studio.",
		Canonical:   s.renderer.CanonicalURL("/blog"),
	}, map[string]interface{}{
		"posts": s.library.Posts,
	})
}

func (s *Server) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, ok := s.library.PostBySlug(slug)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	s.renderPage(w, http.StatusOK, "post", site.PageMeta{
		Title:       post.Title + " | " + s.cfg.Site.Name,
		Description: post.Summary,
		Canonical:   s.renderer.CanonicalURL("/blog/" + post.Slug),
	}, map[string]interface{}{
		"post": post,
	})
}

func (s *Server) handleContactPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "contact", site.PageMeta{
		Title:       "Contact | " + s.cfg.Site.Name,
		Description: "Tell us about your project.",
		Canonical:   s.renderer.CanonicalURL("/contact"),
	}, map[string]interface{}{
		"services": s.library.Services,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusNotFound, "404", site.PageMeta{
		Title: "Page not found | " + s.cfg.Site.Name,
	}, nil)
}
