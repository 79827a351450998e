package api

import (
	"net"
	"net/http"

	"github.com/forgepoint/site-server/internal/domain"
	"github.com/forgepoint/site-server/internal/pkg/httputil"
	"github.com/forgepoint/site-server/internal/pkg/logger"
)

// handleContactSubmit validates the submission and forwards it to the
// CRM. The contact and lead calls settle independently; the visitor gets
// a success as long as at least one landed.
func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r) {
		return
	}

	var sub domain.ContactSubmission
	if !httputil.Decode(w, r, &sub) {
		return
	}
	if err := sub.Validate(); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	if s.forwarder == nil {
		// CRM not configured: log the submission so nothing is lost silently
		logger.Warn("contact submission received with CRM disabled", "email", sub.Email, "service", sub.Service)
		httputil.OK(w, map[string]string{
			"status":  "received",
			"message": "Thanks, we will be in touch shortly.",
		})
		return
	}

	res := s.forwarder.Forward(r.Context(), sub)
	if !res.Accepted() {
		httputil.Error(w, http.StatusBadGateway, "we could not record your message, please try again shortly")
		return
	}

	httputil.OK(w, map[string]string{
		"status":    "received",
		"message":   "Thanks, we will be in touch shortly.",
		"reference": res.LeadReference,
	})
}

// allow applies the per-IP rate limit to the public form endpoints.
// A nil limiter allows everything.
func (s *Server) allow(w http.ResponseWriter, r *http.Request) bool {
	if s.limiter.Allow(r.Context(), clientIP(r)) {
		return true
	}
	httputil.TooManyRequests(w, s.limiter.RetryAfter())
	return false
}

func clientIP(r *http.Request) string {
	// RealIP middleware already rewrote RemoteAddr from X-Forwarded-For
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
