package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/forgepoint/site-server/internal/domain"
	"github.com/forgepoint/site-server/internal/newsletter"
	"github.com/forgepoint/site-server/internal/pkg/httputil"
	"github.com/forgepoint/site-server/internal/site"
	"github.com/forgepoint/site-server/internal/token"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

// handleNewsletterSubscribe records a pending subscription and sends the
// double-opt-in email. The response is the same whether the address was
// new or already on the list.
func (s *Server) handleNewsletterSubscribe(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r) {
		return
	}

	var req subscribeRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := domain.ValidateEmail(req.Email); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	if err := s.newsletter.Subscribe(r.Context(), req.Email); err != nil {
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, map[string]string{
		"status":  "pending",
		"message": "Check your inbox to confirm your subscription.",
	})
}

// handleNewsletterConfirm lands the confirm link from the email.
func (s *Server) handleNewsletterConfirm(w http.ResponseWriter, r *http.Request) {
	rawToken := r.URL.Query().Get("token")
	if rawToken == "" {
		s.renderTokenError(w, "That link is missing its token. Try the link from your email again.")
		return
	}

	email, err := s.newsletter.Confirm(r.Context(), rawToken)
	if err != nil {
		s.renderTokenFailure(w, err, "confirm")
		return
	}

	s.renderPage(w, http.StatusOK, "newsletter_confirmed", site.PageMeta{
		Title: "Subscription confirmed | " + s.cfg.Site.Name,
	}, map[string]interface{}{
		"email": email,
	})
}

// handleNewsletterUnsubscribe lands the unsubscribe link from emails and
// the CSV export.
func (s *Server) handleNewsletterUnsubscribe(w http.ResponseWriter, r *http.Request) {
	rawToken := r.URL.Query().Get("token")
	if rawToken == "" {
		s.renderTokenError(w, "That link is missing its token. Try the link from your email again.")
		return
	}

	email, err := s.newsletter.Unsubscribe(r.Context(), rawToken)
	if err != nil {
		s.renderTokenFailure(w, err, "unsubscribe")
		return
	}

	s.renderPage(w, http.StatusOK, "newsletter_goodbye", site.PageMeta{
		Title: "Unsubscribed | " + s.cfg.Site.Name,
	}, map[string]interface{}{
		"email": email,
	})
}

func (s *Server) renderTokenFailure(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, token.ErrExpired):
		if action == "confirm" {
			s.renderTokenError(w, "This confirmation link has expired. Subscribe again to get a fresh one.")
		} else {
			s.renderTokenError(w, "This unsubscribe link has expired. Use the link from a more recent email.")
		}
	case errors.Is(err, token.ErrInvalid), errors.Is(err, token.ErrWrongKind):
		s.renderTokenError(w, "This link is not valid. Try the link from your email again.")
	case errors.Is(err, newsletter.ErrUnknownSubscriber):
		s.renderTokenError(w, "We could not find a subscription for this address.")
	default:
		httputil.InternalError(w, err)
	}
}

func (s *Server) renderTokenError(w http.ResponseWriter, message string) {
	s.renderPage(w, http.StatusBadRequest, "newsletter_error", site.PageMeta{
		Title: "Newsletter | " + s.cfg.Site.Name,
	}, map[string]interface{}{
		"message": message,
	})
}
