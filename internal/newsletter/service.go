// Package newsletter implements the subscribe / confirm / unsubscribe flow.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/forgepoint/site-server/internal/domain"
	"github.com/forgepoint/site-server/internal/pkg/logger"
	"github.com/forgepoint/site-server/internal/token"
)

// ErrUnknownSubscriber means a structurally valid token references an
// address with no stored record (e.g. the record was purged).
var ErrUnknownSubscriber = errors.New("no subscription found for this address")

// Mailer sends the double-opt-in confirmation email.
type Mailer interface {
	SendConfirmation(ctx context.Context, toEmail, confirmURL string) error
}

// Service coordinates the store, token minting, and confirmation email.
type Service struct {
	store      Store
	mailer     Mailer
	tokens     *token.Service
	baseURL    string
	confirmTTL time.Duration
	unsubTTL   time.Duration
	now        func() time.Time
}

// NewService wires the newsletter flow together. baseURL is the public
// origin used to build confirm/unsubscribe links.
func NewService(store Store, mailer Mailer, tokens *token.Service, baseURL string, confirmTTL, unsubTTL time.Duration) *Service {
	return &Service{
		store:      store,
		mailer:     mailer,
		tokens:     tokens,
		baseURL:    baseURL,
		confirmTTL: confirmTTL,
		unsubTTL:   unsubTTL,
		now:        time.Now,
	}
}

// SetNow overrides the clock (tests only).
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// Subscribe records a pending subscription and sends the confirmation
// email. Re-subscribing an unsubscribed or pending address resets it to
// pending and re-sends the email; an already-confirmed address only gets
// a fresh confirmation email (its record is left untouched).
func (s *Service) Subscribe(ctx context.Context, email string) error {
	if err := domain.ValidateEmail(email); err != nil {
		return err
	}

	existing, err := s.store.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("looking up subscriber: %w", err)
	}

	if existing == nil || !existing.IsConfirmed() {
		sub := domain.Subscriber{
			Email:        email,
			Status:       domain.SubscriberPending,
			SubscribedAt: s.now().UTC(),
		}
		if err := s.store.Put(ctx, sub); err != nil {
			return fmt.Errorf("saving subscriber: %w", err)
		}
	}

	confirmURL, err := s.ConfirmURL(email)
	if err != nil {
		return err
	}
	if err := s.mailer.SendConfirmation(ctx, email, confirmURL); err != nil {
		return fmt.Errorf("sending confirmation email: %w", err)
	}

	logger.Info("subscription recorded", "email", email)
	return nil
}

// Confirm verifies a confirm token and marks the subscriber confirmed.
// Confirming an already-confirmed address is a no-op success.
func (s *Service) Confirm(ctx context.Context, rawToken string) (string, error) {
	email, err := s.tokens.Verify(token.KindConfirm, rawToken)
	if err != nil {
		return "", err
	}

	sub, err := s.store.Get(ctx, email)
	if err != nil {
		return "", fmt.Errorf("looking up subscriber: %w", err)
	}
	if sub == nil {
		return "", ErrUnknownSubscriber
	}
	if sub.IsConfirmed() {
		return email, nil
	}

	now := s.now().UTC()
	sub.Status = domain.SubscriberConfirmed
	sub.ConfirmedAt = &now
	sub.UnsubscribedAt = nil
	if err := s.store.Put(ctx, *sub); err != nil {
		return "", fmt.Errorf("saving subscriber: %w", err)
	}

	logger.Info("subscription confirmed", "email", email)
	return email, nil
}

// Unsubscribe verifies an unsubscribe token and marks the subscriber
// unsubscribed. Unsubscribing twice is a no-op success.
func (s *Service) Unsubscribe(ctx context.Context, rawToken string) (string, error) {
	email, err := s.tokens.Verify(token.KindUnsubscribe, rawToken)
	if err != nil {
		return "", err
	}

	sub, err := s.store.Get(ctx, email)
	if err != nil {
		return "", fmt.Errorf("looking up subscriber: %w", err)
	}
	if sub == nil {
		return "", ErrUnknownSubscriber
	}
	if sub.Status != domain.SubscriberUnsubscribed {
		now := s.now().UTC()
		sub.Status = domain.SubscriberUnsubscribed
		sub.UnsubscribedAt = &now
		if err := s.store.Put(ctx, *sub); err != nil {
			return "", fmt.Errorf("saving subscriber: %w", err)
		}
	}

	logger.Info("subscriber unsubscribed", "email", email)
	return email, nil
}

// ConfirmURL mints a confirm token and returns the full confirm link.
func (s *Service) ConfirmURL(email string) (string, error) {
	tok, err := s.tokens.Issue(token.KindConfirm, email, s.confirmTTL)
	if err != nil {
		return "", err
	}
	return s.link("/newsletter/confirm", tok), nil
}

// UnsubscribeURL mints an unsubscribe token and returns the full link.
// Used in outgoing emails and by the CSV export CLI.
func (s *Service) UnsubscribeURL(email string) (string, error) {
	tok, err := s.tokens.Issue(token.KindUnsubscribe, email, s.unsubTTL)
	if err != nil {
		return "", err
	}
	return s.link("/newsletter/unsubscribe", tok), nil
}

// Subscribers returns all stored subscriber records.
func (s *Service) Subscribers(ctx context.Context) ([]domain.Subscriber, error) {
	return s.store.List(ctx)
}

func (s *Service) link(path, tok string) string {
	return s.baseURL + path + "?token=" + url.QueryEscape(tok)
}
