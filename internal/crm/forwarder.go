package crm

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/forgepoint/site-server/internal/domain"
	"github.com/forgepoint/site-server/internal/pkg/logger"
)

// Forwarder pushes contact form submissions into the CRM. The contact
// (find-or-create) and lead calls run concurrently and settle
// independently: a lead failure never undoes a created contact.
type Forwarder struct {
	client     *Client
	leadSource string
}

// NewForwarder creates a forwarder using the given client.
func NewForwarder(client *Client, leadSource string) *Forwarder {
	if leadSource == "" {
		leadSource = "Website"
	}
	return &Forwarder{client: client, leadSource: leadSource}
}

// ForwardResult reports the independent outcome of each CRM call.
type ForwardResult struct {
	ContactID      string
	ContactCreated bool
	ContactErr     error
	LeadID         string
	LeadReference  string
	LeadErr        error
}

// Accepted reports whether at least one of the two calls landed.
func (r ForwardResult) Accepted() bool {
	return r.ContactErr == nil || r.LeadErr == nil
}

// Forward sends a validated submission to the CRM.
func (f *Forwarder) Forward(ctx context.Context, sub domain.ContactSubmission) ForwardResult {
	var res ForwardResult
	res.LeadReference = uuid.NewString()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		contact, created, err := f.client.EnsureContact(ctx, Contact{
			Name:    sub.Name,
			Email:   sub.Email,
			Company: sub.Company,
			Phone:   sub.Phone,
		})
		if err != nil {
			res.ContactErr = err
			return
		}
		res.ContactID = contact.ID
		res.ContactCreated = created
	}()

	go func() {
		defer wg.Done()
		lead, err := f.client.CreateLead(ctx, Lead{
			Reference:   res.LeadReference,
			Name:        sub.Name,
			Email:       sub.Email,
			Service:     sub.Service,
			Budget:      sub.Budget,
			Description: sub.Message,
			Source:      f.leadSource,
		})
		if err != nil {
			res.LeadErr = err
			return
		}
		res.LeadID = lead.ID
	}()

	wg.Wait()

	if res.ContactErr != nil {
		logger.Warn("CRM contact call failed", "email", sub.Email, "err", res.ContactErr)
	}
	if res.LeadErr != nil {
		logger.Warn("CRM lead call failed", "email", sub.Email, "err", res.LeadErr)
	}

	return res
}
