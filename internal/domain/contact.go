package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

// ContactSubmission is a contact form submission destined for the CRM.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Service string `json:"service,omitempty"`
	Budget  string `json:"budget,omitempty"`
	Message string `json:"message"`
}

// Validate checks required fields and email shape. It returns a user-facing
// error naming the first failing field.
func (c ContactSubmission) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if strings.TrimSpace(c.Message) == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}

// ValidateEmail rejects empty or malformed addresses. It uses the
// RFC 5322 parser rather than a regex so obscure-but-legal addresses pass.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("email address %q is not valid", email)
	}
	return nil
}
