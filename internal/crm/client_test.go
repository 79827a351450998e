package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/forgepoint/site-server/internal/domain"
)

func testClient(serverURL string) *Client {
	return NewClient(Config{
		BaseURL:   serverURL,
		APIKey:    "test-key",
		APISecret: "test-secret",
	}, 5*time.Second)
}

func TestFindContactByEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify auth headers
		if r.Header.Get("X-API-KEY") == "" {
			t.Error("Missing X-API-KEY header")
		}
		if r.Header.Get("X-API-SECRET") == "" {
			t.Error("Missing X-API-SECRET header")
		}
		if got := r.URL.Query().Get("email"); got != "jane@example.com" {
			t.Errorf("Expected email query jane@example.com, got %s", got)
		}

		response := ContactSearchResponse{
			Metadata: ResponseMetadata{Error: false, Total: 1},
			Payload: []Contact{
				{ID: "c-100", Name: "Jane Doe", Email: "jane@example.com"},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := testClient(server.URL)

	contact, err := client.FindContactByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("FindContactByEmail failed: %v", err)
	}
	if contact == nil || contact.ID != "c-100" {
		t.Errorf("Expected contact c-100, got %+v", contact)
	}
}

func TestFindContactByEmailNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ContactSearchResponse{
			Metadata: ResponseMetadata{Error: false, Total: 0},
		})
	}))
	defer server.Close()

	contact, err := testClient(server.URL).FindContactByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("FindContactByEmail failed: %v", err)
	}
	if contact != nil {
		t.Errorf("Expected nil contact, got %+v", contact)
	}
}

func TestEnsureContactCreatesWhenAbsent(t *testing.T) {
	var createCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(ContactSearchResponse{Metadata: ResponseMetadata{}})
		case http.MethodPost:
			createCalls++
			var c Contact
			json.NewDecoder(r.Body).Decode(&c)
			c.ID = "c-201"
			json.NewEncoder(w).Encode(ContactCreateResponse{Payload: c})
		}
	}))
	defer server.Close()

	contact, created, err := testClient(server.URL).EnsureContact(context.Background(), Contact{
		Name:  "New Person",
		Email: "new@example.com",
	})
	if err != nil {
		t.Fatalf("EnsureContact failed: %v", err)
	}
	if !created {
		t.Error("Expected contact to be created")
	}
	if contact.ID != "c-201" {
		t.Errorf("Expected contact c-201, got %s", contact.ID)
	}
	if createCalls != 1 {
		t.Errorf("Expected 1 create call, got %d", createCalls)
	}
}

func TestEnsureContactSkipsCreateWhenPresent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			t.Error("CreateContact must not be called when the contact exists")
		}
		json.NewEncoder(w).Encode(ContactSearchResponse{
			Payload: []Contact{{ID: "c-100", Email: "jane@example.com"}},
		})
	}))
	defer server.Close()

	contact, created, err := testClient(server.URL).EnsureContact(context.Background(), Contact{
		Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("EnsureContact failed: %v", err)
	}
	if created {
		t.Error("Expected existing contact, not a create")
	}
	if contact.ID != "c-100" {
		t.Errorf("Expected contact c-100, got %s", contact.ID)
	}
}

func TestCreateLead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var lead Lead
		json.NewDecoder(r.Body).Decode(&lead)
		if lead.Source != "Website" {
			t.Errorf("Expected source Website, got %s", lead.Source)
		}
		lead.ID = "l-300"
		json.NewEncoder(w).Encode(LeadCreateResponse{Payload: lead})
	}))
	defer server.Close()

	lead, err := testClient(server.URL).CreateLead(context.Background(), Lead{
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		Description: "Need a new marketing site",
		Source:      "Website",
	})
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}
	if lead.ID != "l-300" {
		t.Errorf("Expected lead l-300, got %s", lead.ID)
	}
}

func TestDoRequestAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"metadata":{"error":true,"message":"bad key"}}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).FindContactByEmail(context.Background(), "jane@example.com")
	if err == nil {
		t.Fatal("Expected error for 401 response")
	}
}

func TestForwardIndependentSettlement(t *testing.T) {
	// Lead endpoint fails, contact endpoint succeeds; both outcomes must
	// be reported and the submission still counts as accepted.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/leads":
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"metadata":{"error":true,"message":"upstream down"}}`))
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(ContactSearchResponse{Metadata: ResponseMetadata{}})
		default:
			json.NewEncoder(w).Encode(ContactCreateResponse{Payload: Contact{ID: "c-1"}})
		}
	}))
	defer server.Close()

	fwd := NewForwarder(testClient(server.URL), "Website")
	res := fwd.Forward(context.Background(), domain.ContactSubmission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Hello",
	})

	if res.ContactErr != nil {
		t.Errorf("Contact call should succeed: %v", res.ContactErr)
	}
	if res.ContactID != "c-1" {
		t.Errorf("Expected contact c-1, got %s", res.ContactID)
	}
	if res.LeadErr == nil {
		t.Error("Lead call should fail")
	}
	if !res.Accepted() {
		t.Error("Submission should still be accepted when one call lands")
	}
	if res.LeadReference == "" {
		t.Error("Lead reference should be set")
	}
}
