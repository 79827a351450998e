package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSendConfirmation(t *testing.T) {
	fake := &fakeSES{}
	m := &Mailer{
		fromAddress: "hello@forgepoint.digital",
		fromName:    "ForgePoint Digital",
		siteName:    "ForgePoint Digital",
	}
	m.SetClient(fake)

	err := m.SendConfirmation(context.Background(), "jane@example.com", "https://forgepoint.digital/newsletter/confirm?token=abc")
	if err != nil {
		t.Fatalf("SendConfirmation failed: %v", err)
	}

	if len(fake.inputs) != 1 {
		t.Fatalf("Expected 1 send, got %d", len(fake.inputs))
	}
	in := fake.inputs[0]

	if got := *in.FromEmailAddress; got != "ForgePoint Digital <hello@forgepoint.digital>" {
		t.Errorf("Unexpected from address: %s", got)
	}
	if in.Destination.ToAddresses[0] != "jane@example.com" {
		t.Errorf("Unexpected recipient: %v", in.Destination.ToAddresses)
	}

	html := *in.Content.Simple.Body.Html.Data
	if !strings.Contains(html, "token=abc") {
		t.Error("Confirm link missing from HTML body")
	}
	text := *in.Content.Simple.Body.Text.Data
	if !strings.Contains(text, "token=abc") {
		t.Error("Confirm link missing from text body")
	}
}

func TestSendConfirmationError(t *testing.T) {
	m := &Mailer{fromAddress: "hello@forgepoint.digital", siteName: "ForgePoint"}
	m.SetClient(&fakeSES{err: errors.New("rate exceeded")})

	err := m.SendConfirmation(context.Background(), "jane@example.com", "https://example.com/c")
	if err == nil {
		t.Fatal("Expected error from SES failure")
	}
}
