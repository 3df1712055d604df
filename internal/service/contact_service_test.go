package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/solar-catalog-api/internal/apperr"
	"github.com/solar-catalog-api/internal/mocks"
	"github.com/solar-catalog-api/internal/models"
	"github.com/solar-catalog-api/internal/service"
)

const (
	testFrom  = "Solar Catalog <noreply@example.com>"
	testInbox = "hello@example.com"
)

func validContact() *models.ContactRequest {
	return &models.ContactRequest{
		Name:    "Ada Lovelace",
		Email:   "ada@example.org",
		Company: "Analytical Racing",
		Subject: "Team sponsorship",
		Message: "We would like to talk about the Current One for our 2025 car.",
	}
}

func TestContactService_Submit(t *testing.T) {
	m := mocks.NewMockMailer()
	svc := service.NewContactService(m, testFrom, testInbox, zerolog.Nop())

	if err := svc.Submit(context.Background(), validContact()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(m.Sent) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(m.Sent))
	}

	notification := m.Sent[0]
	if notification.To[0] != testInbox {
		t.Errorf("Notification sent to %v", notification.To)
	}
	if notification.ReplyTo != "ada@example.org" {
		t.Errorf("Expected reply-to submitter, got %q", notification.ReplyTo)
	}
	if notification.From != testFrom {
		t.Errorf("Unexpected from: %q", notification.From)
	}
	if !strings.Contains(notification.HTML, "Analytical Racing") {
		t.Error("Notification missing company")
	}

	ack := m.Sent[1]
	if ack.To[0] != "ada@example.org" {
		t.Errorf("Acknowledgement sent to %v", ack.To)
	}
	if !strings.Contains(ack.HTML, "Ada Lovelace") {
		t.Error("Acknowledgement missing submitter name")
	}
}

func TestContactService_StripsMarkup(t *testing.T) {
	m := mocks.NewMockMailer()
	svc := service.NewContactService(m, testFrom, testInbox, zerolog.Nop())

	req := validContact()
	req.Name = "<b>Ada</b>"
	req.Message = "Hello <script>alert(1)</script>there, please call us back."

	if err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	for _, msg := range m.Sent {
		if strings.Contains(msg.HTML, "<script") || strings.Contains(msg.HTML, "<b>Ada") {
			t.Errorf("Markup survived in %q", msg.HTML)
		}
	}
}

func TestContactService_Invalid(t *testing.T) {
	m := mocks.NewMockMailer()
	svc := service.NewContactService(m, testFrom, testInbox, zerolog.Nop())

	req := validContact()
	req.Email = "not-an-email"

	err := svc.Submit(context.Background(), req)
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("Expected invalid input, got %v", err)
	}
	if len(m.Sent) != 0 {
		t.Errorf("Expected nothing sent, got %d", len(m.Sent))
	}
}

func TestContactService_DeliveryFailure(t *testing.T) {
	tests := []struct {
		name     string
		failAt   int
		wantSent int
	}{
		{"notification fails", 1, 0},
		{"acknowledgement fails", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mocks.NewMockMailer()
			m.FailAt = tt.failAt
			m.Err = errors.New("email API returned 500")
			svc := service.NewContactService(m, testFrom, testInbox, zerolog.Nop())

			err := svc.Submit(context.Background(), validContact())
			if !errors.Is(err, apperr.ErrMailDelivery) {
				t.Fatalf("Expected ErrMailDelivery, got %v", err)
			}
			if len(m.Sent) != tt.wantSent {
				t.Errorf("Expected %d sent, got %d", tt.wantSent, len(m.Sent))
			}
		})
	}
}
