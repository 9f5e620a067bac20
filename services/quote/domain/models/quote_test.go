package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"new", "in_progress", "closed"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "NEW", "done"} {
		if _, err := ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) should fail", s)
		}
	}
}

func TestNewQuote(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	business := uuid.New()
	nilProduct := uuid.Nil

	tests := []struct {
		name    string
		req     QuoteRequest
		wantErr bool
		check   func(t *testing.T, q *Quote)
	}{
		{
			name: "defaults",
			req:  QuoteRequest{BusinessID: business, CustomerName: "  Luis  ", CustomerEmail: " Luis@Mail.test"},
			check: func(t *testing.T, q *Quote) {
				if q.Quantity != 1 {
					t.Errorf("quantity = %d, want 1", q.Quantity)
				}
				if q.Status != StatusNew {
					t.Errorf("status = %q, want new", q.Status)
				}
				if q.CustomerName != "Luis" || q.CustomerEmail != "luis@mail.test" {
					t.Errorf("fields not normalized: %+v", q)
				}
			},
		},
		{
			name: "nil product id dropped",
			req:  QuoteRequest{BusinessID: business, CustomerName: "Luis", ProductID: &nilProduct},
			check: func(t *testing.T, q *Quote) {
				if q.ProductID != nil {
					t.Error("expected no product")
				}
			},
		},
		{name: "missing business", req: QuoteRequest{CustomerName: "Luis"}, wantErr: true},
		{name: "missing name", req: QuoteRequest{BusinessID: business, CustomerName: " "}, wantErr: true},
		{name: "negative quantity", req: QuoteRequest{BusinessID: business, CustomerName: "Luis", Quantity: -2}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuote(tt.req, now)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, q)
		})
	}
}
