package models

import "testing"

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"quote requested to sent", StatusQuoteRequested, StatusQuoteSent, true},
		{"quote requested to rejected", StatusQuoteRequested, StatusRejected, true},
		{"quote requested skips to approved", StatusQuoteRequested, StatusApproved, false},
		{"quote sent to approved", StatusQuoteSent, StatusApproved, true},
		{"quote sent to rejected", StatusQuoteSent, StatusRejected, true},
		{"approved to processing", StatusApproved, StatusProcessing, true},
		{"legacy pending to processing", StatusPending, StatusProcessing, true},
		{"processing to shipped", StatusProcessing, StatusShipped, true},
		{"shipped to delivered", StatusShipped, StatusDelivered, true},
		{"delivered to completed", StatusDelivered, StatusCompleted, true},
		{"processing cannot skip to delivered", StatusProcessing, StatusDelivered, false},
		{"shipped cannot go back to processing", StatusShipped, StatusProcessing, false},
		{"cancel from quote requested", StatusQuoteRequested, StatusCancelled, true},
		{"cancel from processing", StatusProcessing, StatusCancelled, true},
		{"cancel from delivered", StatusDelivered, StatusCancelled, true},
		{"completed is terminal", StatusCompleted, StatusProcessing, false},
		{"completed cannot be cancelled", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusQuoteRequested, false},
		{"rejected is terminal", StatusRejected, StatusQuoteSent, false},
		{"unknown source", OrderStatus("bogus"), StatusQuoteSent, false},
		{"unknown target", StatusQuoteRequested, OrderStatus("bogus"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
				t.Fatalf("CanTransitionTo(%q -> %q) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []OrderStatus{StatusCompleted, StatusCancelled, StatusRejected}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Fatalf("expected %q to be terminal", s)
		}
	}

	active := []OrderStatus{
		StatusQuoteRequested, StatusQuoteSent, StatusApproved,
		StatusPending, StatusProcessing, StatusShipped, StatusDelivered,
	}
	for _, s := range active {
		if s.IsTerminal() {
			t.Fatalf("expected %q to be non-terminal", s)
		}
	}
}

func TestOrderStatusValid(t *testing.T) {
	if !StatusQuoteRequested.Valid() {
		t.Fatal("quote_requested should be valid")
	}
	if OrderStatus("shipped ").Valid() {
		t.Fatal("status with trailing space should be invalid")
	}
	if OrderStatus("").Valid() {
		t.Fatal("empty status should be invalid")
	}
}
