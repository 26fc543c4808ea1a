package payment

import (
	"context"
	"errors"
	"testing"
	"time"
)

func validCard() Card {
	return Card{
		HolderName: "CARLOS SILVA",
		Number:     "4242 4242 4242 4242",
		Expiry:     "09/27",
		CVC:        "123",
	}
}

func TestCardValidate(t *testing.T) {
	cases := []struct {
		name    string
		mut     func(*Card)
		wantErr error
	}{
		{"valid", func(c *Card) {}, nil},
		{"valid without spaces", func(c *Card) { c.Number = "4242424242424242" }, nil},
		{"four digit cvc", func(c *Card) { c.CVC = "1234" }, nil},
		{"empty holder", func(c *Card) { c.HolderName = "  " }, ErrHolderRequired},
		{"short number", func(c *Card) { c.Number = "4242 4242 4242" }, ErrCardNumber},
		{"letters in number", func(c *Card) { c.Number = "4242 4242 4242 424x" }, ErrCardNumber},
		{"missing slash", func(c *Card) { c.Expiry = "0927" }, ErrExpiry},
		{"month zero", func(c *Card) { c.Expiry = "00/27" }, ErrExpiry},
		{"month thirteen", func(c *Card) { c.Expiry = "13/27" }, ErrExpiry},
		{"short cvc", func(c *Card) { c.CVC = "12" }, ErrCVC},
		{"alpha cvc", func(c *Card) { c.CVC = "12a" }, ErrCVC},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			card := validCard()
			tc.mut(&card)
			err := card.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestProcessRejectsBadCardImmediately(t *testing.T) {
	card := validCard()
	card.CVC = "1"
	start := time.Now()
	if err := Process(context.Background(), card); !errors.Is(err, ErrCVC) {
		t.Fatalf("expected ErrCVC, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("format failures must not wait out the processing delay")
	}
}

func TestProcessHonoursContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := Process(ctx, validCard()); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
