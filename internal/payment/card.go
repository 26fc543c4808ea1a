// Package payment implements the simulated subscription payment flow.
// Cards are checked for format only; once the format checks pass the
// charge always succeeds after a fixed processing delay.  No real
// processor is involved anywhere.
package payment

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
)

// ProcessingDelay is how long the fake bank "thinks" before approving.
const ProcessingDelay = 3 * time.Second

var (
	ErrHolderRequired = errors.New("cardholder name is required")
	ErrCardNumber     = errors.New("invalid card number")
	ErrExpiry         = errors.New("invalid expiry date")
	ErrCVC            = errors.New("invalid cvc")
)

// Card carries the form fields of the payment modal.  Number may contain
// spaces; Expiry is MM/YY.
type Card struct {
	HolderName string `json:"holder_name"`
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

// Validate runs the basic format checks the payment form applies: a
// non-empty holder name, a 16-digit number, an MM/YY expiry with a
// plausible month, and a 3 or 4 digit CVC.
func (c Card) Validate() error {
	if strings.TrimSpace(c.HolderName) == "" {
		return ErrHolderRequired
	}
	digits := strings.ReplaceAll(c.Number, " ", "")
	if len(digits) != 16 || !allDigits(digits) {
		return ErrCardNumber
	}
	if err := checkExpiry(c.Expiry); err != nil {
		return err
	}
	if n := len(c.CVC); n < 3 || n > 4 || !allDigits(c.CVC) {
		return ErrCVC
	}
	return nil
}

// Process simulates the bank call: a fixed delay, then success.  The
// context can cut the wait short, in which case its error is returned
// and the caller treats the charge as not made.
func Process(ctx context.Context, c Card) error {
	if err := c.Validate(); err != nil {
		return err
	}
	t := time.NewTimer(ProcessingDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func checkExpiry(s string) error {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return ErrExpiry
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return ErrExpiry
	}
	if !allDigits(parts[1]) {
		return ErrExpiry
	}
	return nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
