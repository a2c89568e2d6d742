package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	apperrors "goldenkey/internal/errors"
)

// Cards more than ten years out are rejected as unrealistic.
const maxExpiryYears = 10

var (
	holderNameRegex = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ'´` + "`" + `\-\s]+$`)
	cardNumberRegex = regexp.MustCompile(`^[0-9]{13,19}$`)
	cvvRegex        = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// PaymentDetails carries the card fields submitted with a purchase.
type PaymentDetails struct {
	HolderName string
	CardNumber string
	CVV        string
	Month      int
	Year       int
}

// PaymentValidator validates purchase payment details.
type PaymentValidator struct{}

// NewPaymentValidator creates a new payment validator.
func NewPaymentValidator() *PaymentValidator {
	return &PaymentValidator{}
}

// Validate checks all payment fields and reports the first violated rule.
func (v *PaymentValidator) Validate(p PaymentDetails) error {
	holder := strings.TrimSpace(p.HolderName)
	if len(holder) < 2 || len(holder) > 100 || !holderNameRegex.MatchString(holder) {
		return fmt.Errorf("%w: cardholder name must be 2-100 letters", apperrors.ErrInvalidPayment)
	}

	number := strings.ReplaceAll(p.CardNumber, " ", "")
	if !cardNumberRegex.MatchString(number) {
		return fmt.Errorf("%w: card number must contain 13-19 digits", apperrors.ErrInvalidPayment)
	}

	if !cvvRegex.MatchString(strings.TrimSpace(p.CVV)) {
		return fmt.Errorf("%w: CVV must have 3 or 4 digits", apperrors.ErrInvalidPayment)
	}

	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: expiry month must be between 1 and 12", apperrors.ErrInvalidPayment)
	}

	now := time.Now()
	currentYear, currentMonth := now.Year(), int(now.Month())

	if p.Year < currentYear || (p.Year == currentYear && p.Month < currentMonth) {
		return fmt.Errorf("%w: card is expired", apperrors.ErrInvalidPayment)
	}
	if p.Year > currentYear+maxExpiryYears {
		return fmt.Errorf("%w: expiry year is unrealistic", apperrors.ErrInvalidPayment)
	}

	return nil
}
