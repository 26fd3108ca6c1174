package order

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	phonePattern = regexp.MustCompile(`^(\+91)?[6-9]\d{9}$`)
	emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
)

// ValidateCustomerInfo checks the contact fields and payment method.
func ValidateCustomerInfo(info CustomerInfo) error {
	switch {
	case strings.TrimSpace(info.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidCustomerInfo)
	case !emailPattern.MatchString(strings.TrimSpace(info.Email)):
		return fmt.Errorf("%w: invalid email address", ErrInvalidCustomerInfo)
	case !phonePattern.MatchString(strings.ReplaceAll(info.Phone, " ", "")):
		return fmt.Errorf("%w: invalid 10-digit phone number", ErrInvalidCustomerInfo)
	case strings.TrimSpace(info.Address) == "":
		return fmt.Errorf("%w: address is required", ErrInvalidCustomerInfo)
	case !info.PaymentMethod.Valid():
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidCustomerInfo, info.PaymentMethod)
	}
	return nil
}

// DeliveryDateValid reports whether delivery falls on a calendar day after
// now, both read in loc.
func DeliveryDateValid(delivery, now time.Time, loc *time.Location) bool {
	dy, dm, dd := delivery.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()
	return time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC).
		After(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC))
}
