package notification

import "errors"

var (
	ErrNoRecipient   = errors.New("order has no customer email")
	ErrNoPhone       = errors.New("order has no usable phone number")
	ErrEmailDisabled = errors.New("email channel is not configured")
	ErrEmailRejected = errors.New("email provider rejected the message")
)
