package services

import "fmt"

// DeliveryError reports that the mail transport refused or failed to send a
// message. It is never reported as a successful share.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("mail delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
