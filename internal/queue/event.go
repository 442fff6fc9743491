// Package queue defines message payloads exchanged over the message
// broker and the background consumer that delivers them.
package queue

import "time"

// EmailQueueName is the durable queue carrying outbound account emails.
const EmailQueueName = "email.outbound"

// Email event kinds.
const (
	EmailKindVerification = "verification"
	EmailKindApproved     = "account_approved"
)

// EmailEvent is published when an account email should go out: a
// verification link after registration, or an approval notice after an
// admin approves the account. The actual delivery mechanism (SMTP,
// email API) sits behind the Mailer interface on the consumer side.
type EmailEvent struct {
	Kind      string    `json:"kind"`
	To        string    `json:"to"`
	FullName  string    `json:"full_name"`
	Token     string    `json:"token,omitempty"` // verification token, set for EmailKindVerification
	CreatedAt time.Time `json:"created_at"`
}
