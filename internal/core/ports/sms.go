package ports

import "context"

// SMSMessage is one queued text message for one recipient.
type SMSMessage struct {
	Number  string
	Message string
}

// SMSGateway is the external text-message provider. The production
// integration is a thin I/O wrapper; tests and development use a logging
// stand-in.
type SMSGateway interface {
	Send(ctx context.Context, number, message string) error
}

// SMSDeliverer processes one queued message end to end (dedup check,
// gateway call, bookkeeping).
type SMSDeliverer interface {
	Deliver(ctx context.Context, msg SMSMessage) error
}
