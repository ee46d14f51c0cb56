package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fieldworks/agrifield-api/internal/api/metrics"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

// DedupChecker abstracts the TTL'd duplicate-send store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, number, message string) (bool, error)
	Mark(ctx context.Context, number, message string) error
}

type smsService struct {
	gateway ports.SMSGateway
	dedup   DedupChecker
	log     zerolog.Logger
}

// NewSMSService returns an SMSDeliverer that deduplicates and forwards
// queued messages to the gateway.
func NewSMSService(gateway ports.SMSGateway, dedup DedupChecker, log zerolog.Logger) ports.SMSDeliverer {
	return &smsService{gateway: gateway, dedup: dedup, log: log}
}

// Deliver sends a single queued message. Recently-sent identical messages to
// the same number are skipped silently.
func (s *smsService) Deliver(ctx context.Context, msg ports.SMSMessage) error {
	isDup, err := s.dedup.IsDuplicate(ctx, msg.Number, msg.Message)
	if err != nil {
		s.log.Warn().Err(err).Str("number", msg.Number).Msg("sms dedup check failed, sending anyway")
	} else if isDup {
		metrics.SMSDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("number", msg.Number).Msg("duplicate sms skipped")
		return nil
	}
	metrics.SMSDedupTotal.WithLabelValues("miss").Inc()

	if markErr := s.dedup.Mark(ctx, msg.Number, msg.Message); markErr != nil {
		s.log.Warn().Err(markErr).Str("number", msg.Number).Msg("failed to set sms dedup key")
	}

	if err := s.gateway.Send(ctx, msg.Number, msg.Message); err != nil {
		metrics.SMSDispatchedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("deliver sms: %w", err)
	}

	metrics.SMSDispatchedTotal.WithLabelValues("sent").Inc()
	s.log.Info().Str("number", msg.Number).Msg("sms delivered")
	return nil
}

// SchemesMessage formats a list of government schemes as a single numbered
// text message.
func SchemesMessage(schemes []string) string {
	if len(schemes) == 1 {
		return fmt.Sprintf("Government Scheme: %s", schemes[0])
	}
	msg := "Government Schemes:\n"
	for i, scheme := range schemes {
		msg += fmt.Sprintf("%d. %s\n", i+1, scheme)
	}
	return msg[:len(msg)-1]
}
