package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Publisher emits fire-and-forget domain events. Failures are logged, never
// returned: event delivery must not fail the request that caused it.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload interface{})
}

type natsPublisher struct {
	conn   *nats.Conn
	prefix string
	logger zerolog.Logger
}

// NewNATSPublisher wraps a NATS connection as a Publisher. A nil connection
// yields a no-op publisher so callers never need to nil-check.
func NewNATSPublisher(conn *nats.Conn, prefix string, logger zerolog.Logger) Publisher {
	if conn == nil {
		return noopPublisher{}
	}
	return &natsPublisher{
		conn:   conn,
		prefix: prefix,
		logger: logger.With().Str("component", "nats_publisher").Logger(),
	}
}

func (p *natsPublisher) Publish(_ context.Context, subject string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error().Err(err).Str("subject", subject).Msg("marshal event payload")
		return
	}

	full := fmt.Sprintf("%s.%s", p.prefix, subject)
	if err := p.conn.Publish(full, data); err != nil {
		p.logger.Error().Err(err).Str("subject", full).Msg("publish event")
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, interface{}) {}
