package messaging

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	reminderapp "github.com/teakhata/backend/internal/application/reminder"
)

// Ensure NoopSender implements Sender
var _ reminderapp.Sender = (*NoopSender)(nil)

// NoopSender logs messages instead of delivering them. Used in dry-run
// mode and local development so the reminder pipeline can be exercised
// without a gateway account.
type NoopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a new NoopSender
func NewNoopSender(logger *zap.Logger) *NoopSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopSender{logger: logger}
}

// Send logs the message and returns a fabricated message id
func (s *NoopSender) Send(ctx context.Context, to, body string) (string, error) {
	id := "dryrun-" + uuid.NewString()
	s.logger.Info("Dry-run reminder, not delivered",
		zap.String("to", to),
		zap.String("message_id", id),
		zap.String("body", body))
	return id, nil
}
