package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tarotlyfe/tarotlyfe/pkg/slogx"
)

// ConsoleSender logs messages instead of delivering them. Default provider in
// development.
type ConsoleSender struct{}

func NewConsoleSender() *ConsoleSender {
	return &ConsoleSender{}
}

func (s *ConsoleSender) Send(ctx context.Context, to, subject, _ string, textBody string) Result {
	slogx.FromContext(ctx).Info("email (console provider)",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", textBody),
	)
	return Result{
		Success:   true,
		MessageID: fmt.Sprintf("console-%d", time.Now().UnixNano()),
	}
}
