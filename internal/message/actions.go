package message

import (
	"context"
	"log/slog"
	"strings"

	"github.com/memohai/agentcore/internal/logger"
)

// HasActions reports whether any response carries an action other than
// empty or NONE (case-insensitive).
func HasActions(ctx context.Context, responses []Memory) bool {
	log := logger.FromContext(ctx)
	for _, resp := range responses {
		action := strings.TrimSpace(resp.Content.Action)
		if action == "" || strings.EqualFold(action, ActionNone) {
			continue
		}
		attrs := []any{slog.String("action", action), slog.String("message_id", resp.ID)}
		if resp.Sender != "" {
			attrs = append(attrs, slog.String("sender", resp.Sender.String()), slog.String("sender_kind", string(resp.Sender.Kind())))
		}
		log.Info("found action", attrs...)
		return true
	}
	log.Info("no actions to process")
	return false
}
