package modules

import (
	"log/slog"

	"github.com/memohai/agentcore/internal/config"
	"github.com/memohai/agentcore/internal/retry"
	"github.com/memohai/agentcore/internal/signature"
	"go.uber.org/fx"
)

var DomainModule = fx.Module(
	"domain",
	fx.Provide(
		provideCurve,
		signature.NewVerifier,
		provideRetryPolicy,
	),
)

// ---------------------------------------------------------------------------
// domain providers
// ---------------------------------------------------------------------------

func provideCurve(cfg config.Config) (signature.Curve, error) {
	return signature.CurveByName(cfg.Signature.Curve)
}

func provideRetryPolicy(cfg config.Config, log *slog.Logger) retry.Policy {
	return retry.Policy{
		MaxRetries: cfg.Retry.MaxRetries,
		Delay:      cfg.Retry.Delay(),
		LogErrors:  cfg.Retry.LogErrors,
		Logger:     log,
	}
}
