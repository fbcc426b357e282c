package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor logs one line per RPC with the procedure, caller and latency.
// Client errors log at Warn with their code; internal and unknown errors at Error.
// List it after RequireUser so the caller is known.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"user_id", GetUserID(ctx),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err == nil {
				logger.Info("RPC ok", attrs...)
				return resp, nil
			}

			switch code := connect.CodeOf(err); code {
			case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss:
				logger.Error("RPC error", append(attrs, "code", code, "error", err)...)
			default:
				logger.Warn("RPC error", append(attrs, "code", code, "error", err)...)
			}
			return resp, err
		}
	}
}
