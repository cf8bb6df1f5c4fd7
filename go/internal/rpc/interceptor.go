package rpc

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/rs/zerolog/log"
)

// NewLoggingInterceptor logs every unary call with its duration and, on
// failure, its connect code.
func NewLoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			res, err := next(ctx, req)

			event := log.Debug()
			if err != nil {
				event = log.Warn().Str("code", connect.CodeOf(err).String()).Err(err)
			}
			event.
				Str("procedure", req.Spec().Procedure).
				Dur("duration", time.Since(start)).
				Msg("rpc call")
			return res, err
		}
	}
}
