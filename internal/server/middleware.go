package server

import (
	"runtime/debug"
	"time"

	"github.com/Brownie44l1/simplehttp/internal/logger"
	"github.com/Brownie44l1/simplehttp/internal/response"
	"github.com/Brownie44l1/simplehttp/internal/servlet"
)

// LoggingMiddleware logs all requests
func LoggingMiddleware(log logger.Logger) servlet.Middleware {
	return func(next servlet.Handler) servlet.Handler {
		return servlet.HandlerFunc(func(ctx *servlet.Context) {
			start := time.Now()

			next.ProcessRequest(ctx)

			log.Info("request handled",
				logger.F("method", ctx.Method()),
				logger.F("path", ctx.Path()),
				logger.F("status", int(ctx.Response.StatusCode())),
				logger.F("bytes", ctx.Response.BodyBytes()),
				logger.F("duration_ms", time.Since(start).Milliseconds()),
				logger.F("request_id", ctx.RequestID),
			)
		})
	}
}

// RecoveryMiddleware recovers from panics and makes sure every request gets
// a response: 500 when the handler panicked or returned without writing.
func RecoveryMiddleware(log logger.Logger) servlet.Middleware {
	return func(next servlet.Handler) servlet.Handler {
		return servlet.HandlerFunc(func(ctx *servlet.Context) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic recovered",
						logger.F("error", err),
						logger.F("stack", string(debug.Stack())),
						logger.F("request_id", ctx.RequestID),
						logger.F("path", ctx.Path()),
					)
				} else if !ctx.Responded() {
					log.Warn("handler wrote no response",
						logger.F("request_id", ctx.RequestID),
						logger.F("path", ctx.Path()),
					)
				}

				if !ctx.Responded() {
					ctx.Error(response.StatusInternalServerError, "")
				}
			}()

			next.ProcessRequest(ctx)
		})
	}
}
