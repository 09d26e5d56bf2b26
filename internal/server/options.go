package server

import (
	"github.com/google/uuid"

	"github.com/Brownie44l1/simplehttp/internal/handlers"
	"github.com/Brownie44l1/simplehttp/internal/logger"
	"github.com/Brownie44l1/simplehttp/internal/servlet"
)

type options struct {
	logger     logger.Logger
	errorPage  servlet.Handler
	middleware []servlet.Middleware
	newID      func() string
}

// Option configures a Server.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:    logger.Nop(),
		errorPage: handlers.NewErrorPage(),
		newID:     uuid.NewString,
	}
}

func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithErrorPage sets the handler that answers paths matching neither a
// route nor a file. The default page answers 200.
func WithErrorPage(h servlet.Handler) Option {
	return func(o *options) {
		if h != nil {
			o.errorPage = h
		}
	}
}

// WithMiddleware wraps the dispatcher in mws, innermost last.
func WithMiddleware(mws ...servlet.Middleware) Option {
	return func(o *options) {
		o.middleware = append(o.middleware, mws...)
	}
}

// WithRequestID replaces the request ID generator.
func WithRequestID(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}
