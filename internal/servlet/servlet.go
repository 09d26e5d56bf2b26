// Package servlet defines the capability every request handler implements
// and the per-request context handed to it.
package servlet

// Handler processes one request. It must write exactly one response through
// ctx and must be safe for concurrent use, since one instance serves every
// request routed to it.
type Handler interface {
	ProcessRequest(ctx *Context)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx *Context)

func (f HandlerFunc) ProcessRequest(ctx *Context) {
	f(ctx)
}

// Middleware wraps a Handler.
type Middleware func(next Handler) Handler

// Chain applies mws to h so that mws[0] runs first.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
