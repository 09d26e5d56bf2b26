// Package httpserver bridges net/http handlers into the servlet registry.
package httpserver

import (
	"bytes"
	"context"
	"net/http"

	"github.com/Brownie44l1/simplehttp/internal/headers"
	"github.com/Brownie44l1/simplehttp/internal/logger"
	"github.com/Brownie44l1/simplehttp/internal/response"
	"github.com/Brownie44l1/simplehttp/internal/servlet"
)

// ResponseWriter buffers a net/http response so it can be sent with a
// Content-Length through a response.Writer.
type ResponseWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

// NewResponseWriter creates a new adapter
func NewResponseWriter() *ResponseWriter {
	return &ResponseWriter{
		header: make(http.Header),
	}
}

func (rw *ResponseWriter) Header() http.Header {
	return rw.header
}

func (rw *ResponseWriter) Write(data []byte) (int, error) {
	if rw.status == 0 {
		rw.WriteHeader(http.StatusOK)
	}

	return rw.body.Write(data)
}

// WriteHeader records the status code. Only the first call counts.
func (rw *ResponseWriter) WriteHeader(statusCode int) {
	if rw.status != 0 {
		return
	}

	rw.status = statusCode
}

// Status returns the recorded status, 200 if none was set.
func (rw *ResponseWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}

	return rw.status
}

// Send sends the buffered response through w.
func (rw *ResponseWriter) Send(w *response.Writer) error {
	h := headers.NewHeaders()
	for name, values := range rw.header {
		switch http.CanonicalHeaderKey(name) {
		case "Content-Length", "Connection", "Transfer-Encoding":
			continue
		}
		for _, v := range values {
			h.Add(name, v)
		}
	}

	return w.Respond(response.StatusCode(rw.Status()), h, rw.body.Bytes())
}

// NewRequest converts the servlet request into a net/http request without a
// body.
func NewRequest(ctx *servlet.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(context.Background(), ctx.Method(), ctx.Request.Target, http.NoBody)
	if err != nil {
		return nil, err
	}

	ctx.Request.Headers.Each(func(name, value string) {
		req.Header.Add(name, value)
	})
	req.Host = ctx.Request.Host()
	req.Proto = ctx.Request.Version
	req.RequestURI = ctx.Request.Target

	return req, nil
}

// Handler adapts a net/http.Handler to servlet.Handler.
type Handler struct {
	handler http.Handler
	logger  logger.Logger
}

// NewHandler creates a new handler adapter. A nil log discards send errors.
func NewHandler(handler http.Handler, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}

	return &Handler{handler: handler, logger: log}
}

func (a *Handler) ProcessRequest(ctx *servlet.Context) {
	req, err := NewRequest(ctx)
	if err != nil {
		ctx.BadRequest(err.Error())
		return
	}

	rw := NewResponseWriter()
	a.handler.ServeHTTP(rw, req)

	if err := rw.Send(ctx.Response); err != nil {
		a.logger.Warn("sending response", logger.Err(err), logger.F("request_id", ctx.RequestID))
	}
}
