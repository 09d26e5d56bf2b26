package response

import (
	"fmt"
	"strconv"

	"github.com/Brownie44l1/simplehttp/internal/headers"
)

// TextResponse writes a simple text response
func (w *Writer) TextResponse(code StatusCode, body string) error {
	return w.BytesResponse(code, "text/plain; charset=utf-8", []byte(body))
}

// HTMLResponse writes an HTML response
func (w *Writer) HTMLResponse(code StatusCode, body string) error {
	return w.BytesResponse(code, "text/html; charset=utf-8", []byte(body))
}

// ErrorResponse writes a plain-text error response. An empty message falls
// back to the reason phrase.
func (w *Writer) ErrorResponse(code StatusCode, message string) error {
	if message == "" {
		message = StatusText(code)
	}

	return w.TextResponse(code, fmt.Sprintf("Error %d: %s\n", code, message))
}

// BytesResponse writes a complete response with a fixed body.
func (w *Writer) BytesResponse(code StatusCode, contentType string, data []byte) error {
	h := headers.NewHeaders()
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}

	return w.Respond(code, h, data)
}

// Respond writes status, h and data in one go, setting Content-Length.
func (w *Writer) Respond(code StatusCode, h *headers.Headers, data []byte) error {
	if err := w.WriteStatusLine(code); err != nil {
		return err
	}

	h.Set("Content-Length", strconv.Itoa(len(data)))

	if err := w.WriteHeaders(h); err != nil {
		return err
	}

	return w.WriteBody(data)
}
