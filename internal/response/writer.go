package response

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Brownie44l1/simplehttp/internal/headers"
)

var (
	ErrStatusWritten  = errors.New("status line already written")
	ErrNoStatus       = errors.New("must write status line before headers")
	ErrNoHeaders      = errors.New("must write headers before body")
	ErrBodyPastLength = errors.New("body exceeds declared Content-Length")
)

type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
	stateBodyWritten
)

// Writer writes one HTTP/1.1 response to an io.Writer. It moves strictly
// through status line, headers and body; every response it writes announces
// "Connection: close".
type Writer struct {
	w             io.Writer
	state         writerState
	statusCode    StatusCode
	contentLength int64 // -1 means unknown
	bodyBytes     int64
	headOnly      bool
	hadError      bool
	defaults      *headers.Headers
	now           func() time.Time
}

// NewWriter creates a new response writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:             w,
		state:         stateStart,
		contentLength: -1,
		now:           time.Now,
	}
}

// SetHeadOnly makes the writer drop body bytes, as required for HEAD.
func (w *Writer) SetHeadOnly(headOnly bool) {
	w.headOnly = headOnly
}

// SetDefault adds a header to every response written by w unless the
// response sets it itself.
func (w *Writer) SetDefault(name, value string) {
	if w.defaults == nil {
		w.defaults = headers.NewHeaders()
	}
	w.defaults.Set(name, value)
}

// WriteStatusLine writes the HTTP status line
func (w *Writer) WriteStatusLine(code StatusCode) error {
	if w.state != stateStart {
		return ErrStatusWritten
	}

	statusLine := fmt.Sprintf("HTTP/1.1 %d %s\r\n", code, StatusText(code))
	if _, err := io.WriteString(w.w, statusLine); err != nil {
		w.hadError = true
		return err
	}

	w.statusCode = code
	w.state = stateStatusWritten
	return nil
}

// WriteHeaders writes h followed by the empty line. Date and Last-Modified
// default to the current time and Connection is always "close".
func (w *Writer) WriteHeaders(h *headers.Headers) error {
	if w.state != stateStatusWritten {
		return ErrNoStatus
	}

	now := FormatDate(w.now())
	h.SetDefault("Date", now)
	h.SetDefault("Last-Modified", now)
	if w.defaults != nil {
		w.defaults.Each(h.SetDefault)
	}
	h.Set("Connection", "close")

	if cl, ok := h.Get("content-length"); ok {
		if length, err := strconv.ParseInt(cl, 10, 64); err == nil {
			w.contentLength = length
		}
	}

	var err error
	h.Each(func(name, value string) {
		if err != nil {
			return
		}
		_, err = io.WriteString(w.w, name+": "+value+"\r\n")
	})
	if err == nil {
		_, err = io.WriteString(w.w, "\r\n")
	}
	if err != nil {
		w.hadError = true
		return err
	}

	w.state = stateHeadersWritten
	return nil
}

// WriteBody writes body bytes. It may be called repeatedly to stream a body.
func (w *Writer) WriteBody(data []byte) error {
	if w.state != stateHeadersWritten && w.state != stateBodyWritten {
		return ErrNoHeaders
	}

	w.state = stateBodyWritten

	if len(data) == 0 || w.headOnly {
		return nil
	}

	if w.contentLength >= 0 && w.bodyBytes+int64(len(data)) > w.contentLength {
		return ErrBodyPastLength
	}

	n, err := w.w.Write(data)
	w.bodyBytes += int64(n)
	if err != nil {
		w.hadError = true
		return err
	}

	return nil
}

// Started reports whether any part of the response has been written.
func (w *Writer) Started() bool {
	return w.state != stateStart
}

func (w *Writer) HadError() bool {
	return w.hadError
}

// BodyBytes returns the number of body bytes written so far.
func (w *Writer) BodyBytes() int64 {
	return w.bodyBytes
}

func (w *Writer) StatusCode() StatusCode {
	return w.statusCode
}
