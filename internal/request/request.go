package request

import (
	"io"

	"github.com/Brownie44l1/simplehttp/internal/headers"
)

// Request is a parsed HTTP request head. Bodies are not read.
type Request struct {
	Method   string
	Target   string // request-target exactly as received
	Path     string // decoded absolute path, always starts with "/"
	RawQuery string
	Query    Query
	Version  string
	Headers  *headers.Headers
}

func newRequest() *Request {
	return &Request{
		Headers: headers.NewHeaders(),
	}
}

// RequestFromReader reads one request head from reader using the default
// header size limit.
func RequestFromReader(reader io.Reader) (*Request, error) {
	return ReadRequest(reader, 0)
}

// ReadRequest reads one request head from reader. maxHeaderBytes <= 0 selects
// the default limit.
func ReadRequest(reader io.Reader, maxHeaderBytes int) (*Request, error) {
	req := newRequest()
	p := newParser()

	if err := p.parseFromReader(reader, req, maxHeaderBytes); err != nil {
		return nil, err
	}

	return req, nil
}

// Host returns the Host header, if any.
func (r *Request) Host() string {
	host, _ := r.Headers.Get("host")
	return host
}
