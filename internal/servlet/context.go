package servlet

import (
	"fmt"
	"strconv"

	"github.com/Brownie44l1/simplehttp/internal/request"
	"github.com/Brownie44l1/simplehttp/internal/response"
)

// Context carries one request and the writer for its response.
type Context struct {
	Request   *request.Request
	Response  *response.Writer
	RequestID string
}

// NewContext creates a new context
func NewContext(req *request.Request, resp *response.Writer, requestID string) *Context {
	return &Context{
		Request:   req,
		Response:  resp,
		RequestID: requestID,
	}
}

// Method returns the HTTP method
func (c *Context) Method() string {
	return c.Request.Method
}

// Path returns the decoded request path, including the leading slash.
func (c *Context) Path() string {
	return c.Request.Path
}

// Header gets a request header value
func (c *Context) Header(key string) string {
	val, _ := c.Request.Headers.Get(key)
	return val
}

// Query returns the first value of a query parameter.
func (c *Context) Query(key string) (string, bool) {
	return c.Request.Query.Get(key)
}

// QueryKeys returns the distinct query keys in order of appearance.
func (c *Context) QueryKeys() []string {
	return c.Request.Query.Keys()
}

// QueryInt parses a required integer query parameter.
func (c *Context) QueryInt(key string) (int, error) {
	v, ok := c.Query(key)
	if !ok {
		return 0, fmt.Errorf("missing parameter %q", key)
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parameter %q is not a number: %q", key, v)
	}

	return n, nil
}

// Responded reports whether a response has been started.
func (c *Context) Responded() bool {
	return c.Response.Started()
}

// HTML sends an HTML response
func (c *Context) HTML(code response.StatusCode, html string) error {
	return c.Response.HTMLResponse(code, html)
}

// Text sends a plain text response
func (c *Context) Text(code response.StatusCode, text string) error {
	return c.Response.TextResponse(code, text)
}

// Error sends an error response
func (c *Context) Error(code response.StatusCode, message string) error {
	return c.Response.ErrorResponse(code, message)
}

// BadRequest answers 400 with message.
func (c *Context) BadRequest(message string) error {
	return c.Error(response.StatusBadRequest, message)
}
