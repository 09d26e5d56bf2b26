package request

import (
	"bytes"
	"errors"
	"net/url"
)

var (
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrInvalidMethod        = errors.New("invalid HTTP method")
	ErrInvalidPath          = errors.New("invalid request path")
	ErrUnsupportedVersion   = errors.New("unsupported HTTP version")
)

var crlf = []byte("\r\n")

// parseRequestLine parses: METHOD TARGET VERSION\r\n
// Returns: method, target, version, bytesConsumed, error
func parseRequestLine(data []byte) (string, string, string, int, error) {
	idx := bytes.Index(data, crlf)
	if idx == -1 {
		// Need more data
		return "", "", "", 0, nil
	}

	line := data[:idx]
	consumed := idx + 2

	parts := bytes.Split(line, []byte(" "))
	if len(parts) != 3 {
		return "", "", "", 0, ErrMalformedRequestLine
	}

	method := string(parts[0])
	target := string(parts[1])
	version := string(parts[2])

	if !isValidMethod(method) {
		return "", "", "", 0, ErrInvalidMethod
	}

	if !isValidVersion(version) {
		return "", "", "", 0, ErrUnsupportedVersion
	}

	return method, target, version, consumed, nil
}

func isValidMethod(method string) bool {
	switch method {
	case "GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS":
		return true
	default:
		return false
	}
}

func isValidVersion(version string) bool {
	return version == "HTTP/1.0" || version == "HTTP/1.1"
}

// splitTarget turns an origin-form or absolute-form request-target into a
// decoded path and the raw query string.
func splitTarget(target string) (string, string, error) {
	if len(target) == 0 || target == "*" {
		return "", "", ErrInvalidPath
	}

	u, err := url.ParseRequestURI(target)
	if err != nil {
		return "", "", ErrInvalidPath
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	if path[0] != '/' {
		return "", "", ErrInvalidPath
	}

	return path, u.RawQuery, nil
}
