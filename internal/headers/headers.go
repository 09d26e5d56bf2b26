package headers

import (
	"bytes"
	"fmt"
	"net/textproto"
	"strings"
)

// Headers is a case-insensitive multimap of HTTP header fields. Field names
// are stored lowercased for lookup and written back in canonical form, in
// the order they were first added.
type Headers struct {
	headers map[string][]string
	order   []string
}

func NewHeaders() *Headers {
	return &Headers{
		headers: make(map[string][]string),
	}
}

// Get returns the first value for a header
func (h *Headers) Get(key string) (string, bool) {
	values := h.headers[strings.ToLower(key)]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// GetAll returns all values for a header
func (h *Headers) GetAll(key string) []string {
	return h.headers[strings.ToLower(key)]
}

// Has reports whether at least one value is stored for key.
func (h *Headers) Has(key string) bool {
	return len(h.headers[strings.ToLower(key)]) > 0
}

// Set replaces all values for a header
func (h *Headers) Set(key, value string) {
	key = strings.ToLower(key)
	h.track(key)
	h.headers[key] = []string{value}
}

// SetDefault sets key only if it has no value yet.
func (h *Headers) SetDefault(key, value string) {
	if !h.Has(key) {
		h.Set(key, value)
	}
}

// Add appends a value to a header
func (h *Headers) Add(key, value string) {
	key = strings.ToLower(key)
	h.track(key)
	h.headers[key] = append(h.headers[key], value)
}

// Del removes a header
func (h *Headers) Del(key string) {
	key = strings.ToLower(key)
	if _, ok := h.headers[key]; !ok {
		return
	}
	delete(h.headers, key)

	for i, k := range h.order {
		if k == key {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of distinct header names.
func (h *Headers) Len() int {
	return len(h.order)
}

// Each calls fn for every value in insertion order, with the name in
// canonical form (e.g. "Content-Length").
func (h *Headers) Each(fn func(name, value string)) {
	for _, key := range h.order {
		name := textproto.CanonicalMIMEHeaderKey(key)
		for _, value := range h.headers[key] {
			fn(name, value)
		}
	}
}

func (h *Headers) track(key string) {
	if _, ok := h.headers[key]; !ok {
		h.order = append(h.order, key)
	}
}

// Parse parses header lines from raw bytes. It returns the number of bytes
// consumed and whether the terminating empty line was seen.
func (h *Headers) Parse(data []byte) (int, bool, error) {
	read := 0
	done := false

	for {
		idx := bytes.Index(data[read:], []byte("\r\n"))
		if idx == -1 {
			// Need more data
			break
		}

		if idx == 0 {
			// Empty line = end of headers
			done = true
			read += 2
			break
		}

		line := data[read : read+idx]

		if line[0] == ' ' || line[0] == '\t' {
			return read, false, fmt.Errorf("obsolete line folding not supported")
		}

		name, value, err := parseHeader(line)
		if err != nil {
			return read, done, err
		}

		h.Add(name, value)

		read += idx + 2
	}

	return read, done, nil
}

func parseHeader(line []byte) (string, string, error) {
	colonIdx := bytes.IndexByte(line, ':')
	if colonIdx == -1 {
		return "", "", fmt.Errorf("malformed header: no colon")
	}

	name := line[:colonIdx]
	value := line[colonIdx+1:]

	if len(name) == 0 {
		return "", "", fmt.Errorf("malformed header: empty name")
	}

	if bytes.ContainsAny(name, " \t") {
		return "", "", fmt.Errorf("malformed header: whitespace in name")
	}

	for _, b := range name {
		if !isTokenChar(b) {
			return "", "", fmt.Errorf("invalid character in header name: %q", b)
		}
	}

	return strings.ToLower(string(name)), string(bytes.TrimSpace(value)), nil
}

// isTokenChar reports whether b is allowed in a header field name (RFC 9110 tchar).
func isTokenChar(b byte) bool {
	return (b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z') ||
		(b >= '0' && b <= '9') ||
		strings.IndexByte("!#$%&'*+-.^_`|~", b) >= 0
}
