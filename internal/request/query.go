package request

import (
	"net/url"
	"strings"
)

// Query holds decoded query parameters. Keys keep the order of their first
// appearance; a repeated key resolves to its first value.
type Query struct {
	keys   []string
	values map[string][]string
}

// ParseQuery decodes a raw query string. Undecodable escapes are kept verbatim
// instead of failing the request.
func ParseQuery(raw string) Query {
	q := Query{values: make(map[string][]string)}

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		key = unescape(key)
		if key == "" {
			continue
		}

		if _, ok := q.values[key]; !ok {
			q.keys = append(q.keys, key)
		}
		q.values[key] = append(q.values[key], unescape(value))
	}

	return q
}

func unescape(s string) string {
	u, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return u
}

// Get returns the first value for key.
func (q Query) Get(key string) (string, bool) {
	values := q.values[key]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// GetAll returns every value given for key.
func (q Query) GetAll(key string) []string {
	return q.values[key]
}

func (q Query) Has(key string) bool {
	_, ok := q.values[key]
	return ok
}

// Keys returns the distinct keys in order of first appearance.
func (q Query) Keys() []string {
	return append([]string(nil), q.keys...)
}

func (q Query) Len() int {
	return len(q.keys)
}
