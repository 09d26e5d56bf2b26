package headers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderParse(t *testing.T) {
	// Test: Valid single header
	h := NewHeaders()
	data := []byte("Host: localhost:8080\r\n")
	n, done, err := h.Parse(data)
	require.NoError(t, err)
	val, ok := h.Get("host")
	assert.True(t, ok)
	assert.Equal(t, "localhost:8080", val)
	assert.Equal(t, 22, n)
	assert.False(t, done)

	// Test: Extra whitespace around the value is trimmed
	h = NewHeaders()
	_, _, err = h.Parse([]byte("Host:   localhost:8080   \r\n"))
	require.NoError(t, err)
	val, _ = h.Get("HOST")
	assert.Equal(t, "localhost:8080", val)

	// Test: Duplicate headers keep every value, Get returns the first
	h = NewHeaders()
	_, _, err = h.Parse([]byte("Accept: text/html\r\nAccept: text/plain\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"text/html", "text/plain"}, h.GetAll("accept"))
	val, _ = h.Get("accept")
	assert.Equal(t, "text/html", val)

	// Test: Headers followed by empty line
	h = NewHeaders()
	n, done, err = h.Parse([]byte("Host: example.com\r\n\r\nGET"))
	require.NoError(t, err)
	assert.Equal(t, 21, n)
	assert.True(t, done)

	// Test: Incomplete line is left for the next call
	h = NewHeaders()
	n, done, err = h.Parse([]byte("Host: example.com"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, done)
	assert.Equal(t, 0, h.Len())

	// Test: Empty value is allowed
	h = NewHeaders()
	_, _, err = h.Parse([]byte("X-Empty:\r\n"))
	require.NoError(t, err)
	val, ok = h.Get("x-empty")
	assert.True(t, ok)
	assert.Equal(t, "", val)
}

func TestHeaderParseErrors(t *testing.T) {
	cases := []struct {
		input string
		msg   string
	}{
		{"Host : localhost\r\n", "malformed"},
		{"Ho st: localhost\r\n", "malformed"},
		{"InvalidHeader\r\n", "malformed"},
		{": novalue\r\n", "malformed"},
		{"H\xc2\xa9st: localhost\r\n", "invalid character"},
		{"Host: example.com\r\n continued\r\n", "line folding"},
		{"Host: example.com\r\n\tcontinued\r\n", "line folding"},
	}

	for _, tc := range cases {
		h := NewHeaders()
		_, _, err := h.Parse([]byte(tc.input))
		require.Error(t, err, tc.input)
		assert.Contains(t, err.Error(), tc.msg, tc.input)
	}
}

func TestHeaderMutation(t *testing.T) {
	h := NewHeaders()
	h.Add("X-Custom", "value1")
	h.Add("x-custom", "value2")
	assert.Equal(t, []string{"value1", "value2"}, h.GetAll("X-CUSTOM"))

	h.Set("X-Custom", "new-value")
	assert.Equal(t, []string{"new-value"}, h.GetAll("x-custom"))

	h.SetDefault("X-Custom", "ignored")
	h.SetDefault("Content-Type", "text/html")
	val, _ := h.Get("x-custom")
	assert.Equal(t, "new-value", val)
	val, _ = h.Get("content-type")
	assert.Equal(t, "text/html", val)

	h.Del("X-Custom")
	assert.False(t, h.Has("x-custom"))
	assert.Equal(t, 1, h.Len())
}

func TestHeaderEachIsOrderedAndCanonical(t *testing.T) {
	h := NewHeaders()
	h.Set("content-type", "text/html")
	h.Set("CONTENT-LENGTH", "42")
	h.Add("x-request-id", "abc")

	var lines []string
	h.Each(func(name, value string) {
		lines = append(lines, name+": "+value)
	})

	assert.Equal(t, []string{
		"Content-Type: text/html",
		"Content-Length: 42",
		"X-Request-Id: abc",
	}, lines)
}
