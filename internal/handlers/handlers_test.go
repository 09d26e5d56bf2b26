package handlers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/simplehttp/internal/request"
	"github.com/Brownie44l1/simplehttp/internal/response"
	"github.com/Brownie44l1/simplehttp/internal/servlet"
)

var testBooks = []Book{
	{Title: "Unlocking Android", Authors: []string{"W. Frank Ableson", "Charlie Collins"}, ShortDescription: "Android in depth"},
	{Title: "Flex 3 in Action", Authors: []string{"Tariq Ahmed", "Jon Hirschi"}},
	{Title: "Android in Practice", Authors: []string{"Charlie Collins", "Michael Galpin"}},
	{Title: "Griffon in Action", Authors: []string{"Andres Almiray"}},
}

var testEpisodes = []Episode{
	{Name: "Welcome to the Hellmouth", Season: 1, Number: 1, Summary: "<p>Buffy arrives</p>", Image: Image{Medium: "s1e1.jpg"}, Rating: Rating{Average: 7.8}},
	{Name: "The Harvest", Season: 1, Number: 2},
	{Name: "When She Was Bad", Season: 2, Number: 1},
}

// serve runs h for target and returns the status line and the body.
func serve(t *testing.T, h servlet.Handler, target string) (string, string) {
	t.Helper()

	req, err := request.RequestFromReader(strings.NewReader("GET " + target + " HTTP/1.1\r\nHost: localhost\r\n\r\n"))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	ctx := servlet.NewContext(req, response.NewWriter(buf), "test")
	h.ProcessRequest(ctx)
	require.True(t, ctx.Responded())

	head, body, found := strings.Cut(buf.String(), "\r\n\r\n")
	require.True(t, found)

	status, _, _ := strings.Cut(head, "\r\n")
	return status, body
}

func TestFoo(t *testing.T) {
	status, body := serve(t, NewFoo(), "/foo?b=2&a=%3Cx%3E&b=3")

	assert.Equal(t, "HTTP/1.1 200 OK", status)
	assert.Contains(t, body, "<p>Request path: /foo</p>")
	assert.Contains(t, body, "<p>b -> 2</p>")
	assert.Contains(t, body, "<p>a -> &lt;x&gt;</p>")
	assert.Less(t, strings.Index(body, "b -> 2"), strings.Index(body, "a -> "))
}

func TestErrorPage(t *testing.T) {
	status, body := serve(t, NewErrorPage(), "/nowhere")

	assert.Equal(t, "HTTP/1.1 200 OK", status)
	assert.Contains(t, body, "Error: 404")
	assert.Contains(t, body, "This page cannot be found")
}

func TestBooksList(t *testing.T) {
	h := NewBooks(testBooks)

	status, body := serve(t, h, "/books?cmd=list&s=1&e=2")
	assert.Equal(t, "HTTP/1.1 200 OK", status)
	assert.NotContains(t, body, "Unlocking Android")
	assert.Contains(t, body, "Flex 3 in Action")
	assert.Contains(t, body, "Android in Practice")
	assert.Contains(t, body, "Charlie Collins,<br>Michael Galpin")
	assert.NotContains(t, body, "Griffon in Action")
	assert.Equal(t, 3, strings.Count(body, "<tr>"))
}

func TestBooksRandom(t *testing.T) {
	status, body := serve(t, NewBooks(testBooks[3:]), "/books?cmd=random")

	assert.Equal(t, "HTTP/1.1 200 OK", status)
	assert.Contains(t, body, "Griffon in Action")
	assert.Equal(t, 2, strings.Count(body, "<tr>"))
}

func TestBooksBadRequests(t *testing.T) {
	h := NewBooks(testBooks)

	for _, target := range []string{
		"/books",
		"/books?cmd=shelf",
		"/books?cmd=list",
		"/books?cmd=list&s=0",
		"/books?cmd=list&s=a&e=1",
		"/books?cmd=list&s=2&e=1",
		"/books?cmd=list&s=-1&e=1",
		"/books?cmd=list&s=0&e=4",
	} {
		t.Run(target, func(t *testing.T) {
			status, _ := serve(t, h, target)
			assert.Equal(t, "HTTP/1.1 400 Bad Request", status)
		})
	}

	status, _ := serve(t, NewBooks(nil), "/books?cmd=random")
	assert.Equal(t, "HTTP/1.1 400 Bad Request", status)
}

func TestFilterAuthor(t *testing.T) {
	status, body := serve(t, NewFilter(testBooks), "/filter?cmd=author&name=cHARLIE")

	assert.Equal(t, "HTTP/1.1 200 OK", status)
	assert.Contains(t, body, "Unlocking Android")
	assert.Contains(t, body, "Android in Practice")
	assert.NotContains(t, body, "Flex 3 in Action")
}

func TestFilterTitle(t *testing.T) {
	h := NewFilter(testBooks)

	_, body := serve(t, h, "/filter?cmd=title&name=Android")
	assert.Contains(t, body, "Unlocking Android")
	assert.Contains(t, body, "Android in Practice")
	assert.NotContains(t, body, "Griffon")

	_, body = serve(t, h, "/filter?cmd=title&name=android")
	assert.Equal(t, 1, strings.Count(body, "<tr>"))
}

func TestFilterBadRequests(t *testing.T) {
	h := NewFilter(testBooks)

	for _, target := range []string{
		"/filter",
		"/filter?cmd=isbn&name=1",
		"/filter?cmd=author",
		"/filter?cmd=title&name=",
	} {
		status, _ := serve(t, h, target)
		assert.Equal(t, "HTTP/1.1 400 Bad Request", status, target)
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Tolkien", capitalize("tOLKIEN"))
	assert.Equal(t, "Élan", capitalize("éLAN"))
	assert.Equal(t, "X", capitalize("x"))
}

func TestBuffy(t *testing.T) {
	h := NewBuffy(testEpisodes)

	status, body := serve(t, h, "/buffy?cmd=season&s=1")
	assert.Equal(t, "HTTP/1.1 200 OK", status)
	assert.Contains(t, body, "Welcome to the Hellmouth")
	assert.Contains(t, body, "The Harvest")
	assert.NotContains(t, body, "When She Was Bad")
	assert.Contains(t, body, "<p>Buffy arrives</p>")
	assert.Contains(t, body, "s1e1.jpg")
	assert.Contains(t, body, "7.8")

	status, body = serve(t, h, "/buffy?cmd=episode&s=2&e=1")
	assert.Equal(t, "HTTP/1.1 200 OK", status)
	assert.Contains(t, body, "When She Was Bad")
	assert.Equal(t, 2, strings.Count(body, "<tr>"))

	status, body = serve(t, NewBuffy(testEpisodes[1:2]), "/buffy?cmd=random")
	assert.Equal(t, "HTTP/1.1 200 OK", status)
	assert.Contains(t, body, "The Harvest")

	status, body = serve(t, h, "/buffy?cmd=season&s=9")
	assert.Equal(t, "HTTP/1.1 200 OK", status)
	assert.Equal(t, 1, strings.Count(body, "<tr>"))
}

func TestBuffyBadRequests(t *testing.T) {
	h := NewBuffy(testEpisodes)

	for _, target := range []string{
		"/buffy",
		"/buffy?cmd=movie",
		"/buffy?cmd=season",
		"/buffy?cmd=season&s=one",
		"/buffy?cmd=episode&s=1",
		"/buffy?cmd=episode&s=1&e=9",
	} {
		status, _ := serve(t, h, target)
		assert.Equal(t, "HTTP/1.1 400 Bad Request", status, target)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	booksPath := filepath.Join(dir, "books.json")
	require.NoError(t, os.WriteFile(booksPath, []byte(`[
		{"title": "Unlocking Android", "isbn": "1933988673", "pageCount": 416,
		 "publishedDate": {"$date": "2009-04-01T00:00:00.000-0700"},
		 "authors": ["W. Frank Ableson"], "ThumbnailUrl": "thumb.jpg"}
	]`), 0o644))

	books, err := LoadBooks(booksPath)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Unlocking Android", books[0].Title)
	assert.Equal(t, 416, books[0].PageCount)
	assert.Equal(t, "thumb.jpg", books[0].ThumbnailURL)

	episodesPath := filepath.Join(dir, "buffy.json")
	require.NoError(t, os.WriteFile(episodesPath, []byte(`[
		{"id": 1, "name": "Welcome to the Hellmouth", "season": 1, "number": 1,
		 "image": {"medium": "m.jpg"}, "rating": {"average": 7.8}}
	]`), 0o644))

	episodes, err := LoadEpisodes(episodesPath)
	require.NoError(t, err)
	require.Len(t, episodes, 1)
	assert.Equal(t, "m.jpg", episodes[0].Image.Medium)
	assert.Equal(t, 7.8, episodes[0].Rating.Average)

	_, err = LoadBooks(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(booksPath, []byte(`{"title": 1}`), 0o644))
	_, err = LoadBooks(booksPath)
	assert.Error(t, err)
}
