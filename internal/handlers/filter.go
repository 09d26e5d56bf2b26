package handlers

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Brownie44l1/simplehttp/internal/servlet"
)

// Filter lists the books matching a name.
//
//	?cmd=author&name=<name>   books with an author containing the name
//	?cmd=title&name=<name>    books with a title containing the name
//
// The author name is capitalized before matching ("tolkien" finds
// "J.R.R. Tolkien"); titles match as given.
type Filter struct {
	books []Book
}

func NewFilter(books []Book) *Filter {
	return &Filter{books: books}
}

func (f *Filter) ProcessRequest(ctx *servlet.Context) {
	cmd, ok := ctx.Query("cmd")
	if !ok {
		ctx.BadRequest("missing cmd")
		return
	}

	name, _ := ctx.Query("name")

	switch cmd {
	case "author":
		if name == "" {
			ctx.BadRequest("missing name")
			return
		}

		renderHTML(ctx, bookTable, f.byAuthor(capitalize(name)))
	case "title":
		if name == "" {
			ctx.BadRequest("missing name")
			return
		}

		renderHTML(ctx, bookTable, f.byTitle(name))
	default:
		ctx.BadRequest(fmt.Sprintf("unknown cmd %q", cmd))
	}
}

func (f *Filter) byAuthor(name string) []Book {
	var books []Book
	for _, book := range f.books {
		for _, author := range book.Authors {
			if strings.Contains(author, name) {
				books = append(books, book)
				break
			}
		}
	}

	return books
}

func (f *Filter) byTitle(name string) []Book {
	var books []Book
	for _, book := range f.books {
		if strings.Contains(book.Title, name) {
			books = append(books, book)
		}
	}

	return books
}

// capitalize upper-cases the first letter of s and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
