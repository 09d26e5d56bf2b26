package handlers

import (
	"html"
	"strings"

	"github.com/Brownie44l1/simplehttp/internal/response"
	"github.com/Brownie44l1/simplehttp/internal/servlet"
)

// Foo echoes the request path and every query parameter.
type Foo struct{}

func NewFoo() *Foo {
	return &Foo{}
}

func (f *Foo) ProcessRequest(ctx *servlet.Context) {
	var b strings.Builder

	b.WriteString("<h1>This is a Servlet Test.</h1>\n")
	b.WriteString("<p>Request path: " + html.EscapeString(ctx.Path()) + "</p>\n")

	for _, key := range ctx.QueryKeys() {
		value, _ := ctx.Query(key)
		b.WriteString("<p>" + html.EscapeString(key) + " -> " + html.EscapeString(value) + "</p>\n")
	}

	ctx.HTML(response.StatusOK, b.String())
}
