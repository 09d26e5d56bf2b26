package handlers

import (
	"github.com/Brownie44l1/simplehttp/internal/response"
	"github.com/Brownie44l1/simplehttp/internal/servlet"
)

const errorPage = `<h1>Error: 404</h1>
<h2>This page cannot be found</h2>
`

// ErrorPage answers unresolved paths. The page reports 404 in its body but
// the response status stays 200.
type ErrorPage struct{}

func NewErrorPage() *ErrorPage {
	return &ErrorPage{}
}

func (e *ErrorPage) ProcessRequest(ctx *servlet.Context) {
	ctx.HTML(response.StatusOK, errorPage)
}
