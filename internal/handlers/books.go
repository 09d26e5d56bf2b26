package handlers

import (
	"fmt"
	"math/rand/v2"

	"github.com/Brownie44l1/simplehttp/internal/servlet"
)

// Books renders the book table.
//
//	?cmd=list&s=<start>&e=<end>   books start..end, both inclusive
//	?cmd=random                   one random book
type Books struct {
	books []Book
}

func NewBooks(books []Book) *Books {
	return &Books{books: books}
}

func (b *Books) ProcessRequest(ctx *servlet.Context) {
	cmd, ok := ctx.Query("cmd")
	if !ok {
		ctx.BadRequest("missing cmd")
		return
	}

	switch cmd {
	case "list":
		start, err := ctx.QueryInt("s")
		if err != nil {
			ctx.BadRequest(err.Error())
			return
		}

		end, err := ctx.QueryInt("e")
		if err != nil {
			ctx.BadRequest(err.Error())
			return
		}

		if start < 0 || end < start || end >= len(b.books) {
			ctx.BadRequest(fmt.Sprintf("range %d..%d outside of 0..%d", start, end, len(b.books)-1))
			return
		}

		renderHTML(ctx, bookTable, b.books[start:end+1])
	case "random":
		if len(b.books) == 0 {
			ctx.BadRequest("no books")
			return
		}

		i := rand.IntN(len(b.books))
		renderHTML(ctx, bookTable, b.books[i:i+1])
	default:
		ctx.BadRequest(fmt.Sprintf("unknown cmd %q", cmd))
	}
}
