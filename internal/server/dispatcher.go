package server

import (
	"strings"

	"github.com/Brownie44l1/simplehttp/internal/logger"
	"github.com/Brownie44l1/simplehttp/internal/response"
	"github.com/Brownie44l1/simplehttp/internal/router"
	"github.com/Brownie44l1/simplehttp/internal/servlet"
	"github.com/Brownie44l1/simplehttp/internal/static"
	"github.com/Brownie44l1/simplehttp/internal/stats"
)

// dispatcher sends a request to its route, to a file below the root or to
// the error page, in that order.
type dispatcher struct {
	routes    *router.Router
	files     *static.Server
	errorPage servlet.Handler
	tracker   *stats.Tracker
	logger    logger.Logger
}

func (d *dispatcher) ProcessRequest(ctx *servlet.Context) {
	path := ctx.Path()
	d.tracker.RecordPathHit(path)

	key := strings.TrimPrefix(path, "/")

	if h, ok := d.routes.Lookup(key); ok {
		h.ProcessRequest(ctx)
		return
	}

	res := d.files.Resolve(key)
	if res.Found {
		if err := d.files.Serve(ctx.Response, res); err != nil {
			d.logger.Error("serving file",
				logger.Err(err),
				logger.F("request_id", ctx.RequestID),
				logger.F("file", res.Path),
			)
			if !ctx.Responded() {
				ctx.Error(response.StatusInternalServerError, "")
			}
		}
		return
	}

	d.tracker.RecordMissingPath(res.Path)
	d.errorPage.ProcessRequest(ctx)
}
