package router

import (
	"sort"

	"github.com/Brownie44l1/simplehttp/internal/servlet"
)

// Route binds a path segment to a handler. Path has no leading slash.
type Route struct {
	Path    string
	Handler servlet.Handler
}

// Router maps path segments to handlers. It is built once and never
// modified, so lookups need no locking.
type Router struct {
	routes map[string]servlet.Handler
}

// New creates a router from routes. A later route for the same path
// replaces an earlier one.
func New(routes ...Route) *Router {
	r := &Router{
		routes: make(map[string]servlet.Handler, len(routes)),
	}

	for _, route := range routes {
		if route.Handler == nil {
			continue
		}
		r.routes[route.Path] = route.Handler
	}

	return r
}

// Lookup returns the handler registered for segment. Matching is exact and
// case-sensitive: "foo/" and "Foo" do not match "foo".
func (r *Router) Lookup(segment string) (servlet.Handler, bool) {
	h, ok := r.routes[segment]
	return h, ok
}

// Paths returns the registered segments in sorted order.
func (r *Router) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
