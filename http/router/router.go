package router

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/pipeline"
)

// MethodQuery is the QUERY method: a safe, idempotent request that carries a body.
const MethodQuery = "QUERY"

// AllMethods lists every method All registers.
var AllMethods = []string{
	"ACL", "BIND", "CHECKOUT", http.MethodConnect, "COPY", http.MethodDelete,
	http.MethodGet, http.MethodHead, "LINK", "LOCK", "M-SEARCH", "MERGE",
	"MKACTIVITY", "MKCALENDAR", "MKCOL", "MOVE", "NOTIFY", http.MethodOptions,
	http.MethodPatch, http.MethodPost, "PROPFIND", "PROPPATCH", "PURGE", http.MethodPut,
	MethodQuery, "REBIND", "REPORT", "SEARCH", "SOURCE", "SUBSCRIBE", http.MethodTrace,
	"UNBIND", "UNLINK", "UNLOCK", "UNSUBSCRIBE",
}

// A Route maps a path template and methods to the decorators handling requests matching them.
type Route struct {
	Path       string
	Methods    []string
	Decorators []pipeline.Decorator
}

// A Router dispatches a request to the first of its Layers matching the request's method and path.
//
// A Router accepts registrations until it dispatches for the first time.
// From then on it is read-only, safe for concurrent use, and further registrations fail.
type Router struct {
	mu     sync.Mutex
	once   sync.Once
	sealed bool
	layers []*Layer
}

// New constructs an empty *Router.
func New() *Router { return new(Router) }

// Register appends a Layer for pattern answering methods,
// whose Handler is ds composed around pipeline.Noop.
func (r *Router) Register(pattern string, methods []string, ds ...pipeline.Decorator) error {
	h, err := pipeline.Compose(pipeline.Noop, ds...)
	if err != nil {
		return fmt.Errorf("registering %q: %w", pattern, err)
	}

	l, err := NewLayer(pattern, methods, h)
	if err != nil {
		return err
	}

	return r.append(l)
}

// Handle registers route.
func (r *Router) Handle(route Route) error {
	return r.Register(route.Path, route.Methods, route.Decorators...)
}

// HandleRoutes registers every Route, placing ds before each Route's own Decorators.
// It stops at the first Route that cannot be registered.
func (r *Router) HandleRoutes(routes []Route, ds ...pipeline.Decorator) error {
	for _, route := range routes {
		all := make([]pipeline.Decorator, 0, len(ds)+len(route.Decorators))
		all = append(all, ds...)
		all = append(all, route.Decorators...)
		if err := r.Register(route.Path, route.Methods, all...); err != nil {
			return err
		}
	}

	return nil
}

// Mount appends a copy of every Layer in sub, in order, with prefix prepended to its pattern.
// Layers registered on sub afterwards are not seen by r.
func (r *Router) Mount(prefix string, sub *Router) error {
	if sub == nil {
		return fmt.Errorf("%w: mounting a nil router at %q", trellis.ErrContractViolation, prefix)
	}

	if sub == r {
		return fmt.Errorf("%w: mounting a router on itself at %q", trellis.ErrContractViolation, prefix)
	}

	prefixed := make([]*Layer, 0)
	for _, l := range sub.Layers() {
		pl, err := l.Prefix(prefix)
		if err != nil {
			return err
		}
		prefixed = append(prefixed, pl)
	}

	return r.append(prefixed...)
}

// Layers returns a copy of r's Layers in dispatch order.
func (r *Router) Layers() []*Layer {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*Layer(nil), r.layers...)
}

// Seal stops r from accepting registrations.
// Dispatch seals r when called for the first time.
func (r *Router) Seal() {
	r.once.Do(func() {
		r.mu.Lock()
		r.sealed = true
		r.mu.Unlock()
	})
}

// Dispatch runs the Handler of the first Layer that allows c's method and matches its path,
// after binding what the path captured onto c.
// It reports false, and does nothing, when no Layer matches.
//
// Registration order is priority order: "/user/:id" registered before "/user/active"
// handles a request for "/user/active".
func (r *Router) Dispatch(c *pipeline.Context) (pipeline.Result, bool) {
	r.Seal()

	method, path := c.Method(), c.RoutePath()
	for _, l := range r.layers {
		if !l.Allows(method) {
			continue
		}

		m, ok := l.Match(path)
		if !ok {
			continue
		}

		c.Params = m.Params
		c.Wildcards = m.Wildcards
		if err := c.Advance(pipeline.Dispatched); err != nil {
			return pipeline.Unexpected(err), true
		}

		return l.Handler()(c), true
	}

	return pipeline.Result{}, false
}

// Decorator adapts r into a pipeline.Decorator.
// A request no Layer matches succeeds with an absent body.
func (r *Router) Decorator() pipeline.Decorator { return r.DecoratorOr(pipeline.Noop) }

// DecoratorOr adapts r into a pipeline.Decorator that runs fallback
// for requests no Layer matches. A nil fallback is pipeline.Noop.
func (r *Router) DecoratorOr(fallback pipeline.Handler) pipeline.Decorator {
	if fallback == nil {
		fallback = pipeline.Noop
	}

	return func(next pipeline.Handler) pipeline.Handler {
		return func(c *pipeline.Context) pipeline.Result {
			res := next(c)
			if !res.OK() {
				return res
			}

			if out, ok := r.Dispatch(c); ok {
				return out
			}

			return fallback(c)
		}
	}
}

func (r *Router) append(ls ...*Layer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: router is already serving", trellis.ErrContractViolation)
	}

	r.layers = append(r.layers, ls...)
	return nil
}

// All registers pattern for every method in AllMethods.
// All and the other method registrars panic where Register would return an error.
func (r *Router) All(pattern string, ds ...pipeline.Decorator) {
	r.must(r.Register(pattern, AllMethods, ds...))
}

// Head registers pattern for HEAD.
func (r *Router) Head(pattern string, ds ...pipeline.Decorator) {
	r.must(r.Register(pattern, []string{http.MethodHead}, ds...))
}

// Options registers pattern for OPTIONS.
func (r *Router) Options(pattern string, ds ...pipeline.Decorator) {
	r.must(r.Register(pattern, []string{http.MethodOptions}, ds...))
}

// Get registers pattern for GET.
func (r *Router) Get(pattern string, ds ...pipeline.Decorator) {
	r.must(r.Register(pattern, []string{http.MethodGet}, ds...))
}

// Query registers pattern for QUERY.
func (r *Router) Query(pattern string, ds ...pipeline.Decorator) {
	r.must(r.Register(pattern, []string{MethodQuery}, ds...))
}

// Put registers pattern for PUT.
func (r *Router) Put(pattern string, ds ...pipeline.Decorator) {
	r.must(r.Register(pattern, []string{http.MethodPut}, ds...))
}

// Patch registers pattern for PATCH.
func (r *Router) Patch(pattern string, ds ...pipeline.Decorator) {
	r.must(r.Register(pattern, []string{http.MethodPatch}, ds...))
}

// Post registers pattern for POST.
func (r *Router) Post(pattern string, ds ...pipeline.Decorator) {
	r.must(r.Register(pattern, []string{http.MethodPost}, ds...))
}

// Delete registers pattern for DELETE.
func (r *Router) Delete(pattern string, ds ...pipeline.Decorator) {
	r.must(r.Register(pattern, []string{http.MethodDelete}, ds...))
}

func (r *Router) must(err error) {
	if err != nil {
		panic(err)
	}
}
