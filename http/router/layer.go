package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/pipeline"
)

// A Layer is one registered route: a path template, the methods it answers
// and the Handler composed from its decorators.
type Layer struct {
	matcher *Matcher
	methods map[string]struct{}
	handler pipeline.Handler
}

// NewLayer constructs a *Layer.
//
// methods must hold at least one method and none of them may be empty.
// Methods are compared exactly, so they are expected in upper case.
func NewLayer(pattern string, methods []string, h pipeline.Handler) (*Layer, error) {
	if len(methods) == 0 {
		return nil, fmt.Errorf("%w: %q registered without methods", trellis.ErrContractViolation, pattern)
	}

	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		if strings.TrimSpace(m) == "" {
			return nil, fmt.Errorf("%w: %q registered with an empty method", trellis.ErrContractViolation, pattern)
		}
		set[m] = struct{}{}
	}

	if h == nil {
		return nil, fmt.Errorf("%w: %q registered without a handler", trellis.ErrContractViolation, pattern)
	}

	m, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	return &Layer{matcher: m, methods: set, handler: h}, nil
}

// Pattern returns the template l matches.
func (l *Layer) Pattern() string { return l.matcher.Template() }

// Methods returns the methods l answers, sorted.
func (l *Layer) Methods() []string {
	ms := make([]string, 0, len(l.methods))
	for m := range l.methods {
		ms = append(ms, m)
	}
	sort.Strings(ms)

	return ms
}

// Allows reports whether l answers method.
func (l *Layer) Allows(method string) bool {
	_, ok := l.methods[method]
	return ok
}

// Match tests path against l's template.
func (l *Layer) Match(path string) (Match, bool) { return l.matcher.Match(path) }

// Handler returns the Handler l dispatches to.
func (l *Layer) Handler() pipeline.Handler { return l.handler }

// Prefix constructs a new *Layer matching prefix followed by l's template.
// The new Layer shares l's methods and Handler.
//
// prefix is prepended as given: "/v1/" and "/ping" produce "/v1//ping".
func (l *Layer) Prefix(prefix string) (*Layer, error) {
	pattern := l.Pattern()
	m, err := Compile(prefix + pattern)
	if err != nil {
		return nil, err
	}

	return &Layer{matcher: m, methods: l.methods, handler: l.handler}, nil
}
