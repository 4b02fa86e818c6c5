package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xy-planning-network/trellis"
)

var paramNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// A Match holds what a Matcher captured from a path.
type Match struct {
	// Params maps each :name segment to the text it matched.
	Params map[string]string

	// Wildcards lists what each * segment matched, in pattern order.
	Wildcards []string
}

// A Matcher tests paths against one compiled route template.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	template string
	re       *regexp.Regexp
}

// Compile turns a route template into a Matcher.
//
// The template is split on '/'. Each segment is one of:
//
//   - ":name", matching any run of characters other than '/' and capturing it as name
//   - "*", matching the rest of the path, '/' included
//   - anything else, matching itself ignoring case
//
// Empty segments, such as the one a trailing '/' produces, are literal.
// Matching is anchored at both ends.
//
// A :name must be a Go identifier and must not repeat within the template;
// otherwise Compile fails with ErrContractViolation.
func Compile(template string) (*Matcher, error) {
	seen := make(map[string]bool)
	segments := strings.Split(template, "/")
	for i, seg := range segments {
		switch {
		case seg == "*":
			segments[i] = "(.*)"
		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if !paramNameRegex.MatchString(name) {
				return nil, fmt.Errorf("%w: invalid parameter name %q in %q", trellis.ErrContractViolation, name, template)
			}

			if seen[name] {
				return nil, fmt.Errorf("%w: parameter %q repeats in %q", trellis.ErrContractViolation, name, template)
			}
			seen[name] = true

			segments[i] = "(?P<" + name + ">[^/]*)"
		default:
			segments[i] = regexp.QuoteMeta(seg)
		}
	}

	re, err := regexp.Compile("(?i)^" + strings.Join(segments, "/") + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: compiling %q: %s", trellis.ErrContractViolation, template, err)
	}

	return &Matcher{template: template, re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(template string) *Matcher {
	m, err := Compile(template)
	if err != nil {
		panic(err)
	}

	return m
}

// Template returns the template m was compiled from.
func (m *Matcher) Template() string { return m.template }

// Match tests path against m.
func (m *Matcher) Match(path string) (Match, bool) {
	sub := m.re.FindStringSubmatch(path)
	if sub == nil {
		return Match{}, false
	}

	match := Match{Params: make(map[string]string)}
	for i, name := range m.re.SubexpNames() {
		if i == 0 {
			continue
		}

		if name == "" {
			match.Wildcards = append(match.Wildcards, sub[i])
			continue
		}

		match.Params[name] = sub[i]
	}

	return match, true
}
