package routing

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrMissingParam  = errors.New("missing route param")
	ErrRouteNotFound = errors.New("route not found")
	ErrInvalidEntry  = errors.New("invalid route entry")
)

// Placeholders lists the ":segment" names of pattern in path order.
func Placeholders(pattern string) []string {
	var names []string
	for _, seg := range strings.Split(pattern, "/") {
		if name, ok := placeholder(seg); ok {
			names = append(names, name)
		}
	}
	return names
}

// ValidateEntry checks that e can be mounted per product: it needs a name, an
// absolute path and a ":product" placeholder, and no placeholder may repeat.
func ValidateEntry(e Entry) error {
	if e.Name == "" {
		return fmt.Errorf("%w: entry for %q has no name", ErrInvalidEntry, e.Path)
	}
	if !strings.HasPrefix(e.Path, "/") {
		return fmt.Errorf("%w: %s: path %q must start with /", ErrInvalidEntry, e.Name, e.Path)
	}

	seen := make(map[string]bool)
	for _, name := range Placeholders(e.Path) {
		if seen[name] {
			return fmt.Errorf("%w: %s: placeholder %q repeats", ErrInvalidEntry, e.Name, name)
		}
		seen[name] = true
	}
	if !seen[ParamProduct] {
		return fmt.Errorf("%w: %s: path %q has no :%s segment", ErrInvalidEntry, e.Name, e.Path, ParamProduct)
	}
	return nil
}

// Expand fills every placeholder of pattern from params. Values are
// path-escaped. A placeholder with no value, or an empty one, is an error
// wrapping ErrMissingParam.
func Expand(pattern string, params Params) (string, error) {
	segs := strings.Split(pattern, "/")
	for i, seg := range segs {
		name, ok := placeholder(seg)
		if !ok {
			continue
		}
		v := params[name]
		if v == "" {
			return "", fmt.Errorf("%w %q for %s", ErrMissingParam, name, pattern)
		}
		segs[i] = url.PathEscape(v)
	}
	return strings.Join(segs, "/"), nil
}

// Bind fills only the placeholders named in params and leaves the rest in
// place. Empty values are left unbound.
func Bind(pattern string, params Params) string {
	segs := strings.Split(pattern, "/")
	for i, seg := range segs {
		if name, ok := placeholder(seg); ok && params[name] != "" {
			segs[i] = url.PathEscape(params[name])
		}
	}
	return strings.Join(segs, "/")
}

// MuxPattern rewrites ":segment" placeholders into gorilla/mux "{segment}"
// variables.
func MuxPattern(pattern string) string {
	segs := strings.Split(pattern, "/")
	for i, seg := range segs {
		if name, ok := placeholder(seg); ok {
			segs[i] = "{" + name + "}"
		}
	}
	return strings.Join(segs, "/")
}

// Resolve finds the entry named after r and expands its path with r's params.
func (r Route) Resolve(entries []Entry) (string, error) {
	for _, e := range entries {
		if e.Name == r.Name {
			return Expand(e.Path, r.Params)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrRouteNotFound, r.Name)
}

func placeholder(seg string) (string, bool) {
	if len(seg) < 2 || seg[0] != ':' {
		return "", false
	}
	return seg[1:], true
}
