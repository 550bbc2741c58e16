package domain

import "strings"

type Method int

const (
	MethodOther Method = iota
	MethodGet
	MethodPost
)

func ParseMethod(s string) Method {
	switch s {
	case "GET":
		return MethodGet
	case "POST":
		return MethodPost
	default:
		return MethodOther
	}
}

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	default:
		return "OTHER"
	}
}

// Request is one parsed request line, its headers and body. Path is the
// request target as received and always starts with "/".
type Request struct {
	Method    Method            `msgpack:"method"`
	RawMethod string            `msgpack:"raw_method"`
	Path      string            `msgpack:"path"`
	Version   string            `msgpack:"version"`
	Headers   map[string]string `msgpack:"headers"`
	Body      []byte            `msgpack:"body"`
}

// Header looks a header up by name, ignoring case.
func (r *Request) Header(name string) (string, bool) {
	if v, ok := r.Headers[name]; ok {
		return v, true
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// SplitQuery returns the path without its query string and the raw query.
// hasQuery is false when the target carries no '?'.
func (r *Request) SplitQuery() (path, query string, hasQuery bool) {
	return strings.Cut(r.Path, "?")
}
