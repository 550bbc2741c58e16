package router

import (
	"strconv"
	"strings"
)

const (
	msgTraversal  = "'..' is not allowed in note paths."
	msgSaveFailed = "Failed to save note file."
	msgListFailed = "Failed to list note files."

	msgMissingQuery = "Missing list query string, expected '/list?<start>:<end>'."
	msgQueryForm    = "List query must have the form '<start>:<end>'."
	msgMissingStart = "Missing start bound in list query."
	msgMissingEnd   = "Missing end bound in list query."
	msgBadStart     = "List start bound must be an unsigned 16-bit integer."
	msgBadEnd       = "List end bound must be an unsigned 16-bit integer."
	msgInverted     = "List start bound must not exceed end bound."
)

// parseRange decodes "<start>:<end>". On failure msg names the violated
// constraint and the bounds are zero.
func parseRange(query string, hasQuery bool) (start, end uint16, msg string) {
	if !hasQuery || query == "" {
		return 0, 0, msgMissingQuery
	}

	rawStart, rawEnd, ok := strings.Cut(query, ":")
	if !ok {
		return 0, 0, msgQueryForm
	}
	if rawStart == "" {
		return 0, 0, msgMissingStart
	}
	if rawEnd == "" {
		return 0, 0, msgMissingEnd
	}

	s, err := strconv.ParseUint(rawStart, 10, 16)
	if err != nil {
		return 0, 0, msgBadStart
	}
	e, err := strconv.ParseUint(rawEnd, 10, 16)
	if err != nil {
		return 0, 0, msgBadEnd
	}
	if s > e {
		return 0, 0, msgInverted
	}

	return uint16(s), uint16(e), ""
}
