package errs

import "errors"

var protocolErrors = []error{
	MalformedRequestLine,
	MalformedHeader,
	InvalidContentLength,
	BodyTooLarge,
	ShortBody,
	UnexpectedEOF,
}

// IsProtocol reports whether err comes from parsing a malformed request.
func IsProtocol(err error) bool {
	for _, target := range protocolErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var (
	MalformedRequestLine = errors.New("protocol: malformed request line")
	MalformedHeader      = errors.New("protocol: malformed header line")
	InvalidContentLength = errors.New("protocol: invalid content-length")
	BodyTooLarge         = errors.New("protocol: body exceeds limit")
	ShortBody            = errors.New("protocol: stream closed before body was complete")
	UnexpectedEOF        = errors.New("protocol: stream closed before request was complete")
)
