package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goriiin/go-notes/internal/domain"
	"github.com/goriiin/go-notes/internal/errs"
)

const headerContentLength = "Content-Length"

type state int

const (
	stateRequestLine state = iota
	stateHeaders
	stateBody
	stateDone
)

// Reader parses a single request off a byte stream.
type Reader struct {
	br *bufio.Reader

	// MaxBodyBytes rejects declared bodies above this size. Zero means no limit.
	MaxBodyBytes int64
}

func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{br: br}
}

// ReadRequest blocks until a full request has been read or the stream fails.
func (r *Reader) ReadRequest() (*domain.Request, error) {
	req := &domain.Request{Headers: make(map[string]string)}
	st := stateRequestLine

	for st != stateDone {
		var err error
		switch st {
		case stateRequestLine:
			st, err = r.readRequestLine(req)
		case stateHeaders:
			st, err = r.readHeader(req)
		case stateBody:
			st, err = r.readBody(req)
		}
		if err != nil {
			return nil, err
		}
	}

	return req, nil
}

func (r *Reader) readRequestLine(req *domain.Request) (state, error) {
	line, err := r.readLine()
	if err != nil {
		return stateDone, err
	}

	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return stateDone, fmt.Errorf("%w: %q", errs.MalformedRequestLine, line)
	}

	method, target, version := parts[0], parts[1], parts[2]
	if method == "" || !strings.HasPrefix(target, "/") || !strings.HasPrefix(version, "HTTP/") {
		return stateDone, fmt.Errorf("%w: %q", errs.MalformedRequestLine, line)
	}

	req.Method = domain.ParseMethod(method)
	req.RawMethod = method
	req.Path = target
	req.Version = version

	return stateHeaders, nil
}

func (r *Reader) readHeader(req *domain.Request) (state, error) {
	line, err := r.readLine()
	if err != nil {
		return stateDone, err
	}
	if line == "" {
		return stateBody, nil
	}

	name, value, ok := strings.Cut(line, ":")
	if !ok || name == "" || strings.TrimSpace(name) != name {
		return stateDone, fmt.Errorf("%w: %q", errs.MalformedHeader, line)
	}
	// Duplicates are last-wins regardless of case; the latest spelling is kept.
	for k := range req.Headers {
		if strings.EqualFold(k, name) {
			delete(req.Headers, k)
		}
	}
	req.Headers[name] = strings.TrimSpace(value)

	return stateHeaders, nil
}

func (r *Reader) readBody(req *domain.Request) (state, error) {
	raw, ok := req.Header(headerContentLength)
	if !ok {
		return stateDone, nil
	}

	u, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		return stateDone, fmt.Errorf("%w: %q", errs.InvalidContentLength, raw)
	}
	n := int64(u)
	if r.MaxBodyBytes > 0 && n > r.MaxBodyBytes {
		return stateDone, fmt.Errorf("%w: %d > %d", errs.BodyTooLarge, n, r.MaxBodyBytes)
	}
	if n == 0 {
		return stateDone, nil
	}

	body := make([]byte, n)
	if _, err = io.ReadFull(r.br, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return stateDone, fmt.Errorf("%w: %v", errs.ShortBody, err)
		}
		return stateDone, fmt.Errorf("read body: %w", err)
	}
	req.Body = body

	return stateDone, nil
}

// readLine returns one line without its CRLF (or bare LF) terminator.
func (r *Reader) readLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errs.UnexpectedEOF
		}
		return "", fmt.Errorf("read line: %w", err)
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
