package protocol

import (
	"bufio"
	"fmt"
	"io"
	"net/http"

	"github.com/goriiin/go-notes/internal/domain"
)

// WriteResponse serializes resp as a complete HTTP/1.1 response. The
// connection is not kept alive, so Connection: close is always sent.
func WriteResponse(w io.Writer, resp *domain.Response) error {
	bw := bufio.NewWriter(w)

	code := int(resp.Status)
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", code, http.StatusText(code)); err != nil {
		return fmt.Errorf("write status line: %w", err)
	}
	if _, err := fmt.Fprintf(bw, "Content-Type: %s\r\nContent-Length: %d\r\nConnection: close\r\n\r\n",
		resp.ContentType, len(resp.Body)); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	if _, err := bw.Write(resp.Body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush response: %w", err)
	}
	return nil
}
