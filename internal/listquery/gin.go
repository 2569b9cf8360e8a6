package listquery

import (
	"bytes"
	"io"

	"gateway/internal/domain"

	"github.com/gin-gonic/gin"
)

// maxPeekBytes bounds how much of a JSON body is buffered for extraction.
const maxPeekBytes = 1 << 20

// Handler is a list endpoint that receives its directives as a parameter.
type Handler func(c *gin.Context, q Directives)

// ErrorFunc writes the response for a failed extraction.
type ErrorFunc func(c *gin.Context, err error)

// FromGin extracts the directives of a gin request. A JSON body is read and
// restored so later binding still sees it.
func FromGin(c *gin.Context) (Directives, error) {
	body, err := peekJSONBody(c)
	if err != nil {
		return Directives{}, err
	}
	return Extract(c.Request.URL.Query(), body)
}

// Handle adapts h into a gin handler. Extraction errors abort the request
// through onError before h runs.
func Handle(h Handler, onError ErrorFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := FromGin(c)
		if err != nil {
			onError(c, err)
			c.Abort()
			return
		}
		h(c, q)
	}
}

func peekJSONBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil || c.ContentType() != gin.MIMEJSON {
		return nil, nil
	}
	orig := c.Request.Body
	raw, err := io.ReadAll(io.LimitReader(orig, maxPeekBytes+1))
	if err != nil {
		return nil, domain.ValidationError{Msg: "failed to read request body", Err: err}
	}
	c.Request.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(raw), orig), Closer: orig}
	if len(raw) > maxPeekBytes {
		// oversized bodies are left to the handler's own binding
		return nil, nil
	}
	return raw, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}
