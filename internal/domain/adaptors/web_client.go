package adaptors

import (
	"context"
)

// WebResponse is a fully read HTTP response.
type WebResponse struct {
	Body        []byte
	StatusCode  int
	ContentType string
}

type WebClient interface {
	Do(ctx context.Context, url string, method string) (*WebResponse, error)
}
