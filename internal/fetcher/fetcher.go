// Package fetcher retrieves one URL from the node and classifies the JSON body
// as a collection of sub-resources or a terminal document.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"

	"github.com/oakwood-commons/nmosnav/internal/jsondoc"
	"github.com/oakwood-commons/nmosnav/pkg/logger"
)

// PathSeparator terminates every entry of a directory listing.
const PathSeparator = "/"

// Fetcher performs a single GET per call with no retries.
type Fetcher struct {
	client *http.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default client. Tests point it at httptest servers.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// New creates a Fetcher using http.DefaultClient unless overridden. No
// timeout is set beyond what the transport applies.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{client: http.DefaultClient}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// TransportError wraps a failure to obtain a response body.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Error fetching data from %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Fetch issues the GET and classifies the result. Failures never panic or
// return Go errors; they come back as an error Resource. A cancelled ctx
// surfaces as a TransportError wrapping context.Canceled.
func (f *Fetcher) Fetch(ctx context.Context, url string) Resource {
	lgr := logger.FromContext(ctx).WithValues(logger.URLKey, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Failure(&TransportError{URL: url, Err: err})
	}

	resp, err := f.client.Do(req)
	if err != nil {
		lgr.Error(err, "request failed")
		return Failure(&TransportError{URL: url, Err: unwrapURLError(err)})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		lgr.Error(err, "reading body failed", logger.StatusKey, resp.StatusCode)
		return Failure(&TransportError{URL: url, Err: err})
	}
	lgr.V(1).Info("fetched", logger.StatusKey, resp.StatusCode, "bytes", len(body))

	res := Classify(body)
	if res.Kind == KindError {
		lgr.Info("unclassifiable body", logger.StatusKey, resp.StatusCode)
	}
	return res
}

// Classify interprets a response body. Arrays become collections holding only
// the string elements that end in "/", in their original order; everything
// else in the array is dropped. Objects become documents. Anything else,
// including invalid JSON, is ErrUnexpectedFormat.
func Classify(body []byte) Resource {
	node, err := jsondoc.Decode(body)
	if err != nil {
		return Failure(ErrUnexpectedFormat)
	}
	switch node.Kind {
	case jsondoc.Array:
		options := make([]string, 0, len(node.Items))
		for _, item := range node.Items {
			if item.Kind == jsondoc.String && strings.HasSuffix(item.Text, PathSeparator) {
				options = append(options, item.Text)
			}
		}
		return Collection(options)
	case jsondoc.Object:
		return Document(node)
	default:
		return Failure(ErrUnexpectedFormat)
	}
}

// unwrapURLError strips the "Get \"url\": " prefix net/http adds, since the
// URL is already part of the TransportError message.
func unwrapURLError(err error) error {
	var uerr *neturl.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}
