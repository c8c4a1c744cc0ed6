package fetcher

import (
	"errors"

	"github.com/oakwood-commons/nmosnav/internal/jsondoc"
)

// ErrUnexpectedFormat is reported when a body is not JSON, or is JSON but
// neither an array nor an object.
var ErrUnexpectedFormat = errors.New("Unexpected data format") //nolint:staticcheck // shown to the operator verbatim

// Kind tags the variant held by a Resource.
type Kind int

const (
	KindCollection Kind = iota
	KindDocument
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindCollection:
		return "collection"
	case KindDocument:
		return "document"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Resource is the outcome of one fetch. Exactly one of Options, Document or
// Err is meaningful, selected by Kind.
type Resource struct {
	Kind     Kind
	Options  []string
	Document *jsondoc.Node
	Err      error
}

// Collection builds a resource listing sub-path segments.
func Collection(options []string) Resource {
	return Resource{Kind: KindCollection, Options: options}
}

// Document builds a leaf resource.
func Document(value *jsondoc.Node) Resource {
	return Resource{Kind: KindDocument, Document: value}
}

// Failure builds an error resource.
func Failure(err error) Resource {
	return Resource{Kind: KindError, Err: err}
}

// Message is the operator-facing text of an error resource.
func (r Resource) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
