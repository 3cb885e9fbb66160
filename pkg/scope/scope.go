package scope

import (
	"strings"

	"github.com/walteh/marko-inspect/pkg/position"
	"gitlab.com/tozd/go/errors"
)

// Kind is the structural meaning a highlighter scope carries for completion.
type Kind int

const (
	KindUnknown Kind = iota
	KindTag
	KindAttributeName
	KindAttributeNameValueSeparator
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindAttributeName:
		return "attribute-name"
	case KindAttributeNameValueSeparator:
		return "attribute-name-value-separator"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "tag":
		return KindTag, nil
	case "attribute-name":
		return KindAttributeName, nil
	case "attribute-name-value-separator":
		return KindAttributeNameValueSeparator, nil
	case "string":
		return KindString, nil
	default:
		return KindUnknown, errors.Errorf("unknown scope kind %q", s)
	}
}

// Info is what the table knows about one scope name. Concise is only set on
// tag scopes of the whitespace-significant syntax.
type Info struct {
	Kind    Kind
	Concise bool
}

// Provider returns the ordered scope stack a highlighter assigned to pos.
type Provider interface {
	ScopesAt(pos position.Position) []string
}

type ProviderFunc func(pos position.Position) []string

func (f ProviderFunc) ScopesAt(pos position.Position) []string {
	return f(pos)
}
