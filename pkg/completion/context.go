package completion

import (
	"github.com/walteh/marko-inspect/pkg/position"
	"github.com/walteh/marko-inspect/pkg/scope"
)

// Request is a snapshot of the editor at the moment completion was asked
// for: the buffer, the caret, the scope stack at the caret and a way to read
// the stack anywhere else.
type Request struct {
	Buffer   position.Buffer
	Position position.Position
	Scopes   []string
	Provider scope.Provider
}

// caretProvider answers for the caret from the request snapshot and defers
// to the editor everywhere else.
type caretProvider struct {
	caret  position.Position
	scopes []string
	next   scope.Provider
}

func (me *caretProvider) ScopesAt(pos position.Position) []string {
	if pos == me.caret {
		return me.scopes
	}
	if me.next == nil {
		return nil
	}
	return me.next.ScopesAt(pos)
}

func normalize(req Request) Request {
	if req.Buffer == nil {
		req.Buffer = position.Lines(nil)
	}
	if req.Scopes == nil && req.Provider != nil {
		req.Scopes = req.Provider.ScopesAt(req.Position)
	}
	req.Provider = &caretProvider{caret: req.Position, scopes: req.Scopes, next: req.Provider}
	return req
}
