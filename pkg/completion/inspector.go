package completion

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/marko-inspect/pkg/position"
	"github.com/walteh/marko-inspect/pkg/recognize"
	"github.com/walteh/marko-inspect/pkg/scanner"
	"github.com/walteh/marko-inspect/pkg/scope"
)

// Inspector decides what can be completed at one caret. It is built for a
// single request and holds no state between calls to Inspect, so calling
// Inspect again on the same snapshot gives the same Result.
type Inspector struct {
	req     Request
	table   *scope.Table
	scanner *scanner.Scanner
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithTable replaces the default Marko scope table.
func WithTable(table *scope.Table) Option {
	return func(me *Inspector) {
		if table != nil {
			me.table = table
		}
	}
}

func NewInspector(req Request, opts ...Option) *Inspector {
	me := &Inspector{
		req:   normalize(req),
		table: scope.DefaultTable(),
	}
	for _, opt := range opts {
		opt(me)
	}
	me.scanner = scanner.New(me.req.Buffer, me.req.Provider, me.table)
	return me
}

// Inspect runs a single inspection, reading the caret's scope stack from provider.
func Inspect(ctx context.Context, buf position.Buffer, pos position.Position, provider scope.Provider, opts ...Option) *Result {
	return NewInspector(Request{Buffer: buf, Position: pos, Provider: provider}, opts...).Inspect(ctx)
}

func (me *Inspector) Inspect(ctx context.Context) *Result {
	res := me.inspect(ctx, me.req.Position, me.req.Scopes, true)

	zerolog.Ctx(ctx).Debug().
		Stringer("position", me.req.Position).
		Strs("scopes", me.req.Scopes).
		Str("completion_type", string(res.CompletionType)).
		Str("tag", res.TagName).
		Str("attribute", res.AttributeName).
		Str("prefix", res.Prefix).
		Msg("inspected cursor context")

	return res
}

func (me *Inspector) inspect(ctx context.Context, pos position.Position, stack []string, lookback bool) *Result {
	line := position.LineUpTo(me.req.Buffer, pos, false)

	res := &Result{Prefix: recognize.Prefix(line)}

	var concise bool
	if me.table.IsPlainText(stack) {
		if lookback {
			concise = me.inspectPlainText(ctx, pos, line, res)
		}
	} else {
		concise = me.inspectScoped(ctx, pos, line, stack, res)
	}

	if res.CompletionType == CompletionTagStart && !concise {
		if base, ok := recognize.Shorthand(res.Prefix); ok {
			res.ShorthandTagName = base
			res.HasShorthand = true
		}
	}

	res.Syntax = SyntaxHTML
	if concise {
		res.Syntax = SyntaxConcise
	}

	return res
}

// inspectPlainText handles a caret outside any classified token: right after
// a tag or attribute, or typing a `<` or `</` opener.
func (me *Inspector) inspectPlainText(ctx context.Context, pos position.Position, line string, res *Result) bool {
	if adj, ok := me.scanner.Adjacent(ctx, pos); ok {
		prev := me.inspect(ctx, adj.Position, adj.Scopes, false)

		switch prev.CompletionType {
		case CompletionTagStart:
			if adj.Whitespace {
				res.CompletionType = CompletionAttributeName
			} else {
				// still on the tag name, whatever closes it is already typed
				res.CompletionType = CompletionTagStart
				res.ShouldCompleteEndingTag = false
			}
		case CompletionAttributeName, CompletionAttributeValue:
			if adj.Whitespace {
				res.CompletionType = CompletionAttributeName
			}
		}

		if res.HasCompletion() {
			return me.resolveTag(ctx, pos, res)
		}
	}

	before := strings.TrimSuffix(line, res.Prefix)

	partial, ok := recognize.EndingTag(line)
	if strings.HasSuffix(before, "</") {
		partial, ok = res.Prefix, true
	}
	if ok {
		res.CompletionType = CompletionTagEnd
		res.TagName = partial
		res.ShouldCompleteEndingTag = !recognize.ClosesTag(position.LineFrom(me.req.Buffer, pos))
		return false
	}

	if strings.HasSuffix(before, "<") {
		res.CompletionType = CompletionTagStart
		res.ShouldCompleteEndingTag = true
	}

	return false
}

// inspectScoped handles a caret inside a classified token. The first entry of
// the stack the table knows decides; a stack with only embedded script scopes
// is resolved against the attribute and tag that own the expression.
func (me *Inspector) inspectScoped(ctx context.Context, pos position.Position, line string, stack []string, res *Result) bool {
	info, ok := me.table.Classify(stack)
	if !ok {
		if me.table.HasScript(stack) {
			return me.inspectScript(ctx, pos, res)
		}
		return false
	}

	switch info.Kind {
	case scope.KindTag:
		res.CompletionType = CompletionTagStart
		res.ShouldCompleteEndingTag = true
		if name, ok := recognize.TagName(line); ok {
			res.TagName = name
		}
		return info.Concise
	case scope.KindAttributeName:
		res.CompletionType = CompletionAttributeName
		return me.resolveTag(ctx, pos, res)
	case scope.KindString:
		res.CompletionType = CompletionAttributeValue
		if position.CharAt(me.req.Buffer, pos) != "" {
			res.AttributeValueType = AttributeValueString
		}
		return me.resolveAttribute(ctx, pos, res)
	case scope.KindAttributeNameValueSeparator:
		if position.CharAt(me.req.Buffer, pos) == "=" {
			res.CompletionType = CompletionAttributeName
		} else {
			res.CompletionType = CompletionAttributeValue
		}
		return me.resolveAttribute(ctx, pos, res)
	}

	return false
}

func (me *Inspector) inspectScript(ctx context.Context, pos position.Position, res *Result) bool {
	m, ok := me.scanner.NearestTagAndAttribute(ctx, pos)
	if !ok {
		return false
	}

	res.TagName = recognize.DisplayTagName(m.Name)
	res.AttributeName = m.AttributeName
	if m.AttributeName != "" {
		res.CompletionType = CompletionAttributeValue
	} else {
		res.CompletionType = CompletionTagStart
	}

	return m.Concise
}

// resolveTag and resolveAttribute report the owning tag by its displayed
// name, shorthand suffixes dropped.
func (me *Inspector) resolveTag(ctx context.Context, pos position.Position, res *Result) bool {
	tag, ok := me.scanner.NearestTag(ctx, pos)
	if !ok {
		return false
	}
	res.TagName = recognize.DisplayTagName(tag.Name)
	return tag.Concise
}

func (me *Inspector) resolveAttribute(ctx context.Context, pos position.Position, res *Result) bool {
	m, ok := me.scanner.NearestTagAndAttribute(ctx, pos)
	if !ok {
		return false
	}
	res.TagName = recognize.DisplayTagName(m.Name)
	res.AttributeName = m.AttributeName
	return m.Concise
}
