package completion

// CompletionType is the kind of token the cursor is positioned to complete.
// The zero value means there is nothing to complete.
type CompletionType string

const (
	CompletionNone           CompletionType = ""
	CompletionTagStart       CompletionType = "tag-start"
	CompletionTagEnd         CompletionType = "tag-end"
	CompletionAttributeName  CompletionType = "attribute-name"
	CompletionAttributeValue CompletionType = "attribute-value"
)

// Syntax is the template syntax the resolved tag is written in.
type Syntax string

const (
	SyntaxHTML    Syntax = "html"
	SyntaxConcise Syntax = "concise"
)

// AttributeValueString is the AttributeValueType of a quoted value.
const AttributeValueString = "string"

// Result is what an inspection found at the cursor. When CompletionType is
// CompletionNone only Prefix and Syntax carry meaning.
type Result struct {
	CompletionType CompletionType `json:"completionType,omitempty"`

	// TagName is the name being typed for TAG_START and TAG_END. For
	// attribute contexts it is the owning tag's displayed name.
	TagName       string `json:"tagName,omitempty"`
	AttributeName string `json:"attributeName,omitempty"`

	// Prefix is the text left of the cursor a completion replaces.
	Prefix string `json:"prefix"`
	Syntax Syntax `json:"syntax"`

	ShouldCompleteEndingTag bool `json:"shouldCompleteEndingTag,omitempty"`

	// HasShorthand is set when the typed tag name carries `.class` or `#id`
	// suffixes; ShorthandTagName is the name without them.
	HasShorthand     bool   `json:"hasShorthand,omitempty"`
	ShorthandTagName string `json:"shorthandTagName,omitempty"`

	AttributeValueType string `json:"attributeValueType,omitempty"`
}

func (r *Result) HasCompletion() bool {
	return r.CompletionType != CompletionNone
}
