package board

import (
	"html"
	"io"
	"strings"
)

// Element is a node in the rendered tree: the tree-construction surface the
// reconciler targets. Text is always escaped on write, so raw user input can
// never be interpreted as markup.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// Attr is a single element attribute.
type Attr struct {
	Key   string
	Value string
}

// NewElement creates an element with the given tag.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// SetAttr sets an attribute, replacing any previous value for the key.
func (e *Element) SetAttr(key, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: value})
	return e
}

// Attr returns the value of the named attribute, or "".
func (e *Element) Attr(key string) string {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// SetText sets the element's text content.
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// Append adds children and returns the receiver.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Find walks the subtree and returns the first element whose attribute key
// equals value, or nil.
func (e *Element) Find(key, value string) *Element {
	if e.Attr(key) == value {
		return e
	}
	for _, c := range e.Children {
		if found := c.Find(key, value); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every element in the subtree carrying the attribute key,
// in document order.
func (e *Element) FindAll(key string) []*Element {
	var out []*Element
	if e.Attr(key) != "" {
		out = append(out, e)
	}
	for _, c := range e.Children {
		out = append(out, c.FindAll(key)...)
	}
	return out
}

var voidTags = map[string]bool{
	"br":    true,
	"hr":    true,
	"img":   true,
	"input": true,
}

// WriteHTML serializes the subtree. Attribute values and text content are
// HTML-escaped.
func (e *Element) WriteHTML(w io.Writer) error {
	var sb strings.Builder
	e.write(&sb)
	_, err := io.WriteString(w, sb.String())
	return err
}

// HTML returns the serialized subtree.
func (e *Element) HTML() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Element) write(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(e.Tag)
	for _, a := range e.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Value))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	if voidTags[e.Tag] {
		return
	}
	if e.Text != "" {
		sb.WriteString(html.EscapeString(e.Text))
	}
	for _, c := range e.Children {
		c.write(sb)
	}
	sb.WriteString("</")
	sb.WriteString(e.Tag)
	sb.WriteByte('>')
}
