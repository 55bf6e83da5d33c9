// Package command encodes workflow commands as single lines of text. See
// doc.go for the format specification.
package command

import (
	"strings"
)

// Property is one named value of a command. Emission order on the wire
// follows slice order, so commands carry properties as a slice, not a map.
type Property struct {
	Key   string
	Value string
}

// Properties is the ordered property list of a command.
type Properties []Property

// Command represents a single instruction to the runner. Commands are
// transient: constructed, formatted with String, and discarded.
type Command struct {
	Name       string
	Properties Properties
	Message    string
}

// New creates a Command. Name and property keys must be simple tokens
// ([a-zA-Z-]+); this package's callers only ever pass literals, so New does
// not validate them.
func New(name, message string, props ...Property) Command {
	return Command{
		Name:       name,
		Properties: props,
		Message:    message,
	}
}

// String formats the command as one line in the format described in doc.go.
// The result never contains a raw carriage return or line feed and has no
// trailing newline. Formatting cannot fail.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(c.Name)
	for i, p := range c.Properties {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(EscapeProperty(p.Value))
	}
	b.WriteString("::")
	b.WriteString(EscapeData(c.Message))
	return b.String()
}

// EscapeData escapes a message body. The % substitution runs first so the
// escape sequences added afterwards are not themselves re-escaped.
func EscapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// EscapeProperty escapes a property value. On top of the message escapes it
// escapes `:` (separates the header from the message) and `,` (separates
// properties).
func EscapeProperty(s string) string {
	s = EscapeData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}

// UnescapeData reverses EscapeData. The %25 substitution runs last,
// mirroring EscapeData running it first.
func UnescapeData(s string) string {
	s = strings.ReplaceAll(s, "%0A", "\n")
	s = strings.ReplaceAll(s, "%0D", "\r")
	s = strings.ReplaceAll(s, "%25", "%")
	return s
}

// UnescapeProperty reverses EscapeProperty.
func UnescapeProperty(s string) string {
	s = strings.ReplaceAll(s, "%2C", ",")
	s = strings.ReplaceAll(s, "%3A", ":")
	return UnescapeData(s)
}
