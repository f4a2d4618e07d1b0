package envfile

import (
	"bytes"
	"errors"
	"strings"
)

// ErrKeyNotFound is returned by keyed lookups when no variable matches.
var ErrKeyNotFound = errors.New("envseal: key not found")

// Entry is one parsed unit of the configuration text: a Comment or a Variable.
type Entry interface {
	isEntry()
}

// Comment is a single `#` line. Text is stored without the marker and
// without one following space.
type Comment struct {
	Text string
}

func (Comment) isEntry() {}

// Variable is one key=value assignment. Leading holds the comment lines
// immediately above it with no blank line in between. Quote remembers the
// single surrounding quote layer stripped during parsing ('\'' or '"'),
// or 0 when the value was unquoted, so serialization can restore it.
type Variable struct {
	Key     string
	Value   string
	Quote   byte
	Leading []Comment
}

func (Variable) isEntry() {}

// Entries is an ordered sequence of entries. Order is the canonical on-disk
// order and is preserved on round trips. Keys need not be unique; keyed
// lookups return the first occurrence.
type Entries []Entry

// Lookup returns the first variable with the given key.
func (e Entries) Lookup(key string) (Variable, error) {
	for _, entry := range e {
		if v, ok := entry.(Variable); ok && v.Key == key {
			return v, nil
		}
	}
	return Variable{}, ErrKeyNotFound
}

// Variables returns the variable entries in order, comments excluded.
func (e Entries) Variables() []Variable {
	var vars []Variable
	for _, entry := range e {
		if v, ok := entry.(Variable); ok {
			vars = append(vars, v)
		}
	}
	return vars
}

// Parse decodes plaintext configuration text into entries.
//
// Classification per trimmed line:
//   - blank: discards any pending comment buffer (orphan comments attach
//     to nothing and are dropped)
//   - starts with '#': marker and one following space stripped, appended to
//     the pending buffer for the next variable
//   - otherwise: split on the first '=' only; a line with no '=' or an
//     empty key is silently skipped, leaving the pending buffer untouched
//
// A non-empty pending buffer at end of input is discarded. Blank lines are
// structural separators, not entries, and are never reproduced by Serialize.
func Parse(plaintext []byte) Entries {
	var entries Entries
	var pending []Comment

	for _, rawLine := range strings.Split(string(plaintext), "\n") {
		line := strings.TrimSpace(rawLine)

		if line == "" {
			pending = nil
			continue
		}

		if strings.HasPrefix(line, "#") {
			text := strings.TrimPrefix(line, "#")
			text = strings.TrimPrefix(text, " ")
			pending = append(pending, Comment{Text: text})
			continue
		}

		key, rawValue, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			// Tolerant parser: malformed lines are skipped, not errors.
			continue
		}

		value, quote := unquote(strings.TrimSpace(rawValue))
		entries = append(entries, Variable{
			Key:     key,
			Value:   value,
			Quote:   quote,
			Leading: pending,
		})
		pending = nil
	}

	return entries
}

// unquote strips exactly one layer of matching surrounding quotes and
// reports which quote character was removed (0 for none).
func unquote(value string) (string, byte) {
	if len(value) < 2 {
		return value, 0
	}
	first, last := value[0], value[len(value)-1]
	if first != last {
		return value, 0
	}
	if first == '"' || first == '\'' {
		return value[1 : len(value)-1], first
	}
	return value, 0
}

// Serialize renders entries back to the canonical on-disk text form: each
// variable's leading comments as `# text` lines followed by key=value with
// the remembered quote layer restored, and bare comments as their own line.
// For any input produced by Parse, Parse(Serialize(x)) equals x.
func Serialize(entries Entries) []byte {
	var buf bytes.Buffer

	for _, entry := range entries {
		switch e := entry.(type) {
		case Comment:
			writeComment(&buf, e)
		case Variable:
			for _, c := range e.Leading {
				writeComment(&buf, c)
			}
			buf.WriteString(e.Key)
			buf.WriteByte('=')
			if e.Quote != 0 {
				buf.WriteByte(e.Quote)
				buf.WriteString(e.Value)
				buf.WriteByte(e.Quote)
			} else {
				buf.WriteString(e.Value)
			}
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes()
}

func writeComment(buf *bytes.Buffer, c Comment) {
	buf.WriteString("# ")
	buf.WriteString(c.Text)
	buf.WriteByte('\n')
}
