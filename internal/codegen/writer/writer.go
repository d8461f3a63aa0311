// Package writer provides an indentation-aware buffer for emitting source text.
package writer

import (
	"bytes"
	"fmt"
	"strings"
)

// Writer accumulates generated code with proper indentation
type Writer struct {
	buf           bytes.Buffer
	indentLevel   int
	indentString  string
	commentPrefix string
	linePrefix    string
	needsIndent   bool
}

// NewWriter creates a code writer with the given indentation string and "//" comments
func NewWriter(indentString string) *Writer {
	return &Writer{
		indentString:  indentString,
		commentPrefix: "//",
		needsIndent:   true,
	}
}

// WithCommentPrefix sets the line comment marker used by the comment helpers
func (w *Writer) WithCommentPrefix(prefix string) *Writer {
	w.commentPrefix = prefix
	return w
}

// Indent increases the indentation level
func (w *Writer) Indent() {
	w.indentLevel++
	w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
}

// Dedent decreases the indentation level
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
		w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
	}
}

// IndentLevel returns the current indentation level
func (w *Writer) IndentLevel() int {
	return w.indentLevel
}

// Write writes s without a trailing newline, indenting at the start of a line
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.buf.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.buf.WriteString(s)
}

// Writef writes a formatted string without a trailing newline
func (w *Writer) Writef(format string, args ...interface{}) {
	w.Write(fmt.Sprintf(format, args...))
}

// WriteLine writes s followed by a newline
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

// WriteLinef writes a formatted string followed by a newline
func (w *Writer) WriteLinef(format string, args ...interface{}) {
	w.Writef(format, args...)
	w.Newline()
}

// Newline ends the current line
func (w *Writer) Newline() {
	w.buf.WriteByte('\n')
	w.needsIndent = true
}

// BlankLine emits an empty line unless the buffer is empty or already ends in one
func (w *Writer) BlankLine() {
	if w.buf.Len() > 0 && !bytes.HasSuffix(w.buf.Bytes(), []byte("\n\n")) {
		w.Newline()
	}
}

// WriteBlock writes opener, the indented content and closer
func (w *Writer) WriteBlock(opener, closer string, content func()) {
	w.WriteLine(opener)
	w.Indent()
	content()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteComment writes a single-line comment
func (w *Writer) WriteComment(comment string) {
	w.WriteLinef("%s %s", w.commentPrefix, comment)
}

// WriteDocComment writes doc as one comment line per line of text; empty docs write nothing
func (w *Writer) WriteDocComment(doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSpace(doc), "\n") {
		w.WriteComment(strings.TrimSpace(line))
	}
}

// String returns the generated code
func (w *Writer) String() string {
	return w.buf.String()
}

// Bytes returns a copy of the generated code
func (w *Writer) Bytes() []byte {
	return bytes.Clone(w.buf.Bytes())
}

// Reset clears content and indentation
func (w *Writer) Reset() {
	w.buf.Reset()
	w.indentLevel = 0
	w.linePrefix = ""
	w.needsIndent = true
}
