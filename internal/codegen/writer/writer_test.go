package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_Indentation(t *testing.T) {
	w := NewWriter("\t")

	w.WriteBlock("func main() {", "}", func() {
		w.WriteLine("if ok {")
		w.Indent()
		w.WriteLine("return")
		w.Dedent()
		w.WriteLine("}")
	})

	assert.Equal(t, "func main() {\n\tif ok {\n\t\treturn\n\t}\n}\n", w.String())
	assert.Equal(t, 0, w.IndentLevel())
}

func TestWriter_DedentBelowZero(t *testing.T) {
	w := NewWriter("  ")
	w.Dedent()
	w.WriteLine("x")
	assert.Equal(t, "x\n", w.String())
}

func TestWriter_BlankLineCollapses(t *testing.T) {
	w := NewWriter("\t")

	w.BlankLine()
	w.WriteLine("a")
	w.BlankLine()
	w.BlankLine()
	w.WriteLine("b")

	assert.Equal(t, "a\n\nb\n", w.String())
}

func TestWriter_EmptyWriteDoesNotIndent(t *testing.T) {
	w := NewWriter("\t")
	w.Indent()
	w.Write("")
	w.Newline()
	assert.Equal(t, "\n", w.String())
}

func TestWriter_Comments(t *testing.T) {
	w := NewWriter("  ").WithCommentPrefix("#")
	w.WriteDocComment("first\n  second  ")
	w.WriteDocComment("")
	assert.Equal(t, "# first\n# second\n", w.String())
}

func TestWriter_BytesIsCopy(t *testing.T) {
	w := NewWriter("\t")
	w.Write("abc")
	b := w.Bytes()
	b[0] = 'x'
	assert.Equal(t, "abc", w.String())

	w.Reset()
	assert.Empty(t, w.String())
}
