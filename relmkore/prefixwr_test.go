package relmkore

import (
	"bytes"
	"io"
	"os"
	"testing"
)

func ExamplePrefixWriter() {
	pw := NewPrefixWriterString(os.Stdout, "PRE:")
	io.WriteString(pw, "foo")
	io.WriteString(pw, "bar\n")
	io.WriteString(pw, "baz\nquux")
	// Output:
	// PRE:foobar
	// PRE:baz
	// PRE:quux
}

func TestPrefixWriter_emptyWrite(t *testing.T) {
	var buf bytes.Buffer
	pw := NewPrefixWriterString(&buf, "P:")
	n, err := pw.Write(nil)
	if n != 0 || err != nil {
		t.Errorf("empty write: %d %v", n, err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty write produced '%s'", buf.String())
	}
}
