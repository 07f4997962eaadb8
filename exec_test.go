package relmk

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/wikidot-tools/relmk/relmkore"
)

func TestPipe(t *testing.T) {
	pipe := PipeOp{
		CmdOp{Exe: "tr", Args: []string{"0123456789", "9876543210"}},
		CmdOp{Exe: "sort"},
	}
	var out strings.Builder
	env := relmkore.Env{
		In:  strings.NewReader("1234\n4711\n"),
		Out: &out,
		Err: os.Stderr,
	}
	tr := relmkore.NewTrace(context.Background(), TestTracer{t})
	err := pipe.Do(tr, nil, &env)
	if err != nil {
		t.Error(err)
	}
	if s := out.String(); s != "5288\n8765\n" {
		t.Errorf("bad output '%s'", s)
	}
}

func TestCmdOp_outFile(t *testing.T) {
	dir := t.TempDir()
	op := CmdOp{
		CWD:     dir,
		Exe:     "sh",
		Args:    []string{"-c", "echo hello"},
		OutFile: dir + "/out.txt",
	}
	env := relmkore.Env{Out: os.Stdout, Err: os.Stderr}
	tr := relmkore.NewTrace(context.Background(), TestTracer{t})
	if err := op.Do(tr, nil, &env); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dir + "/out.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello\n" {
		t.Errorf("bad output '%s'", data)
	}
}
