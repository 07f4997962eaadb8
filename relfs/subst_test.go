package relfs

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"git.fractalqb.de/fractalqb/testerr"
	"github.com/wikidot-tools/relmk/relmkore"
)

type testTracer struct{ t *testing.T }

func (tr testTracer) Debug(_ *relmkore.Trace, msg string, _ ...any) { tr.t.Log("DEBUG: " + msg) }
func (tr testTracer) Info(_ *relmkore.Trace, msg string, _ ...any)  { tr.t.Log("INFO: " + msg) }
func (tr testTracer) Warn(_ *relmkore.Trace, msg string, _ ...any)  { tr.t.Log("WARN: " + msg) }

func (tr testTracer) StartPipeline(_ *relmkore.Trace, p *relmkore.Pipeline, a string) {}
func (tr testTracer) DonePipeline(_ *relmkore.Trace, p *relmkore.Pipeline, a string, _ time.Duration) {
}
func (tr testTracer) StartTask(_ *relmkore.Trace, _ *relmkore.Task)                   {}
func (tr testTracer) DoneTask(_ *relmkore.Trace, _ *relmkore.Task, _ time.Duration)   {}
func (tr testTracer) FailTask(_ *relmkore.Trace, _ *relmkore.Task, _ error)           {}
func (tr testTracer) SkipTask(_ *relmkore.Trace, _ *relmkore.Task)                    {}
func (tr testTracer) RunStep(_ *relmkore.Trace, _ *relmkore.Task, _ relmkore.Operation) {
}

func newTrace(t *testing.T) *relmkore.Trace {
	return relmkore.NewTrace(context.Background(), testTracer{t})
}

const pyproject = `[project]
name = "wikidot"
version = "3.0.7"
description = "something"
`

func TestSubstLine_replacesMatchingLine(t *testing.T) {
	file := filepath.Join(t.TempDir(), "pyproject.toml")
	testerr.Shall(os.WriteFile(file, []byte(pyproject), 0644)).BeNil(t)
	op := SubstLine{
		File:    file,
		Pattern: regexp.MustCompile(`^version = ".*"$`),
		Text:    `version = "3.1.0"`,
	}
	testerr.Shall(op.Do(newTrace(t), nil, nil)).BeNil(t)
	data := testerr.Shall1(os.ReadFile(file)).BeNil(t)
	want := `[project]
name = "wikidot"
version = "3.1.0"
description = "something"
`
	if string(data) != want {
		t.Errorf("substituted file:\n%s", data)
	}
}

func TestSubstLine_noMatchKeepsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "pyproject.toml")
	testerr.Shall(os.WriteFile(file, []byte(pyproject), 0644)).BeNil(t)
	op := SubstLine{
		File:    file,
		Pattern: regexp.MustCompile(`^__version__ = ".*"$`),
		Text:    `__version__ = "3.1.0"`,
	}
	testerr.Shall(op.Do(newTrace(t), nil, nil)).BeNil(t)
	data := testerr.Shall1(os.ReadFile(file)).BeNil(t)
	if string(data) != pyproject {
		t.Errorf("file changed without match:\n%s", data)
	}
}

func TestSubstLine_keepsCRLF(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f.txt")
	testerr.Shall(os.WriteFile(file,
		[]byte("keep\r\nversion = \"1\"\r\nalso keep"),
		0644,
	)).BeNil(t)
	op := SubstLine{
		File:    file,
		Pattern: regexp.MustCompile(`^version = ".*"$`),
		Text:    `version = "2"`,
	}
	testerr.Shall(op.Do(newTrace(t), nil, nil)).BeNil(t)
	data := testerr.Shall1(os.ReadFile(file)).BeNil(t)
	if string(data) != "keep\r\nversion = \"2\"\r\nalso keep" {
		t.Errorf("substituted file: %q", data)
	}
}

func TestSubstLine_missingFile(t *testing.T) {
	op := SubstLine{
		File:    filepath.Join(t.TempDir(), "nope"),
		Pattern: regexp.MustCompile(`x`),
		Text:    "y",
	}
	if err := op.Do(newTrace(t), nil, nil); err == nil {
		t.Error("no error for missing file")
	}
}
