package relmkore

import (
	"context"
	"errors"
	"testing"
	"time"

	"git.fractalqb.de/fractalqb/testerr"
)

type testTracer struct{ t *testing.T }

func (tr testTracer) Debug(_ *Trace, msg string, _ ...any) { tr.t.Log("DEBUG: " + msg) }
func (tr testTracer) Info(_ *Trace, msg string, _ ...any)  { tr.t.Log("INFO: " + msg) }
func (tr testTracer) Warn(_ *Trace, msg string, _ ...any)  { tr.t.Log("WARN: " + msg) }

func (tr testTracer) StartPipeline(_ *Trace, p *Pipeline, activity string) {
	tr.t.Logf("StartPipeline: %s %s", p, activity)
}

func (tr testTracer) DonePipeline(_ *Trace, p *Pipeline, activity string, dt time.Duration) {
	tr.t.Logf("DonePipeline: %s %s %s", p, activity, dt)
}

func (tr testTracer) StartTask(_ *Trace, tk *Task) { tr.t.Logf("StartTask: %s", tk) }

func (tr testTracer) DoneTask(_ *Trace, tk *Task, dt time.Duration) {
	tr.t.Logf("DoneTask: %s %s", tk, dt)
}

func (tr testTracer) FailTask(_ *Trace, tk *Task, err error) {
	tr.t.Logf("FailTask: %s: %s", tk, err)
}

func (tr testTracer) SkipTask(_ *Trace, tk *Task) { tr.t.Logf("SkipTask: %s", tk) }

func (tr testTracer) RunStep(_ *Trace, tk *Task, op Operation) {
	tr.t.Logf("RunStep: %s: %s", tk, op.Describe(tk, nil))
}

type recOp struct {
	name string
	out  *[]string
	err  error
}

func (o recOp) Describe(*Task, *Env) string { return o.name }

func (o recOp) Do(*Trace, *Task, *Env) error {
	*o.out = append(*o.out, o.name)
	return o.err
}

func newTestRunner(t *testing.T) *Runner {
	tr := NewTrace(context.Background(), testTracer{t})
	return testerr.Shall1(NewRunner(tr, &Env{})).BeNil(t)
}

func TestRunner_stepOrder(t *testing.T) {
	var got []string
	p := NewPipeline(t.Name())
	tk := testerr.Shall1(p.Task("steps")).BeNil(t)
	tk.Step(recOp{name: "a", out: &got}).
		Step(recOp{name: "b", out: &got}).
		Step(recOp{name: "c", out: &got})
	r := newTestRunner(t)
	testerr.Shall(r.Tasks(tk)).BeNil(t)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("steps ran as %v", got)
	}
}

func TestRunner_failAborts(t *testing.T) {
	var got []string
	boom := errors.New("boom")
	p := NewPipeline(t.Name())
	tk := testerr.Shall1(p.Task("fails")).BeNil(t)
	tk.Step(recOp{name: "a", out: &got}).
		Step(recOp{name: "b", out: &got, err: boom}).
		Step(recOp{name: "c", out: &got})
	post := testerr.Shall1(p.Task("post")).BeNil(t)
	post.Step(recOp{name: "post", out: &got})
	testerr.Shall(post.DependOn(tk)).BeNil(t)

	r := newTestRunner(t)
	err := r.Tasks(post)
	if !errors.Is(err, boom) {
		t.Fatalf("unexpected run error: %v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("steps ran as %v", got)
	}
}

func TestRunner_depsRunFirstAndOnce(t *testing.T) {
	var got []string
	p := NewPipeline(t.Name())
	base := testerr.Shall1(p.Task("base")).BeNil(t)
	base.Step(recOp{name: "base", out: &got})
	left := testerr.Shall1(p.Task("left")).BeNil(t)
	left.Step(recOp{name: "left", out: &got})
	testerr.Shall(left.DependOn(base)).BeNil(t)
	right := testerr.Shall1(p.Task("right")).BeNil(t)
	right.Step(recOp{name: "right", out: &got})
	testerr.Shall(right.DependOn(base)).BeNil(t)
	top := testerr.Shall1(p.Task("top")).BeNil(t)
	top.Step(recOp{name: "top", out: &got})
	testerr.Shall(top.DependOn(left, right)).BeNil(t)

	r := newTestRunner(t)
	testerr.Shall(r.Tasks(top)).BeNil(t)
	want := []string{"base", "left", "right", "top"}
	if len(got) != len(want) {
		t.Fatalf("tasks ran as %v", got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("tasks ran as %v", got)
		}
	}
}

func TestRunner_detectsCycle(t *testing.T) {
	p := NewPipeline(t.Name())
	a := testerr.Shall1(p.Task("a")).BeNil(t)
	b := testerr.Shall1(p.Task("b")).BeNil(t)
	testerr.Shall(a.DependOn(b)).BeNil(t)
	testerr.Shall(b.DependOn(a)).BeNil(t)
	r := newTestRunner(t)
	if err := r.Tasks(a); err == nil {
		t.Error("no error for dependency cycle")
	}
}

func TestRunner_dryRun(t *testing.T) {
	var got []string
	p := NewPipeline(t.Name())
	tk := testerr.Shall1(p.Task("dry")).BeNil(t)
	tk.Step(recOp{name: "a", out: &got})
	r := newTestRunner(t)
	r.DryRun = true
	testerr.Shall(r.Tasks(tk)).BeNil(t)
	if len(got) != 0 {
		t.Errorf("dry run ran steps %v", got)
	}
}

func TestPipeline_redefineTask(t *testing.T) {
	p := NewPipeline(t.Name())
	testerr.Shall1(p.Task("build")).BeNil(t)
	testerr.Shall1(p.Task("build")).
		Check(t, testerr.Msg("redefining task 'build' in pipeline "+t.Name()))
}
