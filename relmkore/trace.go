package relmkore

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Tracer receives the events of a pipeline run. Implementations decide how to
// report them, see the relmk package for a writer and a testing tracer.
type Tracer interface {
	Debug(t *Trace, msg string, args ...any)
	Info(t *Trace, msg string, args ...any)
	Warn(t *Trace, msg string, args ...any)

	StartPipeline(t *Trace, p *Pipeline, activity string)
	DonePipeline(t *Trace, p *Pipeline, activity string, dt time.Duration)

	StartTask(t *Trace, tk *Task)
	DoneTask(t *Trace, tk *Task, dt time.Duration)
	FailTask(t *Trace, tk *Task, err error)

	// SkipTask reports a task that already ran in the current run.
	SkipTask(t *Trace, tk *Task)

	RunStep(t *Trace, tk *Task, op Operation)
}

type TraceLevel int

var DefaultTraceLevel TraceLevel = TraceWarn

const (
	TraceWarn TraceLevel = (1 << iota)
	TraceInfo
	TraceDebug
)

type Trace struct {
	root *traceRoot
	up   *Trace
	obj  any
	id   uint64
}

func NewTrace(ctx context.Context, t Tracer) *Trace {
	root := &traceRoot{ctx: ctx, tr: t}
	return &Trace{root: root}
}

func (t *Trace) Ctx() context.Context { return t.root.ctx }

func (t *Trace) Debug(msg string, args ...any) { t.root.tr.Debug(t, msg, args...) }
func (t *Trace) Info(msg string, args ...any)  { t.root.tr.Info(t, msg, args...) }
func (t *Trace) Warn(msg string, args ...any)  { t.root.tr.Warn(t, msg, args...) }

func (t *Trace) startPipeline(p *Pipeline, activity string) {
	t.root.prl = p
	t.root.tr.StartPipeline(t, p, activity)
}

func (t *Trace) donePipeline(p *Pipeline, activity string, dt time.Duration) {
	t.root.tr.DonePipeline(t, p, activity, dt)
	t.root.prl = nil
}

func (t *Trace) startTask(tk *Task) { t.root.tr.StartTask(t, tk) }

func (t *Trace) doneTask(tk *Task, dt time.Duration) { t.root.tr.DoneTask(t, tk, dt) }

func (t *Trace) failTask(tk *Task, err error) { t.root.tr.FailTask(t, tk, err) }

func (t *Trace) skipTask(tk *Task) { t.root.tr.SkipTask(t, tk) }

func (t *Trace) runStep(tk *Task, op Operation) { t.root.tr.RunStep(t, tk, op) }

// Run returns the run ID of the pipeline currently being run.
func (t *Trace) Run() RunID {
	if t.root == nil || t.root.prl == nil {
		return 0
	}
	return t.root.prl.Run()
}

func (t *Trace) TopID() uint64 { return t.id }

func (t *Trace) TopTag() string {
	switch t.obj.(type) {
	case *Task:
		return fmt.Sprintf("[%d]", t.id)
	case *Pipeline:
		return fmt.Sprintf("{%d}", t.id)
	case nil:
		return ""
	}
	return fmt.Sprintf("!%T!", t.obj)
}

func (t *Trace) Path() string {
	var sb strings.Builder
	sb.WriteByte('<')
	for ; t != nil; t = t.up {
		sb.WriteString(t.TopTag())
	}
	sb.WriteByte('>')
	return sb.String()
}

func (t *Trace) String() string {
	if t.root.prl == nil {
		return t.Path()
	}
	return fmt.Sprintf("%d@%s", t.root.prl.Run(), t.Path())
}

func (t *Trace) pushPipeline(p *Pipeline) *Trace {
	return &Trace{
		root: t.root,
		up:   t,
		obj:  p,
		id:   t.root.idSeq.Add(1),
	}
}

func (t *Trace) pushTask(tk *Task) *Trace {
	return &Trace{
		root: t.root,
		up:   t,
		obj:  tk,
		id:   t.root.idSeq.Add(1),
	}
}

type traceRoot struct {
	ctx   context.Context
	tr    Tracer
	prl   *Pipeline
	idSeq atomic.Uint64
}
