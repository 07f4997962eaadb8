package relmkore

import (
	"errors"
	"fmt"
	"time"

	"github.com/bits-and-blooms/bitset"
)

// Runner runs tasks strictly sequentially: dependencies before dependents,
// steps in declared order, each task at most once per run. The first failing
// step aborts the whole run.
type Runner struct {
	// DryRun traces the steps that would run without running them.
	DryRun bool

	// Prefix marks each task's output lines with the task name.
	Prefix bool

	trace *Trace
	env   *Env
	rid   RunID
}

func NewRunner(tr *Trace, env *Env) (*Runner, error) {
	if tr == nil {
		return nil, errors.New("no trace for new runner")
	}
	return &Runner{trace: tr, env: env}, nil
}

func (r *Runner) Trace() *Trace { return r.trace }

// Pipeline runs all root tasks of p, i.e. the tasks no other task depends on.
func (r *Runner) Pipeline(p *Pipeline) error {
	return r.Tasks(p.Roots()...)
}

// Tasks runs tks in the given order. All tasks must belong to the same
// pipeline.
func (r *Runner) Tasks(tks ...*Task) error {
	if len(tks) == 0 {
		return nil
	}
	p := tks[0].Pipeline()
	for _, tk := range tks[1:] {
		if tk.Pipeline() != p {
			return fmt.Errorf("task '%s' not in pipeline '%s'",
				tk.String(),
				p.String(),
			)
		}
	}
	r.rid = p.LockRun()
	defer p.Unlock()
	if r.env == nil {
		r.env = DefaultEnv(r.trace)
	}
	tr := r.trace.pushPipeline(p)
	tr.startPipeline(p, "running")
	start := time.Now()
	defer func() { tr.donePipeline(p, "running", time.Since(start)) }()
	onStack := bitset.New(uint(len(p.order)))
	for _, tk := range tks {
		if err := r.runTask(tr, tk, onStack); err != nil {
			return err
		}
	}
	return nil
}

// NamedTasks runs the tasks of p with the given names in the given order.
func (r *Runner) NamedTasks(p *Pipeline, names ...string) error {
	var tks []*Task
	for _, n := range names {
		tk := p.FindTask(n)
		if tk == nil {
			return fmt.Errorf("no task named '%s' in pipeline '%s'", n, p.String())
		}
		tks = append(tks, tk)
	}
	return r.Tasks(tks...)
}

func (r *Runner) runTask(tr *Trace, tk *Task, onStack *bitset.BitSet) error {
	if tk.lastRID == r.rid {
		tr.skipTask(tk)
		return nil
	}
	if onStack.Test(tk.idx) {
		return fmt.Errorf("dependency cycle through task '%s'", tk.Name())
	}
	onStack.Set(tk.idx)
	defer onStack.Clear(tk.idx)
	for _, dep := range tk.deps {
		if err := r.runTask(tr, dep, onStack); err != nil {
			return err
		}
	}
	tk.lastRID = r.rid
	ttr := tr.pushTask(tk)
	ttr.startTask(tk)
	start := time.Now()
	env := r.env
	if r.Prefix || len(tk.envSet) > 0 || len(tk.envUnset) > 0 {
		env = env.Sub()
		env.SetTagsMap(tk.envSet)
		for _, u := range tk.envUnset {
			env.DelTag(u)
		}
		if r.Prefix {
			env.Out = NewPrefixWriterString(env.Out, tk.Name()+"| ")
			env.Err = NewPrefixWriterString(env.Err, tk.Name()+"| ")
		}
	}
	for _, op := range tk.steps {
		ttr.runStep(tk, op)
		if r.DryRun {
			continue
		}
		if err := op.Do(ttr, tk, env); err != nil {
			ttr.failTask(tk, err)
			return fmt.Errorf("task '%s': %w", tk.Name(), err)
		}
	}
	ttr.doneTask(tk, time.Since(start))
	return nil
}
