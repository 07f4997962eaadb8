package relmk

import (
	"errors"
	"fmt"

	"github.com/wikidot-tools/relmk/relmkore"
)

type (
	Env       = relmkore.Env
	Pipeline  = relmkore.Pipeline
	Task      = relmkore.Task
	Trace     = relmkore.Trace
	Operation = relmkore.Operation
)

func NewPipeline(dir string) *Pipeline { return relmkore.NewPipeline(dir) }

// Edit calls do with wrappers of [relmkore] types that allow easy editing of
// pipeline definitions. Edit recovers from any panic and returns it as an
// error, so the idiomatic error handling within do can be skipped.
func Edit(p *Pipeline, do func(PipelineEd)) (err error) {
	p.Lock()
	defer func() {
		p.Unlock()
		if pc := recover(); pc != nil {
			switch pc := pc.(type) {
			case error:
				err = pc
			case string:
				err = errors.New(pc)
			default:
				err = fmt.Errorf("panic: %+v", pc)
			}
		}
	}()
	do(PipelineEd{p})
	return
}

// OpFunc wraps a plain function as an [relmkore.Operation].
func OpFunc(desc string, f func(*Trace, *Task, *Env) error) relmkore.Operation {
	return funcOp{desc: desc, f: f}
}

type funcOp struct {
	desc string
	f    func(*Trace, *Task, *Env) error
}

func (fo funcOp) Describe(*Task, *Env) string { return fo.desc }

func (fo funcOp) Do(tr *Trace, tk *Task, env *Env) error {
	tr.Debug("call `function`", `function`, fo.desc)
	return fo.f(tr, tk, env)
}

func mustEd(err error) {
	if err != nil {
		panic(err)
	}
}

func mustRet[T any](v T, err error) T {
	mustEd(err)
	return v
}
