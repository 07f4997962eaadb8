package relmk

import (
	"github.com/wikidot-tools/relmk/relmkore"
)

// PipelineEd is used with [Edit].
type PipelineEd struct{ p *Pipeline }

func (ed PipelineEd) Pipeline() *Pipeline { return ed.p }

func (ed PipelineEd) Dir() string { return ed.p.Dir }

// Task defines a new task, panicking when the name is already taken.
func (ed PipelineEd) Task(name string) TaskEd {
	return TaskEd{mustRet(ed.p.Task(name))}
}

// FindTask panics when no task with the given name exists.
func (ed PipelineEd) FindTask(name string) TaskEd {
	tk := ed.p.FindTask(name)
	if tk == nil {
		panic("no task named '" + name + "' in pipeline '" + ed.p.String() + "'")
	}
	return TaskEd{tk}
}

// TaskEd is used with [Edit].
type TaskEd struct{ tk *Task }

func (ed TaskEd) Task() *Task { return ed.tk }

func (ed TaskEd) Pipeline() PipelineEd { return PipelineEd{ed.tk.Pipeline()} }

func (ed TaskEd) Step(ops ...relmkore.Operation) TaskEd {
	for _, op := range ops {
		ed.tk.Step(op)
	}
	return ed
}

func (ed TaskEd) DependOn(deps ...TaskEd) TaskEd {
	tks := make([]*Task, len(deps))
	for i, d := range deps {
		tks[i] = d.tk
	}
	mustEd(ed.tk.DependOn(tks...))
	return ed
}

func (ed TaskEd) WorkDir(path ...string) TaskEd {
	ed.tk.WorkDir(path...)
	return ed
}

func (ed TaskEd) ChangeEnv(set map[string]string, unset ...string) TaskEd {
	ed.tk.ChangeEnv(set, unset...)
	return ed
}
