package relmkore

import (
	"fmt"
	"path/filepath"
)

// A Task is a named, linear sequence of steps in its [Pipeline]. A task can
// depend on other tasks of the same pipeline. Dependencies run before the
// task's own steps, in declared order. Within one run each task runs at most
// once.
type Task struct {
	name string
	prl  *Pipeline
	idx  uint

	steps    []Operation
	deps     []*Task
	wdir     string
	envSet   map[string]string
	envUnset []string

	lastRID RunID
}

func (tk *Task) Name() string { return tk.name }

func (tk *Task) Pipeline() *Pipeline { return tk.prl }

func (tk *Task) String() string {
	return fmt.Sprintf("%s:%s", tk.prl.Name(), tk.name)
}

func (tk *Task) Steps() []Operation { return tk.steps }

// Step appends op to the task's step sequence.
func (tk *Task) Step(op Operation) *Task {
	tk.steps = append(tk.steps, op)
	return tk
}

func (tk *Task) DependsOn() []*Task { return tk.deps }

// DependOn makes tk depend on deps. All deps must belong to the same pipeline
// as tk. Duplicates are dropped.
func (tk *Task) DependOn(deps ...*Task) error {
NEXT_DEP:
	for _, d := range deps {
		if d.prl != tk.prl {
			return fmt.Errorf("dependency '%s' not in pipeline '%s'",
				d.String(),
				tk.prl.String(),
			)
		}
		for _, have := range tk.deps {
			if have == d {
				continue NEXT_DEP
			}
		}
		tk.deps = append(tk.deps, d)
	}
	return nil
}

// WorkDir sets the task's working directory relative to the pipeline
// directory.
func (tk *Task) WorkDir(path ...string) *Task {
	tk.wdir = filepath.Join(path...)
	return tk
}

// ChangeEnv records environment changes for the task's steps.
func (tk *Task) ChangeEnv(set map[string]string, unset ...string) *Task {
	if tk.envSet == nil && len(set) > 0 {
		tk.envSet = make(map[string]string)
	}
	for k, v := range set {
		tk.envSet[k] = v
	}
NEXT_UNSET:
	for _, u := range unset {
		for _, have := range tk.envUnset {
			if have == u {
				continue NEXT_UNSET
			}
		}
		tk.envUnset = append(tk.envUnset, u)
	}
	return tk
}

// Dir returns the task's absolute working directory.
func (tk *Task) Dir() string {
	if tk.wdir == "" {
		return tk.prl.Dir
	}
	return filepath.Join(tk.prl.Dir, tk.wdir)
}

// AbsPath resolves path against the task's working directory.
func (tk *Task) AbsPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(tk.Dir(), path)
}

// An Operation implements one step of a [Task].
type Operation interface {
	// The hints are optional.
	Describe(taskHint *Task, envHint *Env) string

	Do(tr *Trace, tk *Task, env *Env) error
}
