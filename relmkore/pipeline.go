package relmkore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

type RunID = uint64

// A Pipeline is a set of named tasks rooted in a working directory. Tasks are
// kept in definition order, which also is the order used when running the
// whole pipeline.
type Pipeline struct {
	Dir string

	sync.Mutex

	tasks   map[string]*Task
	order   []*Task
	lastRun RunID
}

func NewPipeline(dir string) *Pipeline {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return &Pipeline{
		Dir:   dir,
		tasks: make(map[string]*Task),
	}
}

// Task defines a new task with unique name in pipeline p. Redefining a name
// is an error.
func (p *Pipeline) Task(name string) (*Task, error) {
	if name == "" {
		return nil, fmt.Errorf("task without name in pipeline %s", p.String())
	}
	if _, ok := p.tasks[name]; ok {
		return nil, fmt.Errorf("redefining task '%s' in pipeline %s", name, p.String())
	}
	tk := &Task{
		name: name,
		prl:  p,
		idx:  uint(len(p.order)),
	}
	p.tasks[name] = tk
	p.order = append(p.order, tk)
	return tk, nil
}

func (p *Pipeline) FindTask(name string) *Task { return p.tasks[name] }

// Tasks appends all tasks of p in definition order to addTo.
func (p *Pipeline) Tasks(addTo []*Task) []*Task {
	if len(p.order) == 0 {
		return addTo
	}
	addTo = slices.Grow(addTo, len(p.order))
	return append(addTo, p.order...)
}

// Roots returns the tasks no other task depends on, in definition order.
func (p *Pipeline) Roots() (rs []*Task) {
	dep := make(map[*Task]bool)
	for _, tk := range p.order {
		for _, d := range tk.deps {
			dep[d] = true
		}
	}
	for _, tk := range p.order {
		if !dep[tk] {
			rs = append(rs, tk)
		}
	}
	return rs
}

func (p *Pipeline) Name() string {
	tmp := p.Dir
	if tmp == "" || tmp == "." {
		tmp, _ = filepath.Abs(tmp)
	}
	return filepath.Base(tmp)
}

func (p *Pipeline) String() string { return p.Name() }

// AbsPath resolves path against the pipeline directory. An already absolute
// path is cleaned only.
func (p *Pipeline) AbsPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.Dir, path)
}

func (p *Pipeline) RelPath(path string) string {
	if !filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	rel, err := filepath.Rel(p.Dir, path)
	if err != nil {
		return filepath.Clean(path)
	}
	return rel
}

// LockRun locks p for a new run and returns the new run ID.
func (p *Pipeline) LockRun() RunID {
	p.Lock()
	p.lastRun++
	return p.lastRun
}

func (p *Pipeline) Run() RunID { return p.lastRun }

// WriteDeps writes one line per task with the names of its dependencies.
func (p *Pipeline) WriteDeps(w io.Writer) {
	for _, tk := range p.order {
		fmt.Fprintf(w, "%s:", tk.Name())
		for _, d := range tk.deps {
			fmt.Fprintf(w, " %s", d.Name())
		}
		fmt.Fprintln(w)
	}
}
