// Package vcs provides git and GitHub CLI operations for relmk pipelines.
// The operations shell out to the ambient git and gh executables; relmk does
// not reimplement either.
package vcs

import (
	"fmt"
	"os/exec"

	"github.com/wikidot-tools/relmk"
	"github.com/wikidot-tools/relmk/relmkore"
)

type GitTool struct {
	GitExe string
}

func (t *GitTool) gitExe() (string, error) {
	if t.GitExe != "" {
		return t.GitExe, nil
	}
	return exec.LookPath("git")
}

// Add stages the given paths. Without paths it stages everything below the
// task's working directory.
type Add struct {
	GitTool
	Paths []string
}

var _ relmkore.Operation = (*Add)(nil)

func (a *Add) Describe(*relmk.Task, *relmk.Env) string { return "git add" }

func (a *Add) args() []string {
	args := []string{"add", "--"}
	if len(a.Paths) == 0 {
		return append(args, ".")
	}
	return append(args, a.Paths...)
}

func (a *Add) Do(tr *relmk.Trace, tk *relmk.Task, env *relmk.Env) error {
	exe, err := a.gitExe()
	if err != nil {
		return err
	}
	op := &relmk.CmdOp{Exe: exe, Args: a.args(), Desc: a.Describe(tk, env)}
	return op.Do(tr, tk, env)
}

// Commit commits staged changes. With All set it also stages modified and
// deleted files, like git commit -a.
type Commit struct {
	GitTool
	Message string
	All     bool
}

var _ relmkore.Operation = (*Commit)(nil)

func (c *Commit) Describe(*relmk.Task, *relmk.Env) string { return "git commit" }

func (c *Commit) args() []string {
	args := []string{"commit"}
	if c.All {
		args = append(args, "-a")
	}
	return append(args, "-m", c.Message)
}

func (c *Commit) Do(tr *relmk.Trace, tk *relmk.Task, env *relmk.Env) error {
	if c.Message == "" {
		return fmt.Errorf("git commit without message")
	}
	exe, err := c.gitExe()
	if err != nil {
		return err
	}
	op := &relmk.CmdOp{Exe: exe, Args: c.args(), Desc: c.Describe(tk, env)}
	return op.Do(tr, tk, env)
}

// Push pushes the current branch. Remote and Branch are optional and default
// to git's own upstream configuration.
type Push struct {
	GitTool
	Remote, Branch string
	SetUpstream    bool
}

var _ relmkore.Operation = (*Push)(nil)

func (p *Push) Describe(*relmk.Task, *relmk.Env) string { return "git push" }

func (p *Push) args() []string {
	args := []string{"push"}
	if p.SetUpstream {
		args = append(args, "-u")
	}
	if p.Remote != "" {
		args = append(args, p.Remote)
		if p.Branch != "" {
			args = append(args, p.Branch)
		}
	}
	return args
}

func (p *Push) Do(tr *relmk.Trace, tk *relmk.Task, env *relmk.Env) error {
	exe, err := p.gitExe()
	if err != nil {
		return err
	}
	op := &relmk.CmdOp{Exe: exe, Args: p.args(), Desc: p.Describe(tk, env)}
	return op.Do(tr, tk, env)
}
