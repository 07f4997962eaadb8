package vcs

import (
	"fmt"
	"os/exec"

	"github.com/wikidot-tools/relmk"
	"github.com/wikidot-tools/relmk/relmkore"
)

type GhTool struct {
	GhExe string
}

func (t *GhTool) ghExe() (string, error) {
	if t.GhExe != "" {
		return t.GhExe, nil
	}
	return exec.LookPath("gh")
}

// PRCreate opens a pull request from Head into Base.
type PRCreate struct {
	GhTool
	Base, Head  string
	Title, Body string
	Fill        bool
}

var _ relmkore.Operation = (*PRCreate)(nil)

func (pr *PRCreate) Describe(*relmk.Task, *relmk.Env) string { return "gh pr create" }

func (pr *PRCreate) args() []string {
	args := []string{"pr", "create"}
	if pr.Base != "" {
		args = append(args, "--base", pr.Base)
	}
	if pr.Head != "" {
		args = append(args, "--head", pr.Head)
	}
	if pr.Fill {
		args = append(args, "--fill")
	}
	if pr.Title != "" {
		args = append(args, "--title", pr.Title)
	}
	if pr.Body != "" {
		args = append(args, "--body", pr.Body)
	}
	return args
}

func (pr *PRCreate) Do(tr *relmk.Trace, tk *relmk.Task, env *relmk.Env) error {
	exe, err := pr.ghExe()
	if err != nil {
		return err
	}
	op := &relmk.CmdOp{Exe: exe, Args: pr.args(), Desc: pr.Describe(tk, env)}
	return op.Do(tr, tk, env)
}

// AutoMerge enables auto-merge on the pull request of Branch, i.e. the
// hosting service merges once all checks pass. Method is one of merge,
// squash or rebase, defaulting to merge.
type AutoMerge struct {
	GhTool
	Branch string
	Method string
}

var _ relmkore.Operation = (*AutoMerge)(nil)

func (m *AutoMerge) Describe(*relmk.Task, *relmk.Env) string { return "gh pr merge --auto" }

func (m *AutoMerge) args() ([]string, error) {
	args := []string{"pr", "merge", "--auto"}
	switch m.Method {
	case "", "merge":
		args = append(args, "--merge")
	case "squash":
		args = append(args, "--squash")
	case "rebase":
		args = append(args, "--rebase")
	default:
		return nil, fmt.Errorf("illegal merge method '%s'", m.Method)
	}
	if m.Branch != "" {
		args = append(args, m.Branch)
	}
	return args, nil
}

func (m *AutoMerge) Do(tr *relmk.Trace, tk *relmk.Task, env *relmk.Env) error {
	exe, err := m.ghExe()
	if err != nil {
		return err
	}
	args, err := m.args()
	if err != nil {
		return err
	}
	op := &relmk.CmdOp{Exe: exe, Args: args, Desc: m.Describe(tk, env)}
	return op.Do(tr, tk, env)
}

// Release creates a tagged release on the hosting service.
type Release struct {
	GhTool
	Tag           string
	Title         string
	Target        string
	NotesFile     string
	GenerateNotes bool
}

var _ relmkore.Operation = (*Release)(nil)

func (r *Release) Describe(*relmk.Task, *relmk.Env) string { return "gh release create" }

func (r *Release) args() []string {
	args := []string{"release", "create", r.Tag}
	if r.Title != "" {
		args = append(args, "--title", r.Title)
	}
	if r.Target != "" {
		args = append(args, "--target", r.Target)
	}
	if r.NotesFile != "" {
		args = append(args, "--notes-file", r.NotesFile)
	}
	if r.GenerateNotes {
		args = append(args, "--generate-notes")
	}
	return args
}

func (r *Release) Do(tr *relmk.Trace, tk *relmk.Task, env *relmk.Env) error {
	if r.Tag == "" {
		return fmt.Errorf("release without tag")
	}
	exe, err := r.ghExe()
	if err != nil {
		return err
	}
	op := &relmk.CmdOp{Exe: exe, Args: r.args(), Desc: r.Describe(tk, env)}
	return op.Do(tr, tk, env)
}
