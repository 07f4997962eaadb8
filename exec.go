package relmk

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/wikidot-tools/relmk/relmkore"
)

// CmdOp runs one external command. An empty CWD runs the command in the
// task's working directory, a relative CWD is resolved against it.
type CmdOp struct {
	CWD             string
	Exe             string
	Args            []string
	InFile, OutFile string
	Desc            string
}

var _ relmkore.Operation = (*CmdOp)(nil)

func (op *CmdOp) Describe(*Task, *Env) string {
	if op.Desc == "" {
		op.Desc = fmt.Sprintf("%s%v", filepath.Base(op.Exe), op.Args)
	}
	return op.Desc
}

func (op *CmdOp) Do(tr *Trace, tk *Task, env *Env) error {
	xenv, err := env.ExecEnv()
	if err != nil {
		tr.Warn(err.Error(), `op`, op.Describe(tk, env))
	}
	cmd := exec.CommandContext(tr.Ctx(), op.Exe, op.Args...)
	cmd.Dir = op.dir(tk)
	cmd.Env = xenv
	if op.InFile != "" {
		r, err := os.Open(opPath(tk, op.InFile))
		if err != nil {
			return err
		}
		defer r.Close()
		cmd.Stdin = r
	} else {
		cmd.Stdin = env.In
	}
	if op.OutFile != "" {
		w, err := os.Create(opPath(tk, op.OutFile))
		if err != nil {
			return err
		}
		defer w.Close()
		cmd.Stdout = w
	} else {
		cmd.Stdout = env.Out
	}
	cmd.Stderr = env.Err
	tr.Debug("exec `cmd` in `dir`", `cmd`, cmd.String(), `dir`, cmd.Dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", op.Describe(tk, env), err)
	}
	return nil
}

func (op *CmdOp) dir(tk *Task) string {
	switch {
	case filepath.IsAbs(op.CWD):
		return op.CWD
	case tk == nil:
		return op.CWD
	case op.CWD == "":
		return tk.Dir()
	}
	return tk.AbsPath(op.CWD)
}

func opPath(tk *Task, path string) string {
	if tk == nil {
		return path
	}
	return tk.AbsPath(path)
}

// PipeOp connects the commands stdout to stdin, like a shell pipe. All
// commands share the task's environment, stderr goes to the env's Err.
type PipeOp []CmdOp

var _ relmkore.Operation = PipeOp{}

func (po PipeOp) Describe(tk *Task, env *Env) string {
	if len(po) == 0 {
		return "empty pipe"
	}
	var sb strings.Builder
	sb.WriteString(po[0].Describe(tk, env))
	for i := range po[1:] {
		sb.WriteByte('|')
		sb.WriteString(po[i+1].Describe(tk, env))
	}
	return sb.String()
}

func (po PipeOp) Do(tr *Trace, tk *Task, env *Env) error {
	if len(po) == 0 {
		return nil
	}
	xenv, err := env.ExecEnv()
	if err != nil {
		tr.Warn(err.Error(), `op`, po.Describe(tk, env))
	}
	var (
		cmds  = make([]*exec.Cmd, len(po))
		pipes = make([]piperw, len(po)-1)
	)
	for i := range po {
		cop := &po[i]
		cmd := exec.CommandContext(tr.Ctx(), cop.Exe, cop.Args...)
		cmd.Dir = cop.dir(tk)
		cmd.Env = xenv
		if i == 0 {
			cmd.Stdin = env.In
		} else {
			r, w := io.Pipe()
			cmds[i-1].Stdout = w
			cmd.Stdin = r
			pipes[i-1] = piperw{r, w}
		}
		if i+1 == len(po) {
			cmd.Stdout = env.Out
		}
		cmd.Stderr = env.Err
		cmds[i] = cmd
	}
	tr.Debug("pipe `cmds`", `cmds`, po.Describe(tk, env))
	for i, cmd := range cmds {
		if err := cmd.Start(); err != nil {
			for k := 0; k < i; k++ {
				cmds[k].Process.Kill()
			}
			return err
		}
	}
	for i, cmd := range cmds {
		if err := cmd.Wait(); err != nil {
			for k := i + 1; k < len(cmds); k++ {
				cmds[k].Process.Kill()
			}
			return err
		}
		if i < len(pipes) {
			pipes[i].w.Close()
		}
	}
	return nil
}

type piperw struct {
	r *io.PipeReader
	w *io.PipeWriter
}
