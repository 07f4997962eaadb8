package relmk

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"git.fractalqb.de/fractalqb/sllm/v3"
	"github.com/wikidot-tools/relmk/relmkore"
)

// WriteTracer renders run events line by line to W.
type WriteTracer struct {
	W     io.Writer
	Level relmkore.TraceLevel
}

var _ relmkore.Tracer = (*WriteTracer)(nil)

func NewDefaultTracer() *WriteTracer {
	return &WriteTracer{W: os.Stderr, Level: relmkore.DefaultTraceLevel}
}

func (tr *WriteTracer) ParseLevelFlag(f string) error {
	switch f {
	case "":
		return nil
	case "off":
		tr.Level = 0
	case "warn", "w":
		tr.Level = relmkore.TraceWarn
	case "info", "i":
		tr.Level = relmkore.TraceWarn | relmkore.TraceInfo
	case "debug", "d":
		tr.Level = relmkore.TraceWarn | relmkore.TraceInfo | relmkore.TraceDebug
	default:
		return fmt.Errorf("write tracer: illegal level flag '%s'", f)
	}
	return nil
}

func (tr WriteTracer) Debug(t *relmkore.Trace, msg string, args ...any) {
	if tr.Level&relmkore.TraceDebug == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%d@%s\t  DEBUG ", t.Run(), t.TopTag())
	sllm.Fprint(tr.W, msg, sllmArgs(args).append)
	fmt.Fprintln(tr.W)
}

func (tr WriteTracer) Info(t *relmkore.Trace, msg string, args ...any) {
	if tr.Level&(relmkore.TraceInfo|relmkore.TraceDebug) == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%d@%s\t  INFO  ", t.Run(), t.TopTag())
	sllm.Fprint(tr.W, msg, sllmArgs(args).append)
	fmt.Fprintln(tr.W)
}

func (tr WriteTracer) Warn(t *relmkore.Trace, msg string, args ...any) {
	if tr.Level&(relmkore.TraceWarn|relmkore.TraceInfo|relmkore.TraceDebug) == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%d@%s\t  WARN  ", t.Run(), t.TopTag())
	sllm.Fprint(tr.W, msg, sllmArgs(args).append)
	fmt.Fprintln(tr.W)
}

func (tr WriteTracer) StartPipeline(t *relmkore.Trace, p *relmkore.Pipeline, activity string) {
	fmt.Fprintf(tr.W, "%d@%s\t{ %s pipeline '%s' in %s\n",
		t.Run(),
		t.TopTag(),
		activity,
		p,
		p.Dir,
	)
}

func (tr WriteTracer) DonePipeline(t *relmkore.Trace, p *relmkore.Pipeline, activity string, dt time.Duration) {
	fmt.Fprintf(tr.W, "%d@%s\t} %s pipeline '%s' took %s\n",
		t.Run(),
		t.TopTag(),
		activity,
		p,
		dt,
	)
}

func (tr WriteTracer) StartTask(t *relmkore.Trace, tk *relmkore.Task) {
	fmt.Fprintf(tr.W, "%d@%s\t> task %s\n", t.Run(), t.TopTag(), tk.Name())
}

func (tr WriteTracer) DoneTask(t *relmkore.Trace, tk *relmkore.Task, dt time.Duration) {
	fmt.Fprintf(tr.W, "%d@%s\t< task %s took %s\n", t.Run(), t.TopTag(), tk.Name(), dt)
}

func (tr WriteTracer) FailTask(t *relmkore.Trace, tk *relmkore.Task, err error) {
	fmt.Fprintf(tr.W, "%d@%s\t! task %s failed: %s\n", t.Run(), t.TopTag(), tk.Name(), err)
}

func (tr WriteTracer) SkipTask(t *relmkore.Trace, tk *relmkore.Task) {
	if tr.Level&relmkore.TraceDebug == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%d@%s\t  task %s already ran\n", t.Run(), t.TopTag(), tk.Name())
}

func (tr WriteTracer) RunStep(t *relmkore.Trace, tk *relmkore.Task, op relmkore.Operation) {
	if tr.Level&(relmkore.TraceInfo|relmkore.TraceDebug) == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%d@%s\t  step (%s)\n", t.Run(), t.TopTag(), op.Describe(tk, nil))
}

type sllmArgs []any

func (as sllmArgs) append(buf []byte, _ int, n string) ([]byte, error) {
	for len(as) > 0 {
		switch k := as[0].(type) {
		case string:
			if len(as) == 1 {
				return buf, fmt.Errorf("no value for key '%s'", n)
			}
			if k == n {
				return sllm.AppendArg(buf, as[1]), nil
			}
			as = as[2:]
		case slog.Attr:
			if k.Key == n {
				return sllm.AppendArg(buf, k.Value), nil
			}
			as = as[1:]
		default:
			return buf, fmt.Errorf("illegal key type %T", k)
		}
	}
	return buf, fmt.Errorf("no value for key '%s'", n)
}
