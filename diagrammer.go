package relmk

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wikidot-tools/relmk/relmkore"
)

// Diagrammer writes Graphviz dot representations of a pipeline's task
// graph. Tasks are boxes, an edge points from each dependency to the
// task that requires it, i.e. edges point in run order.
type Diagrammer struct {
	RankDir string
}

func (dia *Diagrammer) WriteDot(w io.Writer, p *relmkore.Pipeline) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch r := r.(type) {
			case error:
				err = r
			case string:
				err = errors.New(r)
			default:
				err = fmt.Errorf("panic: %+v", r)
			}
		}
	}()

	dia.startDot(w, p)
	for _, tk := range p.Tasks(nil) {
		dia.task(w, tk)
	}
	dia.endDot(w)
	return nil
}

func (dia *Diagrammer) startDot(w io.Writer, p *relmkore.Pipeline) {
	fmt.Fprintf(w, "digraph \"%s\" {\n", escDotID(p.Name()))
	if dia.RankDir != "" {
		fmt.Fprintf(w, "\trankdir=\"%s\"\n", escDotID(dia.RankDir))
	}
}

func (dia *Diagrammer) endDot(w io.Writer) {
	fmt.Fprintln(w, "}")
}

func (dia *Diagrammer) task(w io.Writer, tk *relmkore.Task) {
	style := ""
	if len(tk.DependsOn()) == 0 {
		style = ",style=bold"
	}
	fmt.Fprintf(w, "\t\"%s\" [shape=box%s,label=\"%s\"];\n",
		escDotID(tk.Name()),
		style,
		escDotID(tk.Name()),
	)
	for _, dep := range tk.DependsOn() {
		fmt.Fprintf(w, "\t\"%s\" -> \"%s\";\n",
			escDotID(dep.Name()),
			escDotID(tk.Name()),
		)
	}
}

func escDotID(id string) string {
	return strings.ReplaceAll(id, "\"", "\\\"")
}
