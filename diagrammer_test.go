package relmk

import (
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
)

func TestDiagrammer_WriteDot(t *testing.T) {
	p := NewPipeline(t.Name())
	testerr.Shall(Edit(p, func(p PipelineEd) {
		lint := p.Task("lint")
		p.Task("release").DependOn(lint)
	})).BeNil(t)

	var sb strings.Builder
	dia := Diagrammer{RankDir: "LR"}
	testerr.Shall(dia.WriteDot(&sb, p)).BeNil(t)
	dot := sb.String()
	for _, want := range []string{
		`digraph "` + t.Name() + `" {`,
		`rankdir="LR"`,
		`"lint" [shape=box,style=bold,label="lint"];`,
		`"lint" -> "release";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("dot output misses %s", want)
		}
	}
}
