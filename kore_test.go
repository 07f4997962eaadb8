package relmk

import (
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
)

func TestEdit(t *testing.T) {
	p := NewPipeline(t.Name())
	testerr.Shall(Edit(p, func(p PipelineEd) {
		lint := p.Task("lint")
		p.Task("release").DependOn(lint)
	})).BeNil(t)
	rel := p.FindTask("release")
	if rel == nil {
		t.Fatal("task 'release' not defined")
	}
	if deps := rel.DependsOn(); len(deps) != 1 || deps[0].Name() != "lint" {
		t.Errorf("unexpected dependencies %v", deps)
	}
}

func TestEdit_recovers(t *testing.T) {
	p := NewPipeline(t.Name())
	testerr.Shall(Edit(p, func(p PipelineEd) {
		p.Task("twice")
		p.Task("twice")
	})).Check(t, testerr.Msg(
		"redefining task 'twice' in pipeline " + t.Name(),
	))
}
