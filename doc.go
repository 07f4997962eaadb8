// Package relmk helps to write release pipelines in Go for projects where a
// Makefile full of tool invocations is not enough. Instead of relying on
// platform-specific shell constructs, a release pipeline written in Go can
// better ensure platform independence. relmk is built around the core
// concepts of [relmkore.Pipeline], [relmkore.Task] and [relmkore.Operation].
//
// relmk is just a Go library. The relmk command in cmd/relmk drives the
// standard release pipeline of a packaged project from a relmk.yaml
// configuration file. For custom pipelines, define tasks with [Edit]:
//
//	p := relmk.NewPipeline("")
//	err := relmk.Edit(p, func(p relmk.PipelineEd) {
//		lint := p.Task("lint").
//			Step(&relmk.CmdOp{Exe: "ruff", Args: []string{"check", "src"}})
//		p.Task("release").DependOn(lint).
//			Step(&vcs.Commit{Message: "chore: release", All: true})
//	})
//
// and run them with a [relmkore.Runner].
package relmk
