// This is an example release script that defines its pipeline in Go
// instead of reading a relmk.yaml.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"regexp"

	"github.com/wikidot-tools/relmk"
	"github.com/wikidot-tools/relmk/relfs"
	"github.com/wikidot-tools/relmk/relmkore"
	"github.com/wikidot-tools/relmk/vcs"
)

var (
	tracer = relmk.NewDefaultTracer()

	version  string
	dryrun   bool
	writeDot bool
)

func flags() {
	flag.StringVar(&version, "version", version, "Version to release")
	flag.BoolVar(&writeDot, "dot", writeDot, "Write graphviz file to stdout and exit")
	flag.BoolVar(&dryrun, "n", dryrun, "Dryrun")
	fTrace := flag.String("trace", "", "Set trace level")
	flag.Parse()

	tracer.ParseLevelFlag(*fTrace)
}

func main() {
	flags()

	// The pipeline in current working dir
	p := relmk.NewPipeline("")

	// Start editing the pipeline, recovering panics to errors
	err := relmk.Edit(p, func(p relmk.PipelineEd) {
		build := p.Task("build").
			Step(relfs.RemoveDir("dist")).
			Step(&relmk.CmdOp{
				Exe:  "python3",
				Args: []string{"-m", "build", "--outdir", "dist"},
			})

		updateVersion := p.Task("update-version").
			Step(&relfs.SubstLine{
				File:    "pyproject.toml",
				Pattern: regexp.MustCompile(`^version = ".*"$`),
				Text:    `version = "` + version + `"`,
			})

		lint := p.Task("lint").
			Step(&relmk.CmdOp{Exe: "ruff", Args: []string{"check", "src"}})

		p.Task("release").
			DependOn(updateVersion, lint, build).
			Step(&vcs.Add{}).
			Step(&vcs.Commit{Message: "release v" + version, All: true}).
			Step(&vcs.Push{Remote: "origin", Branch: "develop"})
	})
	if err != nil {
		log.Fatal("editing pipeline:", err)
	}
	tr := relmkore.NewTrace(context.Background(), tracer)

	if writeDot {
		dia := relmk.Diagrammer{RankDir: "LR"}
		if err := dia.WriteDot(os.Stdout, p); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	run, err := relmkore.NewRunner(tr, nil)
	if err != nil {
		log.Fatal(err)
	}
	run.DryRun = dryrun
	if flag.NArg() == 0 {
		if err := run.Pipeline(p); err != nil {
			slog.Error(err.Error())
		}
	} else {
		if err := run.NamedTasks(p, flag.Args()...); err != nil {
			slog.Error(err.Error())
		}
	}
}
