// Package release assembles the standard relmk pipeline of a packaged
// project: build, version stamping, format, lint, release and docs tasks.
package release

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/wikidot-tools/relmk"
	"github.com/wikidot-tools/relmk/config"
	"github.com/wikidot-tools/relmk/relfs"
	"github.com/wikidot-tools/relmk/vcs"
)

// Params carries the externally supplied literals of a run.
type Params struct {
	// Version is the version literal stamped into the tracked version files
	// and used for the release tag.
	Version string

	// Message is the commit message of the release commit. Empty defaults to
	// "release v<version>".
	Message string
}

var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(?:[-.+][0-9A-Za-z.-]+)?$`)

// CheckVersion rejects version literals that are not of the usual
// major.minor.patch form with an optional suffix.
func CheckVersion(v string) error {
	if !versionPattern.MatchString(v) {
		return fmt.Errorf("illegal version literal '%s'", v)
	}
	return nil
}

func (par Params) message() string {
	if par.Message != "" {
		return par.Message
	}
	return "release v" + par.Version
}

func (par Params) requireVersion() relmk.Operation {
	return relmk.OpFunc("require version", func(*relmk.Trace, *relmk.Task, *relmk.Env) error {
		if par.Version == "" {
			return errors.New("no version given")
		}
		return CheckVersion(par.Version)
	})
}

// Pipeline builds the standard pipeline for the project in dir as configured
// by cfg. The release task covers commit and push on the develop branch; the
// release-from-develop task does PR, auto-merge and the tagged release. The
// sequence resolved by [Tasks] runs them one after the other.
func Pipeline(dir string, cfg *config.Config, par Params) (*relmk.Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := relmk.NewPipeline(dir)
	err := relmk.Edit(p, func(p relmk.PipelineEd) {
		pip := func(args ...string) *relmk.CmdOp {
			return &relmk.CmdOp{
				Exe:  cfg.Tools.Python,
				Args: append([]string{"-m", "pip", "install"}, args...),
			}
		}

		p.Task("build").
			Step(relfs.RemoveDir(cfg.Dist)).
			Step(pip(".[" + cfg.Extras.Build + "]")).
			Step(&relmk.CmdOp{
				Exe:  cfg.Tools.Python,
				Args: []string{"-m", "build", "--outdir", cfg.Dist},
			})

		updateVersion := p.Task("update-version").Step(par.requireVersion())
		for _, vf := range cfg.VersionFiles {
			re, err := vf.Regexp()
			if err != nil {
				panic(err)
			}
			updateVersion.Step(relfs.SubstLine{
				File:    vf.Path,
				Pattern: re,
				Text:    fmt.Sprintf(vf.Template, par.Version),
			})
		}

		format := p.Task("format").
			Step(pip(".[" + cfg.Extras.Lint + "]")).
			Step(&relmk.CmdOp{Exe: cfg.Tools.Ruff, Args: []string{"format", cfg.Source}})

		p.Task("lint").
			Step(pip(".[" + cfg.Extras.Lint + "]")).
			Step(&relmk.CmdOp{Exe: cfg.Tools.Ruff, Args: []string{"check", cfg.Source}}).
			Step(&relmk.CmdOp{Exe: cfg.Tools.Mypy, Args: []string{cfg.Source}})

		lintFix := p.Task("lint-fix").
			Step(pip(".[" + cfg.Extras.Lint + "]")).
			Step(&relmk.CmdOp{Exe: cfg.Tools.Ruff, Args: []string{"check", "--fix", cfg.Source}})

		p.Task("release").
			DependOn(updateVersion, format, lintFix).
			Step(&vcs.Add{}).
			Step(&vcs.Commit{Message: par.message()}).
			Step(&vcs.Push{Remote: cfg.Git.Remote, Branch: cfg.Git.Develop})

		p.Task("release-from-develop").
			Step(par.requireVersion()).
			Step(&vcs.PRCreate{
				Base:  cfg.Git.Main,
				Head:  cfg.Git.Develop,
				Title: par.message(),
				Fill:  true,
			}).
			Step(&vcs.AutoMerge{Branch: cfg.Git.Develop}).
			Step(&vcs.Release{
				Tag:           cfg.Git.TagPrefix + par.Version,
				Title:         par.Version,
				Target:        cfg.Git.Main,
				GenerateNotes: true,
			})

		docsBuild := p.Task("docs-build").
			Step(pip(".[" + cfg.Extras.Docs + "]")).
			Step(&relmk.CmdOp{
				Exe:  cfg.Tools.SphinxBuild,
				Args: []string{cfg.Docs.Source, cfg.Docs.Output},
			})

		p.Task("docs-clean").Step(relfs.RemoveDir(cfg.Docs.Output))

		p.Task("docs-serve").
			DependOn(docsBuild).
			Step(serveDir{addr: cfg.Docs.ServeAddr, dir: cfg.Docs.Output})

		p.Task("docs-github").
			DependOn(docsBuild).
			Step(relfs.Touch(filepath.Join(cfg.Docs.Output, ".nojekyll")))
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Compose maps the task names that run as a fixed sequence of tasks instead
// of a single one.
var Compose = map[string][]string{
	"release": {"release", "release-from-develop"},
}

// Tasks resolves name to the task sequence a run of name consists of.
func Tasks(name string) []string {
	if seq, ok := Compose[name]; ok {
		return seq
	}
	return []string{name}
}
