// relmk drives the release pipeline of a packaged project, configured by a
// relmk.yaml in the project directory. Every subcommand runs one named task
// of the pipeline, strictly sequential, aborting on the first failure.
package main

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wikidot-tools/relmk"
	"github.com/wikidot-tools/relmk/config"
	"github.com/wikidot-tools/relmk/release"
	"github.com/wikidot-tools/relmk/relmkore"
)

// set via -ldflags "-X main.version=..."
var version = "dev"

type app struct {
	chdir   string
	cfgFile string
	traceLv string
	dryRun  bool
	prefix  bool

	par release.Params
}

func (a *app) pipeline() (*relmk.Pipeline, error) {
	dir := a.chdir
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return nil, err
		}
	}
	cfgPath := a.cfgFile
	if cfgPath == "" {
		cfgPath = filepath.Join(dir, config.DefaultFile)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return release.Pipeline(dir, cfg, a.par)
}

func (a *app) run(names ...string) error {
	p, err := a.pipeline()
	if err != nil {
		return err
	}
	tracer := relmk.NewDefaultTracer()
	if err := tracer.ParseLevelFlag(a.traceLv); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()
	r, err := relmkore.NewRunner(relmkore.NewTrace(ctx, tracer), nil)
	if err != nil {
		return err
	}
	r.DryRun = a.dryRun
	r.Prefix = a.prefix
	return r.NamedTasks(p, names...)
}

func (a *app) taskCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return a.run(release.Tasks(name)...)
		},
	}
}

func versionFlags(fs *pflag.FlagSet, par *release.Params) {
	fs.StringVar(&par.Version, "version", "", "version literal to stamp and tag")
}

func messageFlags(fs *pflag.FlagSet, par *release.Params) {
	fs.StringVarP(&par.Message, "message", "m", "", "release commit message")
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:     "relmk",
		Short:   "relmk runs the release pipeline of a packaged project",
		Version: version,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.chdir, "chdir", "C", "", "project directory to work in")
	pf.StringVarP(&a.cfgFile, "config", "c", "", "configuration file (default <dir>/"+config.DefaultFile+")")
	pf.StringVar(&a.traceLv, "trace", "", "trace level: off, warn, info, debug")
	pf.BoolVarP(&a.dryRun, "dry-run", "n", false, "trace steps without running them")
	pf.BoolVarP(&a.prefix, "prefix", "p", false, "prefix task output lines with the task name")

	root.AddCommand(
		a.taskCmd("build", "Clear the dist directory and build the package"),
		a.taskCmd("format", "Format the source directory"),
		a.taskCmd("lint", "Run linter and type checker"),
		a.taskCmd("lint-fix", "Run the linter with autofix"),
		a.taskCmd("docs-build", "Build the documentation"),
		a.taskCmd("docs-clean", "Remove the documentation output directory"),
		a.taskCmd("docs-serve", "Build and serve the documentation locally"),
		a.taskCmd("docs-github", "Build the documentation for static hosting"),
	)

	updateVersion := a.taskCmd("update-version", "Stamp the version literal into the tracked files")
	versionFlags(updateVersion.Flags(), &a.par)
	updateVersion.MarkFlagRequired("version")
	root.AddCommand(updateVersion)

	rel := a.taskCmd("release", "Stamp, fix up, commit, push and release")
	versionFlags(rel.Flags(), &a.par)
	messageFlags(rel.Flags(), &a.par)
	rel.MarkFlagRequired("version")
	root.AddCommand(rel)

	relFrom := a.taskCmd("release-from-develop", "PR, auto-merge and tagged release from develop")
	versionFlags(relFrom.Flags(), &a.par)
	messageFlags(relFrom.Flags(), &a.par)
	relFrom.MarkFlagRequired("version")
	root.AddCommand(relFrom)

	var asDot bool
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the pipeline's tasks and their dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			if asDot {
				dia := relmk.Diagrammer{RankDir: "LR"}
				return dia.WriteDot(cmd.OutOrStdout(), p)
			}
			p.WriteDeps(cmd.OutOrStdout())
			return nil
		},
	}
	tasksCmd.Flags().BoolVar(&asDot, "dot", false, "write the task graph in Graphviz dot format")
	root.AddCommand(tasksCmd)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var xerr *exec.ExitError
		if errors.As(err, &xerr) && xerr.ExitCode() > 0 {
			os.Exit(xerr.ExitCode())
		}
		os.Exit(1)
	}
}
