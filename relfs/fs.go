// Package relfs provides filesystem operations for relmk pipelines.
package relfs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/wikidot-tools/relmk/relmkore"
)

// RemoveDir removes the directory tree at its path. Removing a path that
// does not exist is a no-op, not an error.
type RemoveDir string

var _ relmkore.Operation = RemoveDir("")

func (rm RemoveDir) Describe(*relmkore.Task, *relmkore.Env) string {
	return fmt.Sprintf("remove %s", string(rm))
}

func (rm RemoveDir) Do(tr *relmkore.Trace, tk *relmkore.Task, _ *relmkore.Env) error {
	path := taskPath(tk, string(rm))
	tr.Debug("remove `path`", `path`, path)
	return os.RemoveAll(path)
}

// MkDirs creates the directory at Path along with all missing parents. Mode
// zero defaults to 0777 before umask.
type MkDirs struct {
	Path string
	Mode fs.FileMode
}

var _ relmkore.Operation = MkDirs{}

func (mk MkDirs) Describe(*relmkore.Task, *relmkore.Env) string {
	return fmt.Sprintf("mkdirs %s", mk.Path)
}

func (mk MkDirs) Do(tr *relmkore.Trace, tk *relmkore.Task, _ *relmkore.Env) error {
	mode := mk.Mode
	if mode == 0 {
		mode = 0777
	}
	path := taskPath(tk, mk.Path)
	tr.Debug("mkdirs `path`", `path`, path)
	return os.MkdirAll(path, mode)
}

// Touch creates an empty file at its path or, when the file exists, sets its
// modification time to now.
type Touch string

var _ relmkore.Operation = Touch("")

func (tc Touch) Describe(*relmkore.Task, *relmkore.Env) string {
	return fmt.Sprintf("touch %s", string(tc))
}

func (tc Touch) Do(tr *relmkore.Trace, tk *relmkore.Task, _ *relmkore.Env) error {
	path := taskPath(tk, string(tc))
	tr.Debug("touch `path`", `path`, path)
	if _, err := os.Stat(path); err == nil {
		now := time.Now()
		return os.Chtimes(path, now, now)
	}
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	return w.Close()
}

// Exists tells if path exists, resolved against the pipeline directory.
func Exists(p *relmkore.Pipeline, path string) bool {
	_, err := os.Stat(p.AbsPath(path))
	return err == nil
}

func taskPath(tk *relmkore.Task, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if tk == nil {
		return path
	}
	return tk.AbsPath(path)
}
