package release

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wikidot-tools/relmk"
)

// serveDir serves the files below dir over HTTP until the run's context is
// canceled.
type serveDir struct {
	addr, dir string
}

var _ relmk.Operation = serveDir{}

func (sv serveDir) Describe(*relmk.Task, *relmk.Env) string {
	return fmt.Sprintf("serve %s at http://%s", sv.dir, sv.addr)
}

func (sv serveDir) Do(tr *relmk.Trace, tk *relmk.Task, _ *relmk.Env) error {
	dir := sv.dir
	if tk != nil {
		dir = tk.AbsPath(dir)
	}
	srv := &http.Server{
		Addr:    sv.addr,
		Handler: http.FileServer(http.Dir(dir)),
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-tr.Ctx().Done()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(sctx)
	}()
	tr.Info("serving `dir` at `addr`", `dir`, dir, `addr`, sv.addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}
