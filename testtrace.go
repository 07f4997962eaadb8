package relmk

import (
	"testing"
	"time"

	"github.com/wikidot-tools/relmk/relmkore"
)

// TestTracer logs run events to a testing.T.
type TestTracer struct{ T *testing.T }

var _ relmkore.Tracer = TestTracer{}

func (tr TestTracer) Debug(t *relmkore.Trace, msg string, args ...any) {
	tr.T.Logf("relmk-DEBUG: %s %v", msg, args)
}

func (tr TestTracer) Info(t *relmkore.Trace, msg string, args ...any) {
	tr.T.Logf("relmk-INFO: %s %v", msg, args)
}

func (tr TestTracer) Warn(t *relmkore.Trace, msg string, args ...any) {
	tr.T.Logf("relmk-WARN: %s %v", msg, args)
}

func (tr TestTracer) StartPipeline(t *relmkore.Trace, p *relmkore.Pipeline, activity string) {
	tr.T.Logf("relmk-StartPipeline: %s %s", p, activity)
}

func (tr TestTracer) DonePipeline(t *relmkore.Trace, p *relmkore.Pipeline, activity string, dt time.Duration) {
	tr.T.Logf("relmk-DonePipeline: %s %s %s", p, activity, dt)
}

func (tr TestTracer) StartTask(_ *relmkore.Trace, tk *relmkore.Task) {
	tr.T.Logf("relmk-StartTask: %s", tk)
}

func (tr TestTracer) DoneTask(_ *relmkore.Trace, tk *relmkore.Task, dt time.Duration) {
	tr.T.Logf("relmk-DoneTask: %s %s", tk, dt)
}

func (tr TestTracer) FailTask(_ *relmkore.Trace, tk *relmkore.Task, err error) {
	tr.T.Logf("relmk-FailTask: %s: %s", tk, err)
}

func (tr TestTracer) SkipTask(_ *relmkore.Trace, tk *relmkore.Task) {
	tr.T.Logf("relmk-SkipTask: %s", tk)
}

func (tr TestTracer) RunStep(_ *relmkore.Trace, tk *relmkore.Task, op relmkore.Operation) {
	tr.T.Logf("relmk-RunStep: %s (%s)", tk, op.Describe(tk, nil))
}
