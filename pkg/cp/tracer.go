package cp

import (
	"fmt"
	"io"
)

// Tracer receives propagation events as they occur. Implementations must not
// mutate the model.
type Tracer interface {
	OnEnqueue(d *Demon)
	OnRun(d *Demon)
	OnFail()
}

type DefaultTracer struct{}

func (DefaultTracer) OnEnqueue(_ *Demon) {
}

func (DefaultTracer) OnRun(_ *Demon) {
}

func (DefaultTracer) OnFail() {
}

// LoggingTracer writes a line per propagation event, useful when debugging a
// propagator network.
type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) OnEnqueue(d *Demon) {
	fmt.Fprintf(t.Writer, "enqueue: %s\n", d)
}

func (t LoggingTracer) OnRun(d *Demon) {
	fmt.Fprintf(t.Writer, "run: %s\n", d)
}

func (t LoggingTracer) OnFail() {
	fmt.Fprintf(t.Writer, "fail\n")
}
