package geom

import "sync"

// Tracer receives construction points and segments while a path is compiled.
// It is meant for visual debugging of arc and spline reconstruction.
type Tracer interface {
	Point(x, y float64, label string)
	Segment(x0, y0, x1, y1 float64, label string)
}

// Mark is one recorded trace event.
type Mark struct {
	Label   string
	Segment bool
	X0, Y0  float64
	X1, Y1  float64
}

// RecordingTracer keeps every trace event in memory.
type RecordingTracer struct {
	mu    sync.Mutex
	marks []Mark
}

// Point records a construction point.
func (r *RecordingTracer) Point(x, y float64, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.marks = append(r.marks, Mark{Label: label, X0: x, Y0: y})
}

// Segment records a construction segment.
func (r *RecordingTracer) Segment(x0, y0, x1, y1 float64, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.marks = append(r.marks, Mark{Label: label, Segment: true, X0: x0, Y0: y0, X1: x1, Y1: y1})
}

// Marks returns a copy of the recorded events.
func (r *RecordingTracer) Marks() []Mark {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Mark, len(r.marks))
	copy(out, r.marks)
	return out
}

type nopTracer struct{}

func (nopTracer) Point(float64, float64, string)                     {}
func (nopTracer) Segment(float64, float64, float64, float64, string) {}
