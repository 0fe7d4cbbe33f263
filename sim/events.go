package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/cellsim/cellsim/lineage"
)

// EventKind is the decision taken for one particle during an event pass.
type EventKind int

const (
	EventNone     EventKind = iota // not yet due
	EventDeath                     // leaf node fired: particle removed
	EventDivision                  // branch node fired: replaced by two daughters
	EventInvalid                   // node has exactly one child: left untouched
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventDeath:
		return "death"
	case EventDivision:
		return "division"
	case EventInvalid:
		return "invalid"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// InvalidLineageNodeError reports a due node with exactly one child.
// The particle carrying it is skipped for the step; the run continues.
type InvalidLineageNodeError struct {
	Node *lineage.Node
	Time float64
}

func (e *InvalidLineageNodeError) Error() string {
	return fmt.Sprintf("invalid lineage node %s at t=%v: exactly one child", e.Node, e.Time)
}

// EventReport describes one event pass.
type EventReport struct {
	Time      float64
	Evaluated int // particles live at the start of the pass
	Deaths    int
	Divisions int
	Anomalies []*InvalidLineageNodeError
}

// EventProcessor applies due deaths and divisions to a field.
type EventProcessor struct {
	rng    *rand.Rand
	offset float64
}

// NewEventProcessor draws division angles from rng, which must outlive the
// processor; offset is the distance of each daughter from the parent.
func NewEventProcessor(rng *rand.Rand, offset float64) *EventProcessor {
	return &EventProcessor{rng: rng, offset: offset}
}

// Decide classifies a particle's node at time now.
func Decide(node *lineage.Node, now float64) EventKind {
	switch {
	case node.EventTime > now:
		return EventNone
	case node.IsLeaf():
		return EventDeath
	case node.IsBranch():
		return EventDivision
	default:
		return EventInvalid
	}
}

// Apply runs one event pass in two phases. Every particle live at the start
// gets exactly one decision; the new field is then rebuilt from the kept
// particles, in order, followed by daughters in the order their parents were
// visited. Daughters are not evaluated until the next pass.
func (p *EventProcessor) Apply(f *Field, now float64) EventReport {
	report := EventReport{Time: now, Evaluated: len(f.Particles)}

	decisions := make([]EventKind, len(f.Particles))
	for i, part := range f.Particles {
		decisions[i] = Decide(part.Node, now)
	}

	kept := make([]Particle, 0, len(f.Particles))
	var spawned []Particle
	for i, part := range f.Particles {
		switch decisions[i] {
		case EventNone:
			kept = append(kept, part)
		case EventDeath:
			report.Deaths++
		case EventDivision:
			report.Divisions++
			spawned = append(spawned, p.divide(part)...)
		case EventInvalid:
			anomaly := &InvalidLineageNodeError{Node: part.Node, Time: now}
			report.Anomalies = append(report.Anomalies, anomaly)
			logrus.WithFields(logrus.Fields{
				"time":       now,
				"type":       string(part.Node.TypeLetter()),
				"event_time": part.Node.EventTime,
			}).Warn(anomaly.Error())
			kept = append(kept, part)
		}
	}

	f.Particles = append(kept, spawned...)
	return report
}

// divide replaces parent with two resting daughters displaced by equal and
// opposite offsets at a random angle in [0, π).
func (p *EventProcessor) divide(parent Particle) []Particle {
	theta := p.rng.Float64() * math.Pi
	off := r2.Vec{X: math.Cos(theta) * p.offset, Y: math.Sin(theta) * p.offset}
	return []Particle{
		{Position: r2.Add(parent.Position, off), Node: parent.Node.Left},
		{Position: r2.Sub(parent.Position, off), Node: parent.Node.Right},
	}
}
