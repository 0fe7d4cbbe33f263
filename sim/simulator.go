// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/cellsim/cellsim/lineage"
	"github.com/cellsim/cellsim/sim/trace"
)

// RunReport totals the events of a run.
type RunReport struct {
	RunID          string  `yaml:"run_id"`
	Seed           int64   `yaml:"seed"`
	Steps          int     `yaml:"steps"`
	FinalTime      float64 `yaml:"final_time"`
	InitialCells   int     `yaml:"initial_cells"`
	FinalCells     int     `yaml:"final_cells"`
	Divisions      int     `yaml:"divisions"`
	Deaths         int     `yaml:"deaths"`
	Anomalies      int     `yaml:"anomalies"`
	FramesRecorded int     `yaml:"frames_recorded"`
}

// Simulator is the core object that holds simulation time, the live field,
// and the fixed-timestep loop.
type Simulator struct {
	ID     string
	Config Config
	Clock  float64
	Field  *Field
	Forest lineage.Forest
	Model  LennardJones
	Events *EventProcessor
	// Recorder receives one frame before the first step and one after every step.
	Recorder  trace.Recorder
	StepCount int
	Report    RunReport
}

// NewSimulator validates cfg and lays out one resting particle per forest root.
// The division RNG is seeded once from cfg.Seed and shared by every step.
// A nil recorder discards frames.
func NewSimulator(cfg Config, forest lineage.Forest, recorder trace.Recorder) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	for i, root := range forest {
		if root == nil {
			return nil, fmt.Errorf("forest root %d is nil", i)
		}
	}
	if recorder == nil {
		recorder = trace.Discard
	}

	model := NewLennardJones(cfg.Sigma, cfg.Epsilon)
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	s := &Simulator{
		ID:       uuid.NewString(),
		Config:   cfg,
		Field:    NewField(forest, InitialLayout(len(forest), cfg.Sigma)),
		Forest:   forest,
		Model:    model,
		Events:   NewEventProcessor(rng.ForSubsystem(SubsystemDivision), model.DivisionOffset()),
		Recorder: recorder,
	}
	s.Report = RunReport{RunID: s.ID, Seed: cfg.Seed, InitialCells: len(forest), FinalCells: len(forest)}
	return s, nil
}

// Run records the initial frame, then steps until the clock reaches EndTime,
// recording a frame after each step. It fails only if the recorder fails.
func (sim *Simulator) Run() (*RunReport, error) {
	log := logrus.WithField("run", sim.ID)
	log.Infof("Starting simulation with %d cells, end_time=%v, timestep=%v, seed=%d",
		sim.Field.Len(), sim.Config.EndTime, sim.Config.Timestep, sim.Config.Seed)

	if err := sim.record(); err != nil {
		return nil, err
	}
	for sim.Clock < sim.Config.EndTime {
		rep := sim.Step()
		if rep.Deaths > 0 || rep.Divisions > 0 {
			log.Debugf("[t=%.6g] step %d: %d deaths, %d divisions, %d cells",
				sim.Clock, sim.StepCount, rep.Deaths, rep.Divisions, sim.Field.Len())
		}
		if err := sim.record(); err != nil {
			return nil, err
		}
	}

	log.Infof("[t=%.6g] Simulation ended after %d steps with %d cells (%d divisions, %d deaths, %d anomalies)",
		sim.Clock, sim.StepCount, sim.Field.Len(), sim.Report.Divisions, sim.Report.Deaths, sim.Report.Anomalies)
	report := sim.Report
	return &report, nil
}

// Step integrates one timestep, advances the clock, and applies due lineage events.
func (sim *Simulator) Step() EventReport {
	sim.integrate()
	sim.Clock += sim.Config.Timestep
	sim.StepCount++

	rep := sim.Events.Apply(sim.Field, sim.Clock)

	sim.Report.Steps = sim.StepCount
	sim.Report.FinalTime = sim.Clock
	sim.Report.FinalCells = sim.Field.Len()
	sim.Report.Divisions += rep.Divisions
	sim.Report.Deaths += rep.Deaths
	sim.Report.Anomalies += len(rep.Anomalies)
	return rep
}

// integrate performs a synchronous update: every force is evaluated against
// the positions at the start of the step, never against updated ones.
func (sim *Simulator) integrate() {
	cfg := sim.Config
	dt := cfg.Timestep
	old := sim.Field.Positions()

	for i := range sim.Field.Particles {
		p := &sim.Field.Particles[i]

		// mass is 1, so acceleration is the net force
		var acc r2.Vec
		for j, other := range old {
			if i == j {
				continue
			}
			acc = r2.Add(acc, sim.Model.Force(old[i], other))
		}
		acc = ClampMagnitude(acc, cfg.MaxAcceleration)

		p.Velocity = ClampMagnitude(r2.Add(p.Velocity, r2.Scale(dt, acc)), cfg.MaxVelocity)
		// position advances by v·dt + a·dt² (full a·dt², not ½a·dt²)
		p.Position = r2.Add(p.Position, r2.Add(r2.Scale(dt, p.Velocity), r2.Scale(dt*dt, acc)))
		p.Velocity = r2.Scale(cfg.Friction, p.Velocity)
	}
}

func (sim *Simulator) record() error {
	if err := sim.Recorder.Record(sim.Field.Frame(sim.Clock)); err != nil {
		return fmt.Errorf("recording frame at t=%v: %w", sim.Clock, err)
	}
	sim.Report.FramesRecorded++
	return nil
}
