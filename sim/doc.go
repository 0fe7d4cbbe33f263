// Package sim provides the fixed-timestep particle engine driven by cell
// lineage trees.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - field.go: Particle state, the live Field, and the initial grid layout
//   - events.go: Death and division decisions applied after each step
//   - simulator.go: The step loop, synchronous integration, and frame recording
//
// # Architecture
//
// The sim package owns the physics and the event rules; the other packages
// are plain data and I/O:
//   - lineage/: Parsing and formatting of the forest notation
//   - sim/trace/: Frame records, the text time-series writer and reader, and summaries
//
// Every particle references the lineage node it is currently living. When
// the clock reaches that node's event time the particle is removed (leaf) or
// replaced by two daughters (branch), each referencing one child.
//
// # Key Interfaces
//
//   - trace.Recorder: receives one Frame per recorded instant
//
// Randomness comes from PartitionedRNG; division angles draw from the
// "division" subsystem, seeded directly from Config.Seed.
package sim
