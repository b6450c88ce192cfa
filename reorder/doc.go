// Package reorder turns a two-way filament grouping into per-layer tool
// change sequences and their total flush cost.
//
// Each group is walked layer by layer on its own, remembering the filament
// it left loaded. Layers are ordered by package sequence, with forecast
// enabled when the layer and its successor are both small, and identical
// sub-problems are solved once. Caller overrides (CustomSequence) replace
// the optimization for their layer but are still priced against the loaded
// filament.
//
// The two group timelines are then interleaved: on every layer the group
// that printed last goes first, so the job avoids a needless group switch.
//
// A Planner validates a job once and can then be Run for many labelings,
// which is how package grouping prices its candidates.
package reorder
