// Package engine ties parsing and evaluation into a live document: a
// variable store, a dependency graph with cycle rejection, and per-line
// recomputation when upstream variables change.
package engine

import (
	"time"

	"github.com/shibukawa/calcpad/value"
)

// Variable is one stored binding. A variable that failed to re-evaluate
// keeps its last good value and carries the error alongside, so
// dependents can report the upstream failure without losing data.
type Variable struct {
	Name      string
	Value     value.Value
	RawValue  string
	Err       *value.Error
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store holds variables by name. It implements evaluator.VariableSource;
// lookups only see healthy variables, so arithmetic never runs against
// an errored binding.
type Store struct {
	vars  map[string]*Variable
	clock func() time.Time
}

// NewStore builds an empty store.
func NewStore(clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}

	return &Store{
		vars:  make(map[string]*Variable),
		clock: clock,
	}
}

// Lookup returns the value bound to name when the binding is healthy.
func (s *Store) Lookup(name string) (value.Value, bool) {
	v, ok := s.vars[name]
	if !ok || v.Err != nil {
		return nil, false
	}

	return v.Value, true
}

// Get returns the variable record itself, errored or not.
func (s *Store) Get(name string) (*Variable, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Set commits a healthy value, clearing any previous error state.
func (s *Store) Set(name string, v value.Value, raw string) {
	now := s.clock()

	existing, ok := s.vars[name]
	if !ok {
		s.vars[name] = &Variable{
			Name:      name,
			Value:     v,
			RawValue:  raw,
			CreatedAt: now,
			UpdatedAt: now,
		}

		return
	}

	existing.Value = v
	existing.RawValue = raw
	existing.Err = nil
	existing.UpdatedAt = now
}

// MarkError flags an existing variable as errored while keeping its last
// good value. Unknown names are ignored: a failed first assignment never
// creates the variable.
func (s *Store) MarkError(name string, errv *value.Error) {
	v, ok := s.vars[name]
	if !ok {
		return
	}

	v.Err = errv
	v.UpdatedAt = s.clock()
}

// Delete removes a binding.
func (s *Store) Delete(name string) {
	delete(s.vars, name)
}

// Snapshot returns a copy of every variable for read-only consumers such
// as a variable panel.
func (s *Store) Snapshot() map[string]Variable {
	out := make(map[string]Variable, len(s.vars))

	for name, v := range s.vars {
		out[name] = *v
	}

	return out
}
