// Package pool holds the immutable set of exercises a learning session draws from.
package pool

import (
	"context"
	"errors"
	"fmt"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/domain/outcome"
)

var (
	ErrNoLearnSets     = errors.New("pool: no learn set ids given")
	ErrConnectivity    = errors.New("pool: bundle could not be fetched")
	ErrMalformedBundle = errors.New("pool: bundle is missing learn sets or exercises")
	ErrEmptyPool       = errors.New("pool: learn sets contain no exercises")
)

// Bundle is everything the backend returns for a set of learn set ids.
type Bundle struct {
	LearnSets []learnset.LearnSet
	Exercises []learnset.Exercise
	Stats     map[string]outcome.Counter // keyed by exercise id; empty for guests
	Message   string                     // server text sent with the bundle, if any
}

// Source fetches a bundle. Implementations: the HTTP portal client and the
// local SQLite store.
type Source interface {
	FetchBundle(ctx context.Context, learnSetIDs []string) (*Bundle, error)
}

// Group is one learn set with the pool exercises that belong to it.
type Group struct {
	Set       learnset.LearnSet
	Exercises []learnset.Exercise
}

// Pool is read-only once built. Iteration order is insertion order.
type Pool struct {
	sets      []learnset.LearnSet
	setIndex  map[string]int
	exercises []learnset.Exercise
	exIndex   map[string]int
}

// Load fetches the bundle for the given ids and builds a pool from it.
// The returned counters contain prior history for pool exercises only.
func Load(ctx context.Context, src Source, learnSetIDs []string) (*Pool, map[string]outcome.Counter, error) {
	if len(learnSetIDs) == 0 {
		return nil, nil, ErrNoLearnSets
	}

	bundle, err := src.FetchBundle(ctx, learnSetIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	if bundle == nil {
		return nil, nil, ErrMalformedBundle
	}
	if bundle.LearnSets == nil || bundle.Exercises == nil {
		if bundle.Message != "" {
			return nil, nil, fmt.Errorf("%w: %s", ErrMalformedBundle, bundle.Message)
		}
		return nil, nil, ErrMalformedBundle
	}

	p := New(bundle.LearnSets, bundle.Exercises)
	if p.Len() == 0 {
		return nil, nil, ErrEmptyPool
	}

	prior := make(map[string]outcome.Counter, len(bundle.Stats))
	for exerciseID, c := range bundle.Stats {
		if _, ok := p.exIndex[exerciseID]; ok {
			prior[exerciseID] = c
		}
	}

	return p, prior, nil
}

// New builds a pool. Duplicate set or exercise ids keep their first occurrence.
func New(sets []learnset.LearnSet, exercises []learnset.Exercise) *Pool {
	p := &Pool{
		setIndex: make(map[string]int, len(sets)),
		exIndex:  make(map[string]int, len(exercises)),
	}

	for _, s := range sets {
		if _, dup := p.setIndex[s.ID]; dup {
			continue
		}
		s.Exercises = nil
		p.setIndex[s.ID] = len(p.sets)
		p.sets = append(p.sets, s)
	}

	for _, e := range exercises {
		if _, dup := p.exIndex[e.ID]; dup {
			continue
		}
		p.exIndex[e.ID] = len(p.exercises)
		p.exercises = append(p.exercises, e)
	}

	return p
}

// Len returns the number of exercises.
func (p *Pool) Len() int {
	return len(p.exercises)
}

// Exercises returns the exercises in pool order.
func (p *Pool) Exercises() []learnset.Exercise {
	out := make([]learnset.Exercise, len(p.exercises))
	copy(out, p.exercises)
	return out
}

// LearnSets returns the sets in pool order.
func (p *Pool) LearnSets() []learnset.LearnSet {
	out := make([]learnset.LearnSet, len(p.sets))
	copy(out, p.sets)
	return out
}

func (p *Pool) Exercise(exerciseID string) (learnset.Exercise, bool) {
	i, ok := p.exIndex[exerciseID]
	if !ok {
		return learnset.Exercise{}, false
	}
	return p.exercises[i], true
}

// SetOf resolves the learn set an exercise belongs to.
func (p *Pool) SetOf(exerciseID string) (learnset.LearnSet, bool) {
	e, ok := p.Exercise(exerciseID)
	if !ok {
		return learnset.LearnSet{}, false
	}
	i, ok := p.setIndex[e.SetID]
	if !ok {
		return learnset.LearnSet{}, false
	}
	return p.sets[i], true
}

// Groups returns exercises grouped by parent set, in set order.
// Exercises whose set is unknown are left out.
func (p *Pool) Groups() []Group {
	groups := make([]Group, len(p.sets))
	for i, s := range p.sets {
		groups[i].Set = s
	}
	for _, e := range p.exercises {
		if i, ok := p.setIndex[e.SetID]; ok {
			groups[i].Exercises = append(groups[i].Exercises, e)
		}
	}
	return groups
}
