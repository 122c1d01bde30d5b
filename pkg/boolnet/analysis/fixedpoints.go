// Package analysis implements the two enumeration actions of §4.6: fixed
// points (this file) and trap spaces (trapspaces.go). Both build a
// propositional encoding over the rulebook's prime implicants and hand it
// to a solver.Enumerator (§6.2), grounded on
// original_source/src/model/actions/{fixpoints,trapspaces}.rs.
package analysis

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/qdyn/boolnet/internal/logging"
	"github.com/qdyn/boolnet/pkg/boolnet"
	"github.com/qdyn/boolnet/pkg/boolnet/solver"
)

var log = logging.For("analysis")

// must panics on a clause-add failure. Every clause text passed to
// enum.Add in this package is generated internally from already-valid
// registry/implicant data, never from user input, so a parse failure here
// is a bug in the clause generator, not a reportable error — the same
// "fatal, not a user error" treatment Pattern.MergeWith gives its own
// precondition violation (pattern.go).
func must(err error) {
	if err != nil {
		panic("boolnet: internally generated clause failed to parse: " + err.Error())
	}
}

// FixedPoints is the outcome of a fixed-point search (§4.6.1): Patterns
// are full states, one per stable configuration found, Names gives the
// display name for each handle position.
type FixedPoints struct {
	Names    []string
	Patterns []boolnet.Pattern
}

// Format renders one state per line using the 1/0/-/X pattern notation
// (§8's worked examples), one column per name in order.
func (fp FixedPoints) Format() string {
	var b strings.Builder
	b.WriteString(strings.Join(fp.Names, " "))
	b.WriteByte('\n')
	for _, p := range fp.Patterns {
		b.WriteString(p.String(len(fp.Names)))
		b.WriteByte('\n')
	}
	return b.String()
}

// FixedPointBuilder accumulates restrictions before running a fixed-point
// search against a model, mirroring original_source's FixedBuilder.
type FixedPointBuilder struct {
	model      *boolnet.Model
	restricted []boolnet.Pattern
}

// NewFixedPointBuilder returns a builder over model.
func NewFixedPointBuilder(model *boolnet.Model) *FixedPointBuilder {
	return &FixedPointBuilder{model: model}
}

// Restrict adds p to the restriction set: every state matching p is
// excluded from the search (§4.6.1).
func (b *FixedPointBuilder) Restrict(p boolnet.Pattern) {
	b.restricted = append(b.restricted, p)
}

// RestrictByName narrows the search to states where the named component
// has the given Boolean value, matching restrict_by_name in
// original_source/src/model/actions/fixpoints.rs.
func (b *FixedPointBuilder) RestrictByName(name string, value bool) {
	h, ok := b.model.Registry.ComponentHandle(name)
	if !ok {
		return
	}
	// Restrict excludes matching states, so exclude the opposite value.
	p := boolnet.NewPattern()
	p.Set(h, !value)
	b.Restrict(p)
}

// Solve runs the search and returns every fixed point found, capped at
// max (0 means unlimited). One variable atom vN is declared per handle;
// for each variable the stability condition from §4.6.1 is encoded
// directly from the rulebook's prime implicants: a state is forbidden
// whenever it sets v=0 but some implicant of ¬v∧f_v holds (v is about to
// turn on), or sets v=1 but some implicant of v∧¬f_v holds (v is about
// to turn off). Those implicant sets already fix v's own literal, so the
// prime-implicant patterns are forbidden as-is — no extra literal needs
// adding, mirroring solver.restrict(p) in fixpoints.rs.
func (b *FixedPointBuilder) Solve(max int) FixedPoints {
	runID := uuid.New().String()
	runLog := log.WithField("run", runID)

	n := b.model.Registry.Len()
	enum := solver.New(solver.ModeALL)

	names := make([]string, n)
	atoms := make([]string, n)
	for h := 0; h < n; h++ {
		names[h] = b.model.Name(boolnet.Handle(h))
		atoms[h] = fmt.Sprintf("v%d", h)
	}
	if n > 0 {
		must(enum.Add(fmt.Sprintf("{%s}.", strings.Join(atoms, "; "))))
	}

	primes := b.model.AllPrimes()
	for h := 0; h < n; h++ {
		vp := primes[boolnet.Handle(h)]
		for _, p := range vp.Stabilizing.Patterns() {
			enum.Restrict(p)
		}
		for _, p := range vp.Destabilizing.Patterns() {
			enum.Restrict(p)
		}
	}
	for _, r := range b.restricted {
		enum.Restrict(r)
	}

	results := enum.Solve()
	defer results.Close()

	var patterns []boolnet.Pattern
	for {
		if max > 0 && len(patterns) >= max {
			break
		}
		p, ok := results.Next()
		if !ok {
			break
		}
		patterns = append(patterns, p)
	}
	runLog.WithField("count", len(patterns)).Debug("fixed-point search complete")

	return FixedPoints{Names: names, Patterns: patterns}
}
