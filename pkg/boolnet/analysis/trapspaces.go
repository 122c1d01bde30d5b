package analysis

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/qdyn/boolnet/pkg/boolnet"
	"github.com/qdyn/boolnet/pkg/boolnet/solver"
)

// TrapSpaceBuilder accumulates options before running a trap-space
// search, mirroring original_source/src/model/actions/trapspaces.rs's
// TrapspacesBuilder. It uses the halved two-literal-per-variable
// encoding of §4.6.2: handle h lowers to atom pair v(2h) ("h fixed
// true") / v(2h+1) ("h fixed false").
type TrapSpaceBuilder struct {
	model      *boolnet.Model
	percolate  bool
	restricted []boolnet.Pattern
}

// NewTrapSpaceBuilder returns a builder over model, percolation off by
// default.
func NewTrapSpaceBuilder(model *boolnet.Model) *TrapSpaceBuilder {
	return &TrapSpaceBuilder{model: model}
}

// SetPercolate toggles whether forced literals propagate transitively
// through the encoding (§4.6.2's percolate option).
func (b *TrapSpaceBuilder) SetPercolate(on bool) *TrapSpaceBuilder {
	b.percolate = on
	return b
}

// Restrict adds p to the restriction set: every trap space that fixes all
// of p's literals the way p does is excluded from the search.
func (b *TrapSpaceBuilder) Restrict(p boolnet.Pattern) {
	b.restricted = append(b.restricted, p)
}

// Solve runs the search in the given mode and returns the trap spaces
// found, capped at max (0 means unlimited). ModeALL enumerates every
// trap space, ModeMAX keeps the trap spaces not contained in any other
// one found (the largest subspaces), ModeMIN keeps those containing no
// other one found (the smallest subspaces). ModeMIN additionally
// excludes the fully-free trap space from its results (§4.6.2).
func (b *TrapSpaceBuilder) Solve(mode solver.Mode, max int) FixedPoints {
	runID := uuid.New().String()
	runLog := log.WithField("run", runID)

	n := b.model.Registry.Len()
	enum := solver.New(mode)
	enum.Halved = true

	names := make([]string, n)
	atoms := make([]string, 0, 2*n)
	for h := 0; h < n; h++ {
		names[h] = b.model.Name(boolnet.Handle(h))
		atoms = append(atoms, fmt.Sprintf("v%d; v%d", 2*h, 2*h+1))
	}
	if n > 0 {
		must(enum.Add(fmt.Sprintf("{%s}.", strings.Join(atoms, "; "))))
	}

	for h := 0; h < n; h++ {
		must(enum.Add(fmt.Sprintf(":- v%d, v%d.", 2*h, 2*h+1)))
	}

	for h := 0; h < n; h++ {
		handle := boolnet.Handle(h)
		e := b.model.Rules.RuleFor(handle)
		ne := boolnet.Not(e)

		for _, p := range boolnet.PrimeImplicants(e).Patterns() {
			must(enum.Add(restrictClause(p, 2*h+1)))
		}
		for _, p := range boolnet.PrimeImplicants(ne).Patterns() {
			must(enum.Add(restrictClause(p, 2*h)))
		}

		if b.percolate {
			for _, p := range boolnet.PrimeImplicants(e).Patterns() {
				must(enum.Add(enforceClause(p, 2*h)))
			}
			for _, p := range boolnet.PrimeImplicants(ne).Patterns() {
				must(enum.Add(enforceClause(p, 2*h+1)))
			}
		}
	}

	if mode == solver.ModeMIN && n > 0 {
		var lits []string
		for h := 0; h < n; h++ {
			lits = append(lits, fmt.Sprintf("not v%d, not v%d", 2*h, 2*h+1))
		}
		must(enum.Add(":- " + strings.Join(lits, ", ") + "."))
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
	runLog.WithField("count", len(patterns)).WithField("mode", mode.String()).Debug("trap-space search complete")

	return FixedPoints{Names: names, Patterns: patterns}
}

// restrictClause forbids atom u from holding while prime p's literals
// stay compatible with the trap space — i.e. while nothing in the space
// contradicts p — mirroring restrict() in trapspaces.rs. p's positive
// handles lower to "not v(2r+1)" (space doesn't fix r false), negative
// handles to "not v(2r)" (space doesn't fix r true).
func restrictClause(p boolnet.Pattern, u int) string {
	body := compatibilityLiterals(p, func(r int) string { return fmt.Sprintf("not v%d", 2*r+1) },
		func(r int) string { return fmt.Sprintf("not v%d", 2*r) })
	if body == "" {
		return fmt.Sprintf(":- v%d.", u)
	}
	return fmt.Sprintf(":- v%d, %s.", u, body)
}

// enforceClause forces atom u once the trap space already matches prime
// p exactly in its own direction, mirroring enforce() in trapspaces.rs.
// p's positive handles lower to "v(2r)" (space fixes r true), negative
// handles to "v(2r+1)" (space fixes r false).
func enforceClause(p boolnet.Pattern, u int) string {
	body := compatibilityLiterals(p, func(r int) string { return fmt.Sprintf("v%d", 2*r) },
		func(r int) string { return fmt.Sprintf("v%d", 2*r+1) })
	if body == "" {
		return fmt.Sprintf("v%d.", u)
	}
	return fmt.Sprintf("v%d :- %s.", u, body)
}

func compatibilityLiterals(p boolnet.Pattern, posLit, negLit func(int) string) string {
	var parts []string
	for _, h := range p.FixedHandles() {
		v, ok := p.Get(boolnet.Handle(h))
		if !ok {
			continue
		}
		if v {
			parts = append(parts, posLit(h))
		} else {
			parts = append(parts, negLit(h))
		}
	}
	return strings.Join(parts, ",")
}
