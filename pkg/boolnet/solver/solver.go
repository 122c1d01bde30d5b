// Package solver defines the contract for the external propositional
// enumerator (§6.2) and ships one concrete, in-process implementation
// good enough to drive this module's own tests. The real production
// collaborator (an ASP solver such as clingo, per
// original_source/src/solver/clingo.rs) is out of core scope; this
// package only owns the Go-side interface and clause-text conventions
// the core analyses (fixedpoints.go, trapspaces.go) emit against.
package solver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/qdyn/boolnet/internal/logging"
	"github.com/qdyn/boolnet/pkg/boolnet"
)

var log = logging.For("solver")

// Mode corresponds to caller intent, passed at construction (§6.2):
// ALL enumerates every solution, MAX is biased toward maximal/terminal
// trap spaces, MIN toward minimal/elementary ones.
type Mode int

const (
	ModeALL Mode = iota
	ModeMAX
	ModeMIN
)

func (m Mode) String() string {
	switch m {
	case ModeMAX:
		return "MAX"
	case ModeMIN:
		return "MIN"
	default:
		return "ALL"
	}
}

// literal is one atom reference ("vN" or "not vN") in the restricted ASP
// subset the core emits: declarations, integrity constraints,
// single-head definite rules, and facts, exactly the four shapes
// original_source/src/model/actions/{fixpoints,trapspaces}.rs produce.
type literal struct {
	atom int
	pos  bool
}

// forbidden is one conjunction of literals the enumerator must never
// satisfy simultaneously; every clause shape the core emits reduces to
// one or more of these (see parseLine).
type forbidden []literal

// Enumerator is the Go-side handle for the external propositional
// enumerator. Add/Restrict/Solve match §6.2's contract; Halved controls
// whether Solve's results decode one atom per variable (fixed-point
// encoding, §4.6.1) or two atoms per variable (trap-space encoding,
// §4.6.2).
type Enumerator struct {
	mode    Mode
	Halved  bool
	atoms   map[int]struct{}
	clauses []forbidden
}

// New constructs an enumerator for the given mode. Halved defaults to
// false (one literal per variable); set e.Halved = true before adding
// clauses for the two-literals-per-variable trap-space encoding.
func New(mode Mode) *Enumerator {
	return &Enumerator{mode: mode, atoms: make(map[int]struct{})}
}

// Mode returns the enumeration mode this enumerator was constructed with.
func (e *Enumerator) Mode() Mode { return e.mode }

// Add accepts a textual clause over atoms vN, matching §6.2's
// `add(clause_text)`. Four shapes are understood, each the direct
// textual form original_source's actions emit:
//
//	"{v1; v2; ...}."        declares atoms (no constraint)
//	":- L1, L2, ..."        integrity constraint: forbids L1∧L2∧...
//	"H :- L1, L2, ..."      definite rule: forbids L1∧...∧¬H
//	"H."                    fact: forbids ¬H
//
// where each Li or H is "vN" or "not vN".
func (e *Enumerator) Add(clauseText string) error {
	for _, raw := range strings.Split(clauseText, "\n") {
		line := strings.TrimSpace(raw)
		line = strings.TrimSuffix(line, ".")
		if line == "" {
			continue
		}
		if err := e.parseLine(line); err != nil {
			return errors.Wrap(err, "solver: parsing clause")
		}
	}
	return nil
}

func (e *Enumerator) parseLine(line string) error {
	if strings.HasPrefix(line, "{") {
		body := strings.Trim(line, "{}")
		for _, tok := range strings.Split(body, ";") {
			if lit, ok := parseAtomToken(strings.TrimSpace(tok)); ok {
				e.atoms[lit.atom] = struct{}{}
			}
		}
		return nil
	}

	if idx := strings.Index(line, ":-"); idx >= 0 {
		head := strings.TrimSpace(line[:idx])
		body := strings.TrimSpace(line[idx+2:])
		lits, err := parseLiteralList(body)
		if err != nil {
			return err
		}
		e.registerAtoms(lits)
		if head == "" {
			e.clauses = append(e.clauses, forbidden(lits))
			return nil
		}
		headLit, ok := parseAtomToken(head)
		if !ok {
			return fmt.Errorf("invalid rule head %q", head)
		}
		e.atoms[headLit.atom] = struct{}{}
		clause := append(append([]literal{}, lits...), literal{atom: headLit.atom, pos: !headLit.pos})
		e.clauses = append(e.clauses, forbidden(clause))
		return nil
	}

	lit, ok := parseAtomToken(line)
	if !ok {
		return fmt.Errorf("unrecognized clause %q", line)
	}
	e.atoms[lit.atom] = struct{}{}
	e.clauses = append(e.clauses, forbidden{{atom: lit.atom, pos: !lit.pos}})
	return nil
}

func (e *Enumerator) registerAtoms(lits []literal) {
	for _, l := range lits {
		e.atoms[l.atom] = struct{}{}
	}
}

func parseLiteralList(body string) ([]literal, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	parts := strings.Split(body, ",")
	out := make([]literal, 0, len(parts))
	for _, p := range parts {
		lit, ok := parseAtomToken(strings.TrimSpace(p))
		if !ok {
			return nil, fmt.Errorf("invalid literal %q", p)
		}
		out = append(out, lit)
	}
	return out, nil
}

func parseAtomToken(tok string) (literal, bool) {
	pos := true
	if strings.HasPrefix(tok, "not ") {
		pos = false
		tok = strings.TrimSpace(strings.TrimPrefix(tok, "not "))
	}
	if !strings.HasPrefix(tok, "v") {
		return literal{}, false
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil {
		return literal{}, false
	}
	return literal{atom: n, pos: pos}, true
}

// Restrict adds a clause forbidding the given pattern, syntactic sugar
// over Add (§6.2). When Halved is false, handle h lowers to atom v{h}
// (fixed-point encoding, §4.6.1); when true, it lowers to the pair
// v{2h}/v{2h+1} (trap-space encoding, §4.6.2).
func (e *Enumerator) Restrict(p boolnet.Pattern) {
	var lits []literal
	for _, h := range p.FixedHandles() {
		val, ok := p.Get(boolnet.Handle(h))
		if !ok {
			continue
		}
		if !e.Halved {
			lits = append(lits, literal{atom: h, pos: val})
		} else if val {
			lits = append(lits, literal{atom: 2 * h, pos: true})
		} else {
			lits = append(lits, literal{atom: 2*h + 1, pos: true})
		}
	}
	e.registerAtoms(lits)
	e.clauses = append(e.clauses, forbidden(lits))
}

// assignment is one candidate Boolean valuation over every known atom,
// indexed by atom id.
type assignment map[int]bool

func (e *Enumerator) satisfies(a assignment) bool {
	for _, c := range e.clauses {
		if clauseHolds(c, a) {
			return false
		}
	}
	return true
}

func clauseHolds(c forbidden, a assignment) bool {
	for _, l := range c {
		if a[l.atom] != l.pos {
			return false
		}
	}
	return true
}

// Results is the lazy, pull-based solution sequence of §6.2. Callers may
// Close() to stop early; Close is always safe to call more than once.
type Results struct {
	halved bool
	ch     <-chan boolnet.Pattern
	cancel context.CancelFunc
}

// SetHalved records the halved flag on this result sequence, mirroring
// §6.2's `set_halved()` marker. Solutions are decoded with the
// enumerator's Halved field as it was when Solve was called; the flag
// recorded here does not change how solutions decode.
func (r *Results) SetHalved(b bool) { r.halved = b }

// Next pulls the next solution. ok is false once the sequence is
// exhausted.
func (r *Results) Next() (boolnet.Pattern, bool) {
	p, ok := <-r.ch
	return p, ok
}

// Close releases the enumerator's search goroutine. Safe to call even
// after the sequence is exhausted or multiple times.
func (r *Results) Close() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Solve runs the brute-force reference search and returns a lazy result
// sequence. For ModeMAX/ModeMIN, the reference implementation generates
// every satisfying assignment and then filters to the maximal/minimal
// elements of the pattern-containment order — observably equivalent to
// the real solver's domain-recursion heuristic (§4.6.2), even though a
// production ASP backend reaches the same models without materializing
// every assignment first.
func (e *Enumerator) Solve() *Results {
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan boolnet.Pattern)
	go e.run(ctx, out)
	return &Results{halved: e.Halved, ch: out, cancel: cancel}
}

func (e *Enumerator) run(ctx context.Context, out chan<- boolnet.Pattern) {
	defer close(out)
	atomIDs := make([]int, 0, len(e.atoms))
	for a := range e.atoms {
		atomIDs = append(atomIDs, a)
	}

	var all []boolnet.Pattern
	var walk func(i int, a assignment)
	walk = func(i int, a assignment) {
		if i == len(atomIDs) {
			if e.satisfies(a) {
				all = append(all, assignmentToPattern(a, e.Halved))
			}
			return
		}
		atom := atomIDs[i]
		for _, v := range [2]bool{false, true} {
			a[atom] = v
			walk(i+1, a)
		}
		delete(a, atom)
	}
	walk(0, assignment{})

	switch e.mode {
	case ModeMAX:
		all = maximalPatterns(all)
	case ModeMIN:
		all = minimalPatterns(all)
	}

	for _, p := range all {
		select {
		case <-ctx.Done():
			log.Debug("solve: consumer stopped early")
			return
		case out <- p:
		}
	}
}

func assignmentToPattern(a assignment, halved bool) boolnet.Pattern {
	p := boolnet.NewPattern()
	if !halved {
		for atom, v := range a {
			p.Set(boolnet.Handle(atom), v)
		}
		return p
	}
	for atom, v := range a {
		if !v {
			continue
		}
		h := atom / 2
		if atom%2 == 0 {
			p.Set(boolnet.Handle(h), true)
		} else {
			p.Set(boolnet.Handle(h), false)
		}
	}
	return p
}

func maximalPatterns(ps []boolnet.Pattern) []boolnet.Pattern {
	var out []boolnet.Pattern
	for i, p := range ps {
		maximal := true
		for j, q := range ps {
			if i == j {
				continue
			}
			if q.Contains(p) && !p.Contains(q) {
				maximal = false
				break
			}
		}
		if maximal {
			out = append(out, p)
		}
	}
	return out
}

func minimalPatterns(ps []boolnet.Pattern) []boolnet.Pattern {
	var out []boolnet.Pattern
	for i, p := range ps {
		minimal := true
		for j, q := range ps {
			if i == j {
				continue
			}
			if p.Contains(q) && !q.Contains(p) {
				minimal = false
				break
			}
		}
		if minimal {
			out = append(out, p)
		}
	}
	return out
}
