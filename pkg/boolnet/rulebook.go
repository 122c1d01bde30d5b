package boolnet

import "github.com/qdyn/boolnet/internal/logging"

var rblog = logging.For("rulebook")

// Assign pairs a target threshold with the formula whose truth drives the
// component toward it, mirroring original_source/src/model/rule.rs's
// Assign struct.
type Assign struct {
	Target  int
	Formula Expression
}

// ComponentRules is the ordered list of assignments for one component
// (§3 "RuleBook"), evaluation order preserved.
type ComponentRules struct {
	assignments []Assign
}

// Assignments returns the component's assignments in evaluation order.
// Callers must not mutate the returned slice.
func (cr *ComponentRules) Assignments() []Assign {
	return cr.assignments
}

// Push appends an assignment (target, formula), matching the
// `push_rule(target_h, target_v, formula)` contract parsers call (§6.1).
func (cr *ComponentRules) Push(target int, formula Expression) {
	cr.assignments = append(cr.assignments, Assign{Target: target, Formula: formula})
}

func (cr *ComponentRules) clear() { cr.assignments = nil }

// Lock clears assignments and pushes (v, TRUE) when v > 0, forcing the
// component to threshold v regardless of its regulators (§4.5).
func (cr *ComponentRules) Lock(v int) {
	cr.clear()
	if v > 0 {
		cr.Push(v, True)
	}
}

// Restrict clamps every assignment's target into [min,max]: when min>0 a
// basal (min, TRUE) replaces every assignment at or below min, and any
// assignment above max is rewritten down to max (§4.5). When max<=min
// this degenerates to Lock(min).
func (cr *ComponentRules) Restrict(min, max int) {
	if max <= min {
		cr.Lock(min)
		return
	}
	if min > 0 {
		kept := cr.assignments[:0:0]
		for _, a := range cr.assignments {
			if a.Target > min {
				kept = append(kept, a)
			}
		}
		cr.assignments = append([]Assign{{Target: min, Formula: True}}, kept...)
	}
	for i := range cr.assignments {
		if cr.assignments[i].Target > max {
			cr.assignments[i].Target = max
		}
	}
}

// DeriveRule computes the Boolean rule for threshold t* per §4.5:
//
//	OR{ fᵢ | tᵢ ≥ t* }  AND  AND{ ¬fⱼ | tⱼ < t* }
//
// simplified before being returned.
func (cr *ComponentRules) DeriveRule(t int) Expression {
	var orTerms, andTerms []Expression
	for _, a := range cr.assignments {
		if a.Target >= t {
			orTerms = append(orTerms, a.Formula)
		} else {
			andTerms = append(andTerms, Not(a.Formula))
		}
	}
	disj := Or(orTerms...)
	conj := And(andTerms...)
	combined := And(disj, conj)
	if s, changed := Simplify(combined); changed {
		return s
	}
	return combined
}

// RuleBook maps components to their ComponentRules (§3), keyed by each
// component's Boolean (threshold-1) handle rather than its display name.
// original_source/src/model/rule.rs:24-26 keys Rules.rules by the numeric
// uid/handle precisely so a rename never orphans a component's rules;
// keying by name here would let Registry.Rename (registry.go, which only
// ever touches the registry's own name↔handle maps, never the rulebook)
// silently strand previously-pushed rules under the old name. A
// component's Boolean handle is allocated once and never reused or
// renumbered (registry.go's Handle docs), so it is the stable identity
// to key by even though names can change.
//
// A version counter bumps on every structural change (Ensure/Push/Lock/
// Restrict) and invalidates the per-variable derived-rule cache, the way
// original_source/src/model/rule.rs's Rules/ModelCache pair does and the
// way the teacher's version.go tracks a monotonically bumped counter.
type RuleBook struct {
	reg     *Registry
	rules   map[Handle]*ComponentRules
	version int
	cache   map[Handle]cachedRules
}

type cachedRules struct {
	version  int
	byHandle map[Handle]Expression
}

// NewRuleBook returns an empty rulebook bound to reg for threshold lookups.
func NewRuleBook(reg *Registry) *RuleBook {
	return &RuleBook{reg: reg, rules: make(map[Handle]*ComponentRules)}
}

// Version returns the current structural-change counter.
func (rb *RuleBook) Version() int { return rb.version }

// componentKey resolves name to the stable component handle RuleBook
// keys its storage by. name must already be registered: RuleBook never
// allocates registry entries itself, since the registry is the sole
// owner of naming and handle allocation (registry.go).
func (rb *RuleBook) componentKey(name string) (Handle, bool) {
	return rb.reg.ComponentHandle(name)
}

// Ensure returns (allocating if needed) the ComponentRules for component
// name, and bumps the version counter — mirroring Rules::ensure in
// original_source/src/model/rule.rs, which registers a change on every
// call regardless of whether the component already existed, since the
// caller's very next step is always a mutation. name must already be
// registered with the Registry this rulebook was built from.
func (rb *RuleBook) Ensure(name string) *ComponentRules {
	key, ok := rb.componentKey(name)
	if !ok {
		rblog.WithField("component", name).Warn("rulebook ensure called for unregistered component")
		return &ComponentRules{}
	}
	cr, ok := rb.rules[key]
	if !ok {
		cr = &ComponentRules{}
		rb.rules[key] = cr
	}
	rb.bump()
	return cr
}

// Get returns the ComponentRules for name, or nil if none were ever
// registered (read-only; does not allocate or bump the version).
func (rb *RuleBook) Get(name string) *ComponentRules {
	key, ok := rb.componentKey(name)
	if !ok {
		return nil
	}
	return rb.rules[key]
}

// PushRule is the `push_rule(target_h, target_v, formula)` contract of
// §6.1. componentName is the component owning target_h.
func (rb *RuleBook) PushRule(componentName string, targetThreshold int, formula Expression) {
	rb.Ensure(componentName).Push(targetThreshold, formula)
}

// Lock forces component name to threshold v (§4.5, the perturbation
// modifier's `--ko`/`--ki` described referentially in §6.3).
func (rb *RuleBook) Lock(name string, v int) {
	rb.Ensure(name).Lock(v)
}

// Restrict clamps component name's activity into [min,max] (§4.5).
func (rb *RuleBook) Restrict(name string, min, max int) {
	rb.Ensure(name).Restrict(min, max)
}

func (rb *RuleBook) bump() {
	rb.version++
	rblog.WithField("version", rb.version).Debug("rulebook structural change")
}

// RuleFor returns the derived Boolean rule for handle h, reading through
// a version-keyed cache per component (§4.5's "per-rulebook cache keyed
// by version").
func (rb *RuleBook) RuleFor(h Handle) Expression {
	info, ok := rb.reg.lookup(h)
	if !ok {
		return False
	}
	key, ok := rb.componentKey(info.component)
	if !ok {
		return False
	}
	cached, ok := rb.cache[key]
	if !ok || cached.version != rb.version {
		cached = cachedRules{version: rb.version, byHandle: make(map[Handle]Expression)}
		if rb.cache == nil {
			rb.cache = make(map[Handle]cachedRules)
		}
		rb.cache[key] = cached
	}
	if e, ok := cached.byHandle[h]; ok {
		return e
	}
	cr := rb.rules[key]
	var rule Expression
	if cr == nil {
		rule = False
	} else {
		rule = cr.DeriveRule(info.threshold)
	}
	cached.byHandle[h] = rule
	return rule
}

// AllPrimes returns, for every allocated variable handle, the pair of
// prime-implicant antichains (PI⁺ for ¬v∧f_v, PI⁻ for v∧¬f_v) used by the
// fixed-point encoding (§4.6.1). This is the per-variable-over-the-whole-
// rulebook shape shown by original_source/src/model/actions/primes.rs and
// src/command/primes.rs, generalizing spec.md's single-formula primitive.
func (rb *RuleBook) AllPrimes() map[Handle]VariablePrimes {
	out := make(map[Handle]VariablePrimes, rb.reg.Len())
	for h := Handle(0); int(h) < rb.reg.Len(); h++ {
		f := rb.RuleFor(h)
		out[h] = VariablePrimes{
			Stabilizing:   PrimeImplicants(And(Not(Atom(h)), f)),
			Destabilizing: PrimeImplicants(And(Atom(h), Not(f))),
		}
	}
	return out
}

// VariablePrimes bundles the two prime-implicant antichains the
// fixed-point encoding needs for one variable (§4.6.1).
type VariablePrimes struct {
	// Stabilizing is PI(¬v ∧ f_v): a witness pattern here means v is
	// about to turn on.
	Stabilizing Implicants
	// Destabilizing is PI(v ∧ ¬f_v): a witness pattern here means v is
	// about to turn off.
	Destabilizing Implicants
}
