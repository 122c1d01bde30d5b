package boolnet

// Model bundles a Registry with its RuleBook (§3 "Data flow"). It is the
// single object parsers, modifiers, and analyses are handed; the
// registry outlives every expression and analysis built against it, and
// the rulebook is mutated only by modifiers (§5).
type Model struct {
	Registry *Registry
	Rules    *RuleBook
}

// NewModel returns an empty model with a fresh registry and rulebook.
func NewModel() *Model {
	reg := NewRegistry()
	return &Model{Registry: reg, Rules: NewRuleBook(reg)}
}

// Ensure allocates (if needed) the Boolean handle for component name,
// satisfying the `ensure(name)` parser contract of §6.1.
func (m *Model) Ensure(name string) (Handle, error) {
	return m.Registry.Ensure(name)
}

// EnsureThreshold allocates (if needed) the handle for h's component at
// threshold v, satisfying the `ensure_threshold(h, v)` parser contract.
func (m *Model) EnsureThreshold(h Handle, v int) (Handle, error) {
	return m.Registry.EnsureThreshold(h, v)
}

// PushRule records that reaching threshold targetV of the component
// owning targetH is governed by formula, satisfying the
// `push_rule(target_h, target_v, formula)` parser contract of §6.1.
func (m *Model) PushRule(targetH Handle, targetV int, formula Expression) error {
	info, ok := m.Registry.lookup(targetH)
	if !ok {
		return ErrUnknownComponent(m.Registry.Name(targetH))
	}
	m.Rules.PushRule(info.component, targetV, formula)
	return nil
}

// Name resolves h to its registry name, satisfying VariableNamer.
func (m *Model) Name(h Handle) string { return m.Registry.Name(h) }

// AllPrimes returns every variable's (PI⁺, PI⁻) pair, derived from the
// current rulebook (§4.6, original_source's per-rulebook primes action).
func (m *Model) AllPrimes() map[Handle]VariablePrimes {
	return m.Rules.AllPrimes()
}
