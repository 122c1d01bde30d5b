package boolnet

import (
	"fmt"
	"regexp"

	"github.com/qdyn/boolnet/internal/logging"
)

var log = logging.For("registry")

// nameRe enforces spec §3's naming rule: names start with a letter or
// underscore and continue with letters, digits, or underscores.
var nameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Handle is an opaque, monotonically allocated identifier for one
// (component, threshold) pair. Handles are never reused; the teacher's
// variable.go assigns similarly opaque integer IDs to FDVariables and
// never compacts them on removal, which is exactly the allocator shape
// spec §3 and §9 ("Registry growth without handle reuse") ask for.
type Handle int

// Invalid is the sentinel Handle returned when allocation or lookup fails.
// It is not Handle's zero value (0, a valid handle).
const Invalid Handle = -1

// componentInfo tracks one component's ordered list of threshold handles.
type componentInfo struct {
	name    string
	handles []Handle // index i holds the handle for threshold i+1
}

// varInfo records which (component, threshold) a handle denotes.
type varInfo struct {
	component string
	threshold int
}

// Registry allocates variable handles for components and multi-valued
// thresholds, and maps names to handles and back. It is the sole owner
// of naming and handle-allocation invariants; everything else in the
// module (Expression, RuleBook, analyses) only ever holds a Handle.
//
// A Registry outlives every Expression, Pattern, and analysis built from
// it (§3 "Lifecycles"); analyses borrow it immutably for their duration
// (§5), and only modifiers (perturbation, rename, buffering - out of
// core scope per §9) mutate it.
type Registry struct {
	byHandle   []varInfo
	components map[string]*componentInfo
	order      []string // component insertion order
	names      map[string]Handle
	version    int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]*componentInfo),
		names:      make(map[string]Handle),
	}
}

// Version returns the structural-change counter required by §3: it
// increases on any structural change (handle allocation, rename), so
// downstream consumers can detect registry-level changes. RuleBook's
// derived-rule cache does not read it: that cache is keyed by the
// rulebook's own version only, so registry changes do not invalidate it.
func (r *Registry) Version() int { return r.version }

func (r *Registry) bump() {
	r.version++
	log.WithField("version", r.version).Debug("registry structural change")
}

// ensureValidName validates a component name against spec §3's naming rule.
func ensureValidName(name string) error {
	if !nameRe.MatchString(name) {
		return ErrInvalidName(name)
	}
	return nil
}

// Ensure returns the handle for the Boolean (threshold-1) variable of
// component name, allocating the component and its first threshold if
// this is the first reference. This is the contract parsers call (§6.1).
func (r *Registry) Ensure(name string) (Handle, error) {
	return r.EnsureThresholdByName(name, 1)
}

// EnsureThresholdByName returns the handle for component name at the
// given threshold, allocating any component, and any threshold up to
// and including the requested one, that does not yet exist. Thresholds
// must be allocated in order starting at 1, mirroring how the original
// lomak parser walks assignments in ascending target order
// (original_source/src/func/variables.rs).
func (r *Registry) EnsureThresholdByName(name string, threshold int) (Handle, error) {
	if threshold < 1 || threshold > 9 {
		return Invalid, ErrGeneric("threshold %d out of range [1,9] for %q", threshold, name)
	}
	ci, ok := r.components[name]
	if !ok {
		if err := ensureValidName(name); err != nil {
			return Invalid, err
		}
		ci = &componentInfo{name: name}
		r.components[name] = ci
		r.order = append(r.order, name)
	}
	for len(ci.handles) < threshold {
		h := Handle(len(r.byHandle))
		t := len(ci.handles) + 1
		r.byHandle = append(r.byHandle, varInfo{component: name, threshold: t})
		ci.handles = append(ci.handles, h)
		r.names[extendedName(name, t)] = h
		if t == 1 {
			r.names[name] = h
		}
		log.WithField("component", name).WithField("threshold", t).Debug("allocated handle")
		r.bump()
	}
	return ci.handles[threshold-1], nil
}

// EnsureThreshold is the (handle, threshold) variant of EnsureThresholdByName
// used once a component's Boolean handle is already known, matching the
// `ensure_threshold(h, v)` contract parsers call per §6.1.
func (r *Registry) EnsureThreshold(h Handle, threshold int) (Handle, error) {
	info, ok := r.lookup(h)
	if !ok {
		return Invalid, ErrUnknownComponent(fmt.Sprintf("handle %d", h))
	}
	return r.EnsureThresholdByName(info.component, threshold)
}

func extendedName(component string, threshold int) string {
	if threshold == 1 {
		return component
	}
	return fmt.Sprintf("%s:%d", component, threshold)
}

func (r *Registry) lookup(h Handle) (varInfo, bool) {
	if h < 0 || int(h) >= len(r.byHandle) {
		return varInfo{}, false
	}
	return r.byHandle[h], true
}

// Name renders a handle as its registry name (the VariableNamer capability
// of §6.1, extended here to be a first-class method since the core needs
// it for Expression.Format as well as for writers).
func (r *Registry) Name(h Handle) string {
	info, ok := r.lookup(h)
	if !ok {
		return fmt.Sprintf("?%d", h)
	}
	return extendedName(info.component, info.threshold)
}

// Handle looks up a handle by its (possibly extended) name.
func (r *Registry) Handle(name string) (Handle, bool) {
	h, ok := r.names[name]
	return h, ok
}

// ComponentHandle returns the Boolean (threshold-1) handle for a component
// name, without allocating. Ok is false if the component is unknown.
func (r *Registry) ComponentHandle(name string) (Handle, bool) {
	ci, ok := r.components[name]
	if !ok || len(ci.handles) == 0 {
		return Invalid, false
	}
	return ci.handles[0], true
}

// ComponentHandles returns every handle belonging to component name, in
// threshold order. This is the "first_handle/handle_count" capability
// noted from original_source/src/func/variables.rs, reshaped into a
// direct slice since Go has no cheap zero-copy subrange type here.
func (r *Registry) ComponentHandles(name string) []Handle {
	ci, ok := r.components[name]
	if !ok {
		return nil
	}
	out := make([]Handle, len(ci.handles))
	copy(out, ci.handles)
	return out
}

// Components returns component names in insertion order.
func (r *Registry) Components() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the total number of allocated handles.
func (r *Registry) Len() int { return len(r.byHandle) }

// Rename changes a component's name without renumbering its handles,
// matching original_source/src/command/rename.rs's scope. It bumps the
// registry's own version counter; RuleBook is unaffected by rename since
// it keys its storage by each component's stable Boolean handle rather
// than by name (rulebook.go).
func (r *Registry) Rename(oldName, newName string) error {
	if err := ensureValidName(newName); err != nil {
		return err
	}
	ci, ok := r.components[oldName]
	if !ok {
		return ErrUnknownComponent(oldName)
	}
	if _, exists := r.components[newName]; exists {
		return ErrNameAlreadyExists(newName)
	}
	delete(r.components, oldName)
	for i, n := range r.order {
		if n == oldName {
			r.order[i] = newName
			break
		}
	}
	ci.name = newName
	r.components[newName] = ci
	for t, h := range ci.handles {
		delete(r.names, extendedName(oldName, t+1))
		r.names[extendedName(newName, t+1)] = h
		if t == 0 {
			delete(r.names, oldName)
			r.names[newName] = h
		}
		r.byHandle[h].component = newName
	}
	r.bump()
	return nil
}
