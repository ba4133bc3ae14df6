package acornima

// ScopeFlags is a bit-set of the scope's kind, matching spec.md §3's
// "Scope frame" field list. Bit-set flags on small stack-allocated structs
// follows the "avoid heap allocation per block" guidance of spec.md §9.
type ScopeFlags uint16

const (
	ScopeTop ScopeFlags = 1 << iota
	ScopeFunction
	ScopeBlock
	ScopeCatch
	ScopeWith
	ScopeModule
	ScopeArrow
	ScopeAsync
	ScopeGenerator
	ScopeClass
	ScopeSwitch
	ScopeLoop
)

func (f ScopeFlags) has(bit ScopeFlags) bool { return f&bit != 0 }

// BindingKind classifies a declared name, per spec.md §4.4.
type BindingKind int

const (
	BindVar BindingKind = iota
	BindLexical
	BindFunction
	BindSimpleCatch
	BindOutside
)

// Scope is one stack frame of the Scope/Declaration Tracker (spec.md §3,
// §4.4). Frames are pushed on entering function/block/catch/with/class
// bodies and popped on exit; the Tracker below owns the stack.
type Scope struct {
	Flags ScopeFlags

	lexical     map[string]bool
	varNames    map[string]bool
	functions   map[string]bool
	simpleCatch string // name of a simple catch binding, if any; "" otherwise

	labels []Label
}

// Label records one entry of the enclosing label set (spec.md §4.3,
// "Labeled statements").
type Label struct {
	Name      string
	IsLoop    bool
	Statement bool
}

func newScope(flags ScopeFlags) *Scope {
	return &Scope{
		Flags:    flags,
		lexical:  map[string]bool{},
		varNames: map[string]bool{},
		functions: map[string]bool{},
	}
}

// Tracker is the Scope/Declaration Tracker component (spec.md §2.3, §4.4):
// a stack of Scope frames, with declare-time collision checking.
type Tracker struct {
	stack []*Scope
	src   []byte
}

// NewTracker returns a Tracker seeded with a single top-level frame.
func NewTracker(src []byte, moduleMode bool) *Tracker {
	flags := ScopeTop | ScopeFunction
	if moduleMode {
		flags |= ScopeModule
	}
	t := &Tracker{src: src}
	t.stack = append(t.stack, newScope(flags))
	return t
}

// Push opens a new scope frame.
func (t *Tracker) Push(flags ScopeFlags) *Scope {
	s := newScope(flags)
	t.stack = append(t.stack, s)
	return s
}

// Pop closes the innermost scope frame.
func (t *Tracker) Pop() {
	t.stack = t.stack[:len(t.stack)-1]
}

// Current returns the innermost scope frame.
func (t *Tracker) Current() *Scope { return t.stack[len(t.stack)-1] }

// nearestVarScope returns the nearest enclosing scope that var bindings
// hoist into: the nearest function, top-level, or module frame (spec.md
// §4.4: "var propagates up to the enclosing var scope").
func (t *Tracker) nearestVarScope() *Scope {
	for i := len(t.stack) - 1; i >= 0; i-- {
		s := t.stack[i]
		if s.Flags.has(ScopeFunction) || s.Flags.has(ScopeTop) || s.Flags.has(ScopeModule) {
			return s
		}
	}
	return t.stack[0]
}

// Declare records name as bound with the given kind in the current scope,
// applying the collision rules of spec.md §4.4. offset is used to
// construct a diagnostic when a collision is found.
func (t *Tracker) Declare(name string, kind BindingKind, offset int) *Error {
	cur := t.Current()
	switch kind {
	case BindLexical:
		if cur.lexical[name] || cur.varNames[name] || cur.functions[name] || cur.simpleCatch == name {
			return t.redeclared(name, offset)
		}
		cur.lexical[name] = true
	case BindSimpleCatch:
		if cur.lexical[name] {
			return t.redeclared(name, offset)
		}
		cur.simpleCatch = name
		// var of the same name is permitted (Annex B), so it is not recorded
		// as a var-scope collision source here.
	case BindFunction:
		// Checked like a lexical binding. The parser declares every
		// function declaration's name with BindVar (parseFunctionDeclaration)
		// and does not resolve Annex B eligibility, so only direct Tracker
		// callers reach this case.
		if cur.lexical[name] || cur.varNames[name] {
			return t.redeclared(name, offset)
		}
		cur.lexical[name] = true
		cur.functions[name] = true
	case BindVar:
		target := t.nearestVarScope()
		// a var must not collide with a lexical binding in any scope
		// between the declaration site and (but not crossing) the
		// enclosing var scope.
		for i := len(t.stack) - 1; i >= 0; i-- {
			s := t.stack[i]
			if s.lexical[name] && !(s.simpleCatch == name) {
				return t.redeclared(name, offset)
			}
			if s == target {
				break
			}
		}
		target.varNames[name] = true
	case BindOutside:
		// declared in an enclosing construct (e.g. a catch parameter);
		// tracked for reference only, never conflicts.
	}
	return nil
}

func (t *Tracker) redeclared(name string, offset int) *Error {
	return NewError(t.src, offset, ErrDuplicateBinding, "Identifier '%s' has already been declared", name)
}

// PushLabel adds a label to the innermost labelable statement's set.
func (t *Tracker) PushLabel(name string, isLoop bool) {
	cur := t.Current()
	cur.labels = append(cur.labels, Label{Name: name, IsLoop: isLoop, Statement: true})
}

// HasLabel reports whether name labels an enclosing statement within the
// current function (labels do not cross function boundaries).
func (t *Tracker) HasLabel(name string) (Label, bool) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		s := t.stack[i]
		for _, l := range s.labels {
			if l.Name == name {
				return l, true
			}
		}
		if s.Flags.has(ScopeFunction) || s.Flags.has(ScopeTop) {
			break
		}
	}
	return Label{}, false
}
