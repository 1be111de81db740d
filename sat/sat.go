// Package sat is a tiny satisfiability checker for ground constraint
// formulas: integer variables pinned by equality assertions, boolean
// aliases defined by equivalence, and a Check that decides whether all
// assertions hold at once. Each query gets its own Context; contexts are
// never shared across facts, so unrelated constraints cannot leak
// between checks.
package sat

import "fmt"

// Term is an integer-valued expression.
type Term interface{ term() }

type intConst int

type intVar string

type abs struct{ x Term }

type sub struct{ a, b Term }

type mod struct {
	x Term
	n int
}

func (intConst) term() {}
func (intVar) term()   {}
func (abs) term()      {}
func (sub) term()      {}
func (mod) term()      {}

func Int(v int) Term { return intConst(v) }

func Var(name string) Term { return intVar(name) }

func Abs(x Term) Term { return abs{x: x} }

func Sub(a, b Term) Term { return sub{a: a, b: b} }

func Mod(x Term, n int) Term { return mod{x: x, n: n} }

// Formula is a boolean-valued expression.
type Formula interface{ formula() }

type eq struct{ a, b Term }

type le struct{ a, b Term }

type boolVar string

type not struct{ f Formula }

type or []Formula

type and []Formula

// iff asserts that a boolean alias is equivalent to a formula. It is
// only meaningful as a top-level assertion.
type iff struct {
	v boolVar
	f Formula
}

func (eq) formula()      {}
func (le) formula()      {}
func (boolVar) formula() {}
func (not) formula()     {}
func (or) formula()      {}
func (and) formula()     {}
func (iff) formula()     {}

// True and False are the empty conjunction and disjunction.
func True() Formula { return and(nil) }

func False() Formula { return or(nil) }

func Eq(a, b Term) Formula { return eq{a: a, b: b} }

func Le(a, b Term) Formula { return le{a: a, b: b} }

func Bool(name string) Formula { return boolVar(name) }

func Not(f Formula) Formula { return not{f: f} }

func Or(fs ...Formula) Formula { return or(fs) }

func And(fs ...Formula) Formula { return and(fs) }

// Iff defines a boolean alias: asserting it makes name stand for f.
func Iff(name string, f Formula) Formula { return iff{v: boolVar(name), f: f} }

// Context holds the assertions of one isolated query.
type Context struct {
	ints    map[intVar]int
	defs    map[boolVar]Formula
	asserts []Formula
}

func NewContext() *Context {
	return &Context{
		ints: make(map[intVar]int),
		defs: make(map[boolVar]Formula),
	}
}

func (c *Context) Assert(f Formula) {
	c.asserts = append(c.asserts, f)
}

// Check reports whether every asserted formula can hold at once. Because
// every integer variable is pinned by an equality assertion before use,
// satisfiability reduces to ordered evaluation: an equality between an
// unbound variable and an evaluable term binds the variable, everything
// else is evaluated under the bindings collected so far. A formula that
// mentions a variable with no binding is an error, not an unsat.
func (c *Context) Check() (bool, error) {
	for _, f := range c.asserts {
		switch a := f.(type) {
		case iff:
			c.defs[a.v] = a.f
		case eq:
			ok, err := c.applyEq(a)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		default:
			ok, err := c.evalFormula(f)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

func (c *Context) applyEq(a eq) (bool, error) {
	if v, isVar := a.a.(intVar); isVar {
		if _, bound := c.ints[v]; !bound {
			val, err := c.evalTerm(a.b)
			if err != nil {
				return false, err
			}
			c.ints[v] = val
			return true, nil
		}
	}
	if v, isVar := a.b.(intVar); isVar {
		if _, bound := c.ints[v]; !bound {
			val, err := c.evalTerm(a.a)
			if err != nil {
				return false, err
			}
			c.ints[v] = val
			return true, nil
		}
	}
	return c.evalFormula(a)
}

func (c *Context) evalTerm(t Term) (int, error) {
	switch x := t.(type) {
	case intConst:
		return int(x), nil
	case intVar:
		v, ok := c.ints[x]
		if !ok {
			return 0, fmt.Errorf("unbound variable %q", string(x))
		}
		return v, nil
	case abs:
		v, err := c.evalTerm(x.x)
		if err != nil {
			return 0, err
		}
		if v < 0 {
			v = -v
		}
		return v, nil
	case sub:
		a, err := c.evalTerm(x.a)
		if err != nil {
			return 0, err
		}
		b, err := c.evalTerm(x.b)
		if err != nil {
			return 0, err
		}
		return a - b, nil
	case mod:
		v, err := c.evalTerm(x.x)
		if err != nil {
			return 0, err
		}
		if x.n == 0 {
			return 0, fmt.Errorf("mod by zero")
		}
		return ((v % x.n) + x.n) % x.n, nil
	default:
		return 0, fmt.Errorf("unknown term %T", t)
	}
}

func (c *Context) evalFormula(f Formula) (bool, error) {
	switch x := f.(type) {
	case eq:
		a, err := c.evalTerm(x.a)
		if err != nil {
			return false, err
		}
		b, err := c.evalTerm(x.b)
		if err != nil {
			return false, err
		}
		return a == b, nil
	case le:
		a, err := c.evalTerm(x.a)
		if err != nil {
			return false, err
		}
		b, err := c.evalTerm(x.b)
		if err != nil {
			return false, err
		}
		return a <= b, nil
	case boolVar:
		def, ok := c.defs[x]
		if !ok {
			return false, fmt.Errorf("undefined predicate %q", string(x))
		}
		return c.evalFormula(def)
	case not:
		v, err := c.evalFormula(x.f)
		if err != nil {
			return false, err
		}
		return !v, nil
	case or:
		for _, alt := range x {
			v, err := c.evalFormula(alt)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}
		return false, nil
	case and:
		for _, conj := range x {
			v, err := c.evalFormula(conj)
			if err != nil {
				return false, err
			}
			if !v {
				return false, nil
			}
		}
		return true, nil
	case iff:
		return false, fmt.Errorf("iff is only valid as a top-level assertion")
	default:
		return false, fmt.Errorf("unknown formula %T", f)
	}
}
