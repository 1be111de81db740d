package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroundFormulaSatisfiable(t *testing.T) {
	ctx := NewContext()
	ctx.Assert(Eq(Var("x"), Int(5)))
	ctx.Assert(Le(Var("x"), Int(12)))

	sat, err := ctx.Check()

	assert := assert.New(t)
	assert.NoError(err)
	assert.True(sat)
}

func TestContradictionUnsatisfiable(t *testing.T) {
	ctx := NewContext()
	ctx.Assert(Eq(Var("x"), Int(25)))
	ctx.Assert(Le(Var("x"), Int(12)))

	sat, err := ctx.Check()

	assert := assert.New(t)
	assert.NoError(err)
	assert.False(sat)
}

func TestNegatedAliasUnsatWhenPredicateHolds(t *testing.T) {
	ctx := NewContext()
	ctx.Assert(Eq(Var("interval"), Int(7)))
	ctx.Assert(Iff("acceptable", Or(
		Le(Var("interval"), Int(12)),
		Eq(Var("interval"), Int(19)),
	)))
	ctx.Assert(Not(Bool("acceptable")))

	sat, err := ctx.Check()

	assert := assert.New(t)
	assert.NoError(err)
	assert.False(sat)
}

func TestNegatedAliasSatWhenPredicateFails(t *testing.T) {
	ctx := NewContext()
	ctx.Assert(Eq(Var("interval"), Int(25)))
	ctx.Assert(Iff("acceptable", Or(
		Le(Var("interval"), Int(12)),
		Eq(Var("interval"), Int(19)),
	)))
	ctx.Assert(Not(Bool("acceptable")))

	sat, err := ctx.Check()

	assert := assert.New(t)
	assert.NoError(err)
	assert.True(sat)
}

func TestDerivedVariableBinding(t *testing.T) {
	ctx := NewContext()
	ctx.Assert(Eq(Var("n1"), Int(60)))
	ctx.Assert(Eq(Var("n2"), Int(79)))
	ctx.Assert(Eq(Var("interval"), Abs(Sub(Var("n2"), Var("n1")))))
	ctx.Assert(Eq(Var("interval"), Int(19)))

	sat, err := ctx.Check()

	assert := assert.New(t)
	assert.NoError(err)
	assert.True(sat)
}

func TestModNormalizesNegatives(t *testing.T) {
	ctx := NewContext()
	ctx.Assert(Eq(Var("a"), Int(10)))
	ctx.Assert(Eq(Var("b"), Int(1)))
	ctx.Assert(Eq(Var("iv"), Mod(Sub(Var("b"), Var("a")), 12)))
	ctx.Assert(Eq(Var("iv"), Int(3)))

	sat, err := ctx.Check()

	assert := assert.New(t)
	assert.NoError(err)
	assert.True(sat)
}

func TestUnboundVariableIsAnError(t *testing.T) {
	ctx := NewContext()
	ctx.Assert(Le(Var("x"), Int(12)))

	_, err := ctx.Check()
	assert.Error(t, err)
}

func TestUndefinedPredicateIsAnError(t *testing.T) {
	ctx := NewContext()
	ctx.Assert(Not(Bool("missing")))

	_, err := ctx.Check()
	assert.Error(t, err)
}

func TestContextsAreIsolated(t *testing.T) {
	first := NewContext()
	first.Assert(Eq(Var("x"), Int(5)))
	sat, err := first.Check()

	assert := assert.New(t)
	assert.NoError(err)
	assert.True(sat)

	// a binding from one context must not leak into another
	second := NewContext()
	second.Assert(Le(Var("x"), Int(12)))
	_, err = second.Check()
	assert.Error(err)
}

func TestTrueAndFalse(t *testing.T) {
	ctx := NewContext()
	ctx.Assert(True())
	sat, err := ctx.Check()

	assert := assert.New(t)
	assert.NoError(err)
	assert.True(sat)

	ctx = NewContext()
	ctx.Assert(False())
	sat, err = ctx.Check()
	assert.NoError(err)
	assert.False(sat)
}
