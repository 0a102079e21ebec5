package dfamin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	base := func() Definition {
		return Definition{
			Alphabet:    []string{"a", "b"},
			States:      []string{"q0", "q1"},
			Start:       "q0",
			Accepting:   []string{"q1"},
			Transitions: []Transition{{"q0", "a", "q1"}, {"q1", "b", "q0"}},
		}
	}

	tests := []struct {
		name     string
		mutate   func(d *Definition)
		wantCode ErrorCode
	}{
		{"valid", func(d *Definition) {}, ""},
		{"start not a state", func(d *Definition) { d.Start = "q9" }, ErrCodeUnknownStart},
		{"no states", func(d *Definition) { d.States = nil; d.Accepting = nil; d.Transitions = nil }, ErrCodeUnknownStart},
		{"accepting not a state", func(d *Definition) { d.Accepting = []string{"q7"} }, ErrCodeUnknownAccepting},
		{"unknown source", func(d *Definition) {
			d.Transitions = append(d.Transitions, Transition{"x", "a", "q0"})
		}, ErrCodeUnknownState},
		{"unknown destination", func(d *Definition) {
			d.Transitions = append(d.Transitions, Transition{"q1", "a", "x"})
		}, ErrCodeUnknownState},
		{"unknown label", func(d *Definition) {
			d.Transitions = append(d.Transitions, Transition{"q1", "c", "q0"})
		}, ErrCodeUnknownSymbol},
		{"nondeterministic", func(d *Definition) {
			d.Transitions = append(d.Transitions, Transition{"q0", "a", "q0"})
		}, ErrCodeNondeterministic},
		{"identical duplicate transition", func(d *Definition) {
			d.Transitions = append(d.Transitions, Transition{"q0", "a", "q1"})
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := base()
			tt.mutate(&def)

			a, err := New(def)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.NotNil(t, a)
				return
			}

			require.Error(t, err)
			assert.Nil(t, a)
			assert.True(t, errors.Is(err, ErrInvalidAutomaton))
			assert.True(t, IsInvalidAutomaton(err))
			assert.Equal(t, tt.wantCode, ErrorCodeOf(err))
		})
	}
}

func TestNew_Dedupe(t *testing.T) {
	a, err := New(Definition{
		Alphabet:    []string{"a", "b", "a"},
		States:      []string{"q0", "q1", "q0"},
		Start:       "q0",
		Accepting:   []string{"q1", "q1"},
		Transitions: []Transition{{"q0", "a", "q1"}, {"q0", "a", "q1"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, a.Alphabet())
	assert.Equal(t, []string{"q0", "q1"}, a.States())
	assert.Equal(t, []string{"q1"}, a.Accepting())
	assert.Equal(t, 1, a.NumTransitions())
}

func TestAutomaton_Accessors(t *testing.T) {
	a := exampleAutomaton(t)

	assert.Equal(t, "q0", a.Start())
	assert.Equal(t, 4, a.NumStates())
	assert.Equal(t, 8, a.NumTransitions())
	assert.True(t, a.IsTotal())
	assert.True(t, a.IsAccept("q3"))
	assert.False(t, a.IsAccept("q0"))
	assert.False(t, a.IsAccept("nope"))
	assert.True(t, a.HasState("q2"))
	assert.False(t, a.HasState("q4"))

	dest, ok := a.Step("q1", "a")
	assert.True(t, ok)
	assert.Equal(t, "q3", dest)
	_, ok = a.Step("q1", "z")
	assert.False(t, ok)
	_, ok = a.Step("zz", "a")
	assert.False(t, ok)

	assert.Equal(t, Transition{"q0", "a", "q1"}, a.Transitions()[0])
	assert.Equal(t, "q0 -a-> q1", a.Transitions()[0].String())
	assert.Contains(t, a.String(), "states=4")
}

func TestAutomaton_AccessorsReturnCopies(t *testing.T) {
	a := exampleAutomaton(t)

	states := a.States()
	states[0] = "mutated"
	alphabet := a.Alphabet()
	alphabet[0] = "mutated"

	assert.Equal(t, "q0", a.States()[0])
	assert.Equal(t, "a", a.Alphabet()[0])
}

func TestAutomaton_DefinitionRoundTrip(t *testing.T) {
	a := exampleAutomaton(t)

	b, err := New(a.Definition())
	require.NoError(t, err)
	assert.Equal(t, a.Definition(), b.Definition())
}

func TestBuilder(t *testing.T) {
	t.Run("first state is start", func(t *testing.T) {
		a, err := NewBuilder().CreateState("x").CreateState("y").Finish()
		require.NoError(t, err)
		assert.Equal(t, "x", a.Start())
		assert.Empty(t, a.Alphabet())
	})

	t.Run("SetStart overrides", func(t *testing.T) {
		a, err := NewBuilder().CreateState("x").CreateState("y").SetStart("y").Finish()
		require.NoError(t, err)
		assert.Equal(t, "y", a.Start())
	})

	t.Run("labels registered in order of use", func(t *testing.T) {
		a, err := NewBuilder().
			CreateState("x").
			AddTransition("x", "b", "x").
			AddTransition("x", "a", "x").
			Finish()
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, a.Alphabet())
	})

	t.Run("SetAccept false clears", func(t *testing.T) {
		a, err := NewBuilder().
			CreateState("x").
			SetAccept("x", true).
			SetAccept("x", false).
			Finish()
		require.NoError(t, err)
		assert.Empty(t, a.Accepting())
	})

	t.Run("missing state fails", func(t *testing.T) {
		_, err := NewBuilder().CreateState("x").AddTransition("x", "a", "y").Finish()
		assert.Equal(t, ErrCodeUnknownState, ErrorCodeOf(err))
	})

	t.Run("empty builder fails", func(t *testing.T) {
		_, err := NewBuilder().Finish()
		assert.Equal(t, ErrCodeUnknownStart, ErrorCodeOf(err))
	})
}

func TestInvalidAutomatonError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *InvalidAutomatonError
		want string
	}{
		{"code only", &InvalidAutomatonError{Code: ErrCodeUnknownStart, Message: "m"}, "UNKNOWN_START: m"},
		{"state", &InvalidAutomatonError{Code: ErrCodeUnknownState, Message: "m", State: "q"}, `UNKNOWN_STATE: m (state="q")`},
		{"symbol", &InvalidAutomatonError{Code: ErrCodeUnknownSymbol, Message: "m", Symbol: "z"}, `UNKNOWN_SYMBOL: m (symbol="z")`},
		{"both", &InvalidAutomatonError{Code: ErrCodeNondeterministic, Message: "m", State: "q", Symbol: "z"}, `NONDETERMINISTIC: m (state="q", symbol="z")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	assert.False(t, IsInvalidAutomaton(errors.New("other")))
	assert.Equal(t, ErrorCode(""), ErrorCodeOf(errors.New("other")))
}
