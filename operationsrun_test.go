package dfamin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	a := exampleAutomaton(t)

	tests := []struct {
		word []string
		want bool
	}{
		{nil, false},
		{[]string{"a"}, false},
		{[]string{"a", "a"}, true},
		{[]string{"b", "b"}, true},
		{[]string{"a", "b", "b"}, true},
		{[]string{"a", "b", "a", "b"}, false},
		{[]string{"a", "a", "b", "a"}, true},
		{[]string{"a", "c"}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Run(a, tt.word), "word %v", tt.word)
	}
}

func TestRun_MissingTransition(t *testing.T) {
	a := defaultAutomata.MakeString([]string{"x", "y"}, []string{"x", "y"})

	assert.True(t, Run(a, []string{"x", "y"}))
	assert.False(t, Run(a, []string{"y"}))
	assert.False(t, Run(a, []string{"x", "y", "x"}))
}

func TestRunString(t *testing.T) {
	a := defaultAutomata.MakeString(nil, []string{"é", "t", "é"})

	assert.True(t, RunString(a, "été"))
	assert.False(t, RunString(a, "ete"))
	assert.False(t, RunString(a, ""))
}
