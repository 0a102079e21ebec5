package codec

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geange/dfamin"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{"xml", "xml", FormatXML, false},
		{"upper case", "XML", FormatXML, false},
		{"yaml", "yaml", FormatYAML, false},
		{"yml alias", "yml", FormatYAML, false},
		{"json", " json ", FormatJSON, false},
		{"unknown", "toml", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("dir/input.XML")
	require.NoError(t, err)
	assert.Equal(t, FormatXML, f)

	f, err = FormatFromPath("out.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFromPath("Makefile")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestReadFile_XMLRootLevel(t *testing.T) {
	a, err := ReadFile(filepath.Join("testdata", "root_level.xml"), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "1"}, a.Alphabet())
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, a.States())
	assert.Equal(t, "A", a.Start())
	assert.Equal(t, []string{"C", "D"}, a.Accepting())
	assert.Equal(t, 10, a.NumTransitions())
}

func TestReadFile_XMLNested(t *testing.T) {
	a, err := ReadFile(filepath.Join("testdata", "nested.xml"), FormatXML)
	require.NoError(t, err)

	assert.Equal(t, "q0", a.Start())
	assert.Equal(t, []string{"q3"}, a.Accepting())
	assert.True(t, a.IsTotal())
}

func TestReadFile_YAML(t *testing.T) {
	fromYAML, err := ReadFile(filepath.Join("testdata", "redundant.yaml"), "")
	require.NoError(t, err)
	fromXML, err := ReadFile(filepath.Join("testdata", "root_level.xml"), "")
	require.NoError(t, err)

	assert.Equal(t, fromXML.Definition(), fromYAML.Definition())
}

func TestReadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "none.xml"), "")
		assert.Error(t, err)
	})

	t.Run("invalid automaton", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		writeString(t, path, "alphabet: [a]\nstates: [s]\nstart: t\n")

		_, err := ReadFile(path, "")
		require.ErrorIs(t, err, dfamin.ErrInvalidAutomaton)
		assert.Equal(t, dfamin.ErrCodeUnknownStart, dfamin.ErrorCodeOf(err))
	})
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		target error
	}{
		{"xml without initial state", FormatXML, `<Automata><States><state name="s"/></States></Automata>`, ErrMalformed},
		{"xml of another type", FormatXML, `<Automata type="NFA"><initialState name="s"/></Automata>`, ErrMalformed},
		{"yaml without start", FormatYAML, "states: [s]\n", ErrMalformed},
		{"json without start", FormatJSON, `{"states": ["s"]}`, ErrMalformed},
		{"unknown format", Format("toml"), "", ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("yaml unknown field", func(t *testing.T) {
		_, err := Decode(strings.NewReader("start: s\nstates: [s]\ninitial: s\n"), FormatYAML)
		assert.ErrorContains(t, err, "failed to parse YAML")
	})

	t.Run("json unknown field", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"start": "s", "final": []}`), FormatJSON)
		assert.ErrorContains(t, err, "failed to parse JSON")
	})

	t.Run("xml syntax", func(t *testing.T) {
		_, err := Decode(strings.NewReader("<Automata>"), FormatXML)
		assert.ErrorContains(t, err, "failed to parse XML")
	})
}

func TestRoundTrip(t *testing.T) {
	a, err := ReadFile(filepath.Join("testdata", "root_level.xml"), "")
	require.NoError(t, err)
	m := dfamin.Minimize(a)

	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out."+string(f))
			require.NoError(t, WriteFile(path, "", m))

			back, err := ReadFile(path, "")
			require.NoError(t, err)
			assert.Equal(t, m.Definition(), back.Definition())
		})
	}
}

func TestEncode_XMLGolden(t *testing.T) {
	a, err := ReadFile(filepath.Join("testdata", "root_level.xml"), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatXML, dfamin.Minimize(a).Definition()))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "minimized_xml", buf.Bytes())
}

func TestEncode_EmptyListsAreNotNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, dfamin.Definition{States: []string{"s"}, Start: "s"}))
	assert.Contains(t, buf.String(), `"accepting": []`)
	assert.NotContains(t, buf.String(), "null")
}
