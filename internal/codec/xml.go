package codec

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/geange/dfamin"
)

const xmlAutomatonType = "DFA"

// xmlAutomata is the Automata document:
//
//	<Automata type="DFA">
//	  <Alphabets numberOfAlphabets="2"><alphabet letter="a"/>...</Alphabets>
//	  <States numberOfStates="2">
//	    <state name="q0"/>...
//	    <initialState name="q0"/>
//	    <FinalStates numberOfFinalStates="1"><finalState name="q1"/></FinalStates>
//	  </States>
//	  <Transitions numberOfTrans="1">
//	    <transition source="q0" destination="q1" label="a"/>
//	  </Transitions>
//	</Automata>
//
// initialState and FinalStates are also accepted as direct children of Automata. The
// count attributes are written but ignored when reading.
type xmlAutomata struct {
	XMLName     xml.Name        `xml:"Automata"`
	Type        string          `xml:"type,attr,omitempty"`
	Alphabets   xmlAlphabets    `xml:"Alphabets"`
	States      xmlStates       `xml:"States"`
	Initial     *xmlNamed       `xml:"initialState"`
	Final       *xmlFinalStates `xml:"FinalStates"`
	Transitions xmlTransitions  `xml:"Transitions"`
}

type xmlAlphabets struct {
	Count   int         `xml:"numberOfAlphabets,attr"`
	Letters []xmlLetter `xml:"alphabet"`
}

type xmlLetter struct {
	Letter string `xml:"letter,attr"`
}

type xmlStates struct {
	Count   int             `xml:"numberOfStates,attr"`
	States  []xmlNamed      `xml:"state"`
	Initial *xmlNamed       `xml:"initialState"`
	Final   *xmlFinalStates `xml:"FinalStates"`
}

type xmlNamed struct {
	Name string `xml:"name,attr"`
}

type xmlFinalStates struct {
	Count  int        `xml:"numberOfFinalStates,attr"`
	States []xmlNamed `xml:"finalState"`
}

type xmlTransitions struct {
	Count       int             `xml:"numberOfTrans,attr"`
	Transitions []xmlTransition `xml:"transition"`
}

type xmlTransition struct {
	Source      string `xml:"source,attr"`
	Destination string `xml:"destination,attr"`
	Label       string `xml:"label,attr"`
}

func decodeXML(r io.Reader) (dfamin.Definition, error) {
	var doc xmlAutomata
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return dfamin.Definition{}, fmt.Errorf("failed to parse XML: %w", err)
	}
	if doc.Type != "" && doc.Type != xmlAutomatonType {
		return dfamin.Definition{}, fmt.Errorf("%w: automaton type %q is not supported", ErrMalformed, doc.Type)
	}

	initial := doc.States.Initial
	if initial == nil {
		initial = doc.Initial
	}
	if initial == nil {
		return dfamin.Definition{}, fmt.Errorf("%w: no initialState element", ErrMalformed)
	}

	final := doc.States.Final
	if final == nil {
		final = doc.Final
	}

	def := dfamin.Definition{Start: initial.Name}
	for _, l := range doc.Alphabets.Letters {
		def.Alphabet = append(def.Alphabet, l.Letter)
	}
	for _, s := range doc.States.States {
		def.States = append(def.States, s.Name)
	}
	if final != nil {
		for _, s := range final.States {
			def.Accepting = append(def.Accepting, s.Name)
		}
	}
	for _, t := range doc.Transitions.Transitions {
		def.Transitions = append(def.Transitions, dfamin.Transition{Source: t.Source, Label: t.Label, Dest: t.Destination})
	}
	return def, nil
}

func encodeXML(w io.Writer, def dfamin.Definition) error {
	doc := xmlAutomata{
		Type: xmlAutomatonType,
		Alphabets: xmlAlphabets{
			Count: len(def.Alphabet),
		},
		States: xmlStates{
			Count:   len(def.States),
			Initial: &xmlNamed{Name: def.Start},
			Final:   &xmlFinalStates{Count: len(def.Accepting)},
		},
		Transitions: xmlTransitions{
			Count: len(def.Transitions),
		},
	}
	for _, sym := range def.Alphabet {
		doc.Alphabets.Letters = append(doc.Alphabets.Letters, xmlLetter{Letter: sym})
	}
	for _, s := range def.States {
		doc.States.States = append(doc.States.States, xmlNamed{Name: s})
	}
	for _, s := range def.Accepting {
		doc.States.Final.States = append(doc.States.Final.States, xmlNamed{Name: s})
	}
	for _, t := range def.Transitions {
		doc.Transitions.Transitions = append(doc.Transitions.Transitions, xmlTransition{Source: t.Source, Destination: t.Dest, Label: t.Label})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return nil
}
