// Package grammar implements the PCFG data model and its text-format loader,
// grounded on the line-oriented parsing style of internal/tqw's world-file
// loader. A line without a bracketed probability is treated as if "[0]" had
// been appended, a deliberate relaxation of strict PCFG syntax.
package grammar

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/brickgrammar/internal/bgerr"
)

// Symbol is either a Terminal lexeme or a Nonterminal name.
type Symbol struct {
	Terminal bool
	Name     string
}

func Term(lexeme string) Symbol   { return Symbol{Terminal: true, Name: lexeme} }
func NonTerm(name string) Symbol  { return Symbol{Terminal: false, Name: name} }
func (s Symbol) String() string   { return s.Name }
func (s Symbol) IsTerminal() bool { return s.Terminal }

// Production is (lhs, rhs, probability) where probability's sentinel
// "unset" is represented as exactly 0. It is indistinguishable from an
// explicit "[0]" annotation; a line lacking a bracket is loaded as if "[0]"
// had been appended.
type Production struct {
	LHS         string
	RHS         []Symbol
	Probability float64
}

// AllTerminal reports whether every symbol in RHS is a Terminal.
func (p Production) AllTerminal() bool {
	for _, s := range p.RHS {
		if !s.Terminal {
			return false
		}
	}
	return true
}

// Grammar is a PCFG: a start symbol, productions grouped by LHS, and a
// derived map from nonterminal to its canonical all-terminal expansion.
type Grammar struct {
	Start       string
	Productions map[string][]Production

	// ToTerminal maps a nonterminal to the RHS of the (last-loaded)
	// production whose RHS is entirely terminals, if one exists for that
	// LHS.
	ToTerminal map[string][]Symbol
}

// ProductionsFor returns the productions for a given LHS, in load order.
func (g *Grammar) ProductionsFor(lhs string) []Production {
	return g.Productions[lhs]
}

var ErrEmptyGrammar = fmt.Errorf("grammar has no productions")

// Load parses grammar source text of the form:
//
//	LHS -> RHS_1 RHS_2 … RHS_k [probability]
//
// Blank lines are ignored. A line beginning with '|' continues the
// alternation list of the most recently named LHS. '[probability]' is
// optional; when absent it is treated as 0. The start symbol is the LHS of the
// first rule encountered.
func Load(text string) (*Grammar, error) {
	g := &Grammar{
		Productions: map[string][]Production{},
		ToTerminal:  map[string][]Symbol{},
	}

	var currentLHS string
	lineNum := 0

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var altText string
		if strings.HasPrefix(line, "|") {
			if currentLHS == "" {
				return nil, &bgerr.SyntaxError{Line: lineNum, Message: "continuation line with no preceding rule"}
			}
			altText = strings.TrimPrefix(line, "|")
		} else {
			parts := strings.SplitN(line, "->", 2)
			if len(parts) != 2 {
				return nil, &bgerr.SyntaxError{Line: lineNum, Message: "expected 'LHS -> RHS' rule"}
			}
			currentLHS = strings.TrimSpace(parts[0])
			if currentLHS == "" {
				return nil, &bgerr.SyntaxError{Line: lineNum, Message: "empty LHS"}
			}
			if g.Start == "" {
				g.Start = currentLHS
			}
			altText = parts[1]
		}

		for _, altText := range strings.Split(altText, "|") {
			prod, err := parseAlternative(currentLHS, altText, lineNum)
			if err != nil {
				return nil, err
			}
			g.Productions[currentLHS] = append(g.Productions[currentLHS], prod)
			if prod.AllTerminal() {
				g.ToTerminal[currentLHS] = prod.RHS
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(g.Productions) == 0 {
		return nil, ErrEmptyGrammar
	}

	return g, nil
}

func parseAlternative(lhs, text string, lineNum int) (Production, error) {
	text = strings.TrimSpace(text)

	prob := 0.0
	if idx := strings.LastIndex(text, "["); idx >= 0 && strings.HasSuffix(text, "]") {
		probText := text[idx+1 : len(text)-1]
		text = strings.TrimSpace(text[:idx])

		p, err := strconv.ParseFloat(strings.TrimSpace(probText), 64)
		if err != nil {
			return Production{}, (&bgerr.SyntaxError{
				Line:    lineNum,
				Message: fmt.Sprintf("%q is not a valid probability", probText),
			}).WithWrapped(bgerr.ErrInvalidProbability)
		}
		prob = p
	}

	var rhs []Symbol
	for _, tok := range strings.Fields(text) {
		if len(tok) >= 2 && strings.HasPrefix(tok, "'") && strings.HasSuffix(tok, "'") {
			rhs = append(rhs, Term(tok[1:len(tok)-1]))
		} else {
			rhs = append(rhs, NonTerm(tok))
		}
	}

	return Production{LHS: lhs, RHS: rhs, Probability: prob}, nil
}
