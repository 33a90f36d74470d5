// Package placement implements the stack-scoped placement-language
// interpreter: its lexer, its State/Element data model, and the Exec
// interpreter itself, plus the incremental parse cache.
package placement

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/dekarrin/brickgrammar/internal/bgerr"
	"github.com/dekarrin/brickgrammar/internal/voxel"
)

// OpKind tags the variant carried by an Operation.
type OpKind int

const (
	OpPush OpKind = iota
	OpPop
	OpMove
	OpRotate
	OpSetColor
	OpPlace
	OpFillRect
	OpFillRectNoCheck
	OpPlaceBoundingBox
	OpPlaceBoundingSphere
	OpAssertFilled
)

// Operation is a tagged variant over the placement language's operator set.
// Only the fields relevant to Kind are populated.
type Operation struct {
	Kind OpKind

	Vec voxel.Vec3 // Move delta / FillRect size / FillRectNoCheck size / PlaceBoundingBox size
	Int int        // Rotate theta / SetColor color / PlaceBoundingSphere radius
	ID  string     // Place part id
	Raw string     // original lexeme, for diagnostics
}

var (
	reCall   = regexp.MustCompile(`^([A-Za-z]+)\(([^)]*)\)$`)
	lexCache sync.Map // string -> cachedLex
)

type cachedLex struct {
	op  Operation
	err error
}

// Lex converts a single whitespace-free lexeme into a tagged Operation.
// Lex is a pure function of its input and memoizes its result, since the
// generator re-lexes the same short lexemes constantly during fitness
// probing.
func Lex(lexeme string) (Operation, error) {
	if cached, ok := lexCache.Load(lexeme); ok {
		c := cached.(cachedLex)
		return c.op, c.err
	}
	op, err := lex(lexeme)
	lexCache.Store(lexeme, cachedLex{op: op, err: err})
	return op, err
}

func lex(lexeme string) (Operation, error) {
	switch lexeme {
	case "(":
		return Operation{Kind: OpPush, Raw: lexeme}, nil
	case ")":
		return Operation{Kind: OpPop, Raw: lexeme}, nil
	}

	m := reCall.FindStringSubmatch(lexeme)
	if m == nil {
		return Operation{}, &bgerr.LexError{Lexeme: lexeme, Reason: "not a valid scope marker or Name(args) call"}
	}
	name, args := m[1], m[2]

	switch name {
	case "AssertFilled":
		if args != "" {
			return Operation{}, &bgerr.LexError{Lexeme: lexeme, Reason: "AssertFilled takes no arguments"}
		}
		return Operation{Kind: OpAssertFilled, Raw: lexeme}, nil
	case "Place":
		if args == "" {
			return Operation{}, &bgerr.LexError{Lexeme: lexeme, Reason: "Place requires a part id"}
		}
		return Operation{Kind: OpPlace, ID: args, Raw: lexeme}, nil
	case "Move":
		v, err := parseVec3(args)
		if err != nil {
			return Operation{}, &bgerr.LexError{Lexeme: lexeme, Reason: err.Error()}
		}
		return Operation{Kind: OpMove, Vec: v, Raw: lexeme}, nil
	case "Rotate":
		n, err := parseInt(args)
		if err != nil {
			return Operation{}, &bgerr.LexError{Lexeme: lexeme, Reason: err.Error()}
		}
		return Operation{Kind: OpRotate, Int: n, Raw: lexeme}, nil
	case "SetColor":
		n, err := parseInt(args)
		if err != nil {
			return Operation{}, &bgerr.LexError{Lexeme: lexeme, Reason: err.Error()}
		}
		return Operation{Kind: OpSetColor, Int: n, Raw: lexeme}, nil
	case "FillRect":
		v, err := parseVec3(args)
		if err != nil {
			return Operation{}, &bgerr.LexError{Lexeme: lexeme, Reason: err.Error()}
		}
		return Operation{Kind: OpFillRect, Vec: v, Raw: lexeme}, nil
	case "FillRectNoCheck":
		v, err := parseVec3(args)
		if err != nil {
			return Operation{}, &bgerr.LexError{Lexeme: lexeme, Reason: err.Error()}
		}
		return Operation{Kind: OpFillRectNoCheck, Vec: v, Raw: lexeme}, nil
	case "PlaceBoundingBox":
		v, err := parseVec3(args)
		if err != nil {
			return Operation{}, &bgerr.LexError{Lexeme: lexeme, Reason: err.Error()}
		}
		return Operation{Kind: OpPlaceBoundingBox, Vec: v, Raw: lexeme}, nil
	case "PlaceBoundingSphere":
		n, err := parseInt(args)
		if err != nil {
			return Operation{}, &bgerr.LexError{Lexeme: lexeme, Reason: err.Error()}
		}
		return Operation{Kind: OpPlaceBoundingSphere, Int: n, Raw: lexeme}, nil
	default:
		return Operation{}, &bgerr.LexError{Lexeme: lexeme, Reason: bgerr.ErrUnknownOp.Error()}
	}
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, bgerr.ErrUnknownOp
	}
	return n, nil
}

func parseVec3(s string) (voxel.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return voxel.Vec3{}, bgerr.ErrUnknownOp
	}
	var vals [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return voxel.Vec3{}, bgerr.ErrUnknownOp
		}
		vals[i] = n
	}
	return voxel.V(vals[0], vals[1], vals[2]), nil
}

// LexAll lexes a whitespace-separated sequence of lexemes.
func LexAll(text string) ([]Operation, error) {
	fields := strings.Fields(text)
	ops := make([]Operation, 0, len(fields))
	for _, f := range fields {
		op, err := Lex(f)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
