package lambda

import (
	"fmt"
	"strings"
)

// String renders t in classic notation: '\' as the abstraction marker, '.'
// as the separator, juxtaposition for application. Bound variables are
// printed as x0, x1, ... named by abstraction depth; free variables are
// printed as f0, f1, ... named by their De Bruijn free-index.
func (v Var) String() string { return printTerm(v, nil) }
func (a Abs) String() string { return printTerm(a, nil) }
func (a App) String() string { return printTerm(a, nil) }

func printTerm(t Term, names []string) string {
	switch n := t.(type) {
	case Var:
		if n.Index < len(names) {
			return names[len(names)-1-n.Index]
		}
		return fmt.Sprintf("f%d", n.Index-len(names))
	case Abs:
		name := fmt.Sprintf("x%d", len(names))
		return fmt.Sprintf("\\%s.%s", name, printTerm(n.Body, append(names, name)))
	case App:
		return fmt.Sprintf("%s %s", printAtom(n.Fun, names, false), printAtom(n.Arg, names, true))
	default:
		return ""
	}
}

// printAtom parenthesizes sub-terms that would otherwise be ambiguous:
// an abstraction in either position of an application, and an
// application used as the right-hand argument of another application.
func printAtom(t Term, names []string, isArg bool) string {
	switch t.(type) {
	case Abs:
		return "(" + printTerm(t, names) + ")"
	case App:
		if isArg {
			return "(" + printTerm(t, names) + ")"
		}
		return printTerm(t, names)
	default:
		return printTerm(t, names)
	}
}

// DeBruijnString renders t in printing-only De Bruijn notation: bare
// lambdas and raw indices, e.g. "\.\.1" for the K combinator.
func DeBruijnString(t Term) string {
	var b strings.Builder
	writeDeBruijn(&b, t)
	return b.String()
}

func writeDeBruijn(b *strings.Builder, t Term) {
	switch n := t.(type) {
	case Var:
		fmt.Fprintf(b, "%d", n.Index)
	case Abs:
		b.WriteString("\\.")
		writeDeBruijn(b, n.Body)
	case App:
		fun, isAbs := n.Fun.(Abs)
		_ = fun
		if isAbs {
			b.WriteString("(")
			writeDeBruijn(b, n.Fun)
			b.WriteString(")")
		} else {
			writeDeBruijn(b, n.Fun)
		}
		b.WriteString(" ")
		if _, ok := n.Arg.(Var); ok {
			writeDeBruijn(b, n.Arg)
		} else {
			b.WriteString("(")
			writeDeBruijn(b, n.Arg)
			b.WriteString(")")
		}
	}
}
