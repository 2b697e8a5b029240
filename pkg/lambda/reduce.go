package lambda

// Step performs a single beta-reduction step under the head-applicative-order
// (HAP) strategy: it reduces the leftmost-outermost redex whose argument is
// already in normal form. It returns the new term and true if a redex fired,
// or the original term and false if t is already in normal form.
func Step(t Term) (Term, bool) {
	switch n := t.(type) {
	case Var:
		return t, false
	case Abs:
		body, changed := Step(n.Body)
		if changed {
			return Abs{Body: body}, true
		}
		return t, false
	case App:
		if abs, ok := n.Fun.(Abs); ok {
			if IsNormalForm(n.Arg) {
				return substituteTop(abs.Body, n.Arg), true
			}
			// The argument must reach normal form before this redex may
			// fire under HAP, so reduce it first.
			arg, changed := Step(n.Arg)
			if changed {
				return App{Fun: n.Fun, Arg: arg}, true
			}
			return t, false
		}
		if fun, changed := Step(n.Fun); changed {
			return App{Fun: fun, Arg: n.Arg}, true
		}
		if arg, changed := Step(n.Arg); changed {
			return App{Fun: n.Fun, Arg: arg}, true
		}
		return t, false
	default:
		return t, false
	}
}

// substituteTop substitutes arg for the variable bound by the outermost
// abstraction being applied, i.e. computes body[0 := arg] with the De
// Bruijn index bookkeeping beta-reduction requires.
func substituteTop(body, arg Term) Term {
	return shift(substitute(body, 0, shift(arg, 1, 0)), -1, 0)
}

func substitute(t Term, index int, arg Term) Term {
	switch n := t.(type) {
	case Var:
		if n.Index == index {
			return arg
		}
		return n
	case Abs:
		return Abs{Body: substitute(n.Body, index+1, shift(arg, 1, 0))}
	case App:
		return App{Fun: substitute(n.Fun, index, arg), Arg: substitute(n.Arg, index, arg)}
	default:
		return t
	}
}

// shift adds d to every free variable reference in t at or above cutoff,
// the standard De Bruijn index adjustment needed when a term crosses into
// or out of a binder.
func shift(t Term, d, cutoff int) Term {
	switch n := t.(type) {
	case Var:
		if n.Index >= cutoff {
			return Var{Index: n.Index + d}
		}
		return n
	case Abs:
		return Abs{Body: shift(n.Body, d, cutoff+1)}
	case App:
		return App{Fun: shift(n.Fun, d, cutoff), Arg: shift(n.Arg, d, cutoff)}
	default:
		return t
	}
}
