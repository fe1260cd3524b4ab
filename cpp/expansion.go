package cpp

// The expansion trail of a token is the list of macro names whose
// expansion resulted in the token, innermost first.
//
// Unlike a C hideset it does not stop a name from expanding again, it only
// measures how deep the expansion went so runaway recursion can be cut off.
// It is implemented as an immutable singly linked list, tails are shared
// between all the tokens of one replacement.

type expansion struct {
	r   *expansion
	val string
}

var emptyTrail *expansion = nil

func (e *expansion) rest() *expansion {
	if e == emptyTrail {
		return emptyTrail
	}
	return e.r
}

func (e *expansion) len() int {
	if e == emptyTrail {
		return 0
	}
	return 1 + e.rest().len()
}

func (e *expansion) contains(s string) bool {
	if e == emptyTrail {
		return false
	}
	if s == e.val {
		return true
	}
	return e.rest().contains(s)
}

func (e *expansion) push(s string) *expansion {
	return &expansion{
		r:   e,
		val: s,
	}
}

// names lists the trail outermost first, for error messages.
func (e *expansion) names() []string {
	var ret []string
	for ; e != emptyTrail; e = e.rest() {
		ret = append([]string{e.val}, ret...)
	}
	return ret
}
