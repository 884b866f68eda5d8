package branch

// Kind is the way control leaves a statement.
type Kind int

const (
	// Empty statements do nothing.
	Empty Kind = iota
	// Return leaves the function.
	Return
	// Continue jumps to the next iteration of the innermost loop.
	Continue
	// Break leaves the innermost loop.
	Break
	// Exit ends the process through a call that never returns.
	Exit
	// Regular falls through to the next statement.
	Regular
)

// Branch wraps k in a Branch with no call attached.
func (k Kind) Branch() Branch { return Branch{Kind: k} }

// Deviates reports whether control does not fall through.
func (k Kind) Deviates() bool {
	return k != Empty && k != Regular
}

var kindNames = [...]string{
	Empty:    "empty",
	Return:   "return",
	Continue: "continue",
	Break:    "break",
	Exit:     "exit",
	Regular:  "regular",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}
