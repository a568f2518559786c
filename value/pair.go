package value

// Pair is an object member. Members keep insertion order and duplicate names.
type Pair struct {
	Name  *String
	Value *Value
}

// NewPair builds a member from a logical name.
func NewPair(name string, v *Value) Pair {
	return Pair{Name: Unescaped(name), Value: orNull(v)}
}

// Key returns the unescaped member name.
func (p Pair) Key() string {
	return p.Name.Unescaped()
}

// Equal compares member names only, so pairs can key name-indexed lookups.
// Use value.Equal on the values to compare content.
func (p Pair) Equal(o Pair) bool {
	return p.Name.Equal(o.Name)
}
