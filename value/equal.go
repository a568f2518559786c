package value

// Equal reports structural equality. Strings compare by unescaped text,
// numbers by decoded kind and value, arrays element-wise and objects
// member-wise in insertion order (names and values).
func Equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a.Type() != b.Type() {
		return false
	}

	switch a.Type() {
	case NullType, TrueType, FalseType:
		return true
	case StringType:
		return a.str.Equal(b.str)
	case NumberType:
		return a.num.Equal(b.num)
	case ArrayType:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for i := range a.pairs {
			if !a.pairs[i].Equal(b.pairs[i]) || !Equal(a.pairs[i].Value, b.pairs[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Equal is the method form of Equal, for use with go-cmp.
func (v *Value) Equal(o *Value) bool {
	return Equal(v, o)
}
