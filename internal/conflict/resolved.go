package conflict

// IsResolved reports whether text contains no conflict regions.
//
// Lines that merely start with marker characters but are not part of a valid
// conflict structure do not count as conflicts. Malformed marker structure is
// treated as unresolved to avoid false success.
func IsResolved(text string) bool {
	conflicts, err := Parse(text)
	if err != nil {
		return false
	}
	return len(conflicts) == 0
}
