package valueobjects

// ThoughtType classifies the structural intent of a conversation:
// a single insight (dot), a goal cluster (wheel), a purpose-level
// cluster (chakra), or still undecided (exploring).
type ThoughtType string

const (
	ThoughtTypeDot       ThoughtType = "dot"
	ThoughtTypeWheel     ThoughtType = "wheel"
	ThoughtTypeChakra    ThoughtType = "chakra"
	ThoughtTypeExploring ThoughtType = "exploring"
)

// IsValid reports whether t is one of the known thought types
func (t ThoughtType) IsValid() bool {
	switch t {
	case ThoughtTypeDot, ThoughtTypeWheel, ThoughtTypeChakra, ThoughtTypeExploring:
		return true
	}
	return false
}

// String returns the string representation
func (t ThoughtType) String() string {
	return string(t)
}

// ParseThoughtType parses s into a ThoughtType, falling back to exploring
// for anything unrecognized
func ParseThoughtType(s string) ThoughtType {
	t := ThoughtType(s)
	if !t.IsValid() {
		return ThoughtTypeExploring
	}
	return t
}
