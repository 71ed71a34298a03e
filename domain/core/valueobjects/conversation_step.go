package valueobjects

// ConversationStep is the stage of an organizing conversation.
// Initial and exploring share handling; completed is terminal.
type ConversationStep string

const (
	StepInitial    ConversationStep = "initial"
	StepExploring  ConversationStep = "exploring"
	StepOrganizing ConversationStep = "organizing"
	StepConfirming ConversationStep = "confirming"
	StepCompleted  ConversationStep = "completed"
)

// IsValid reports whether s is a known conversation step
func (s ConversationStep) IsValid() bool {
	switch s {
	case StepInitial, StepExploring, StepOrganizing, StepConfirming, StepCompleted:
		return true
	}
	return false
}

// String returns the string representation
func (s ConversationStep) String() string {
	return string(s)
}

// ParseConversationStep parses s into a ConversationStep, falling back to
// initial for anything unrecognized
func ParseConversationStep(s string) ConversationStep {
	step := ConversationStep(s)
	if !step.IsValid() {
		return StepInitial
	}
	return step
}
