package progress

// Built-in core tasks. Defined once, process-wide; users can hide them but
// never create or delete them.
var defaultItems = []ChecklistItem{
	{ID: BuiltinDeckStudy, Label: "Study a deck", TimeOfDay: TimeMorning},
	{ID: BuiltinGrammarQuiz, Label: "Take a grammar quiz", TimeOfDay: TimeAfternoon},
	{ID: BuiltinWriting, Label: "Complete a writing session", TimeOfDay: TimeAfternoon},
	{ID: BuiltinConversation, Label: "Have a conversation session", TimeOfDay: TimeEvening},
}

// DefaultItems returns fresh, uncompleted copies of the built-in items.
func DefaultItems() []ChecklistItem {
	out := make([]ChecklistItem, len(defaultItems))
	copy(out, defaultItems)
	return out
}

// IsBuiltin reports whether id names one of the fixed core items.
func IsBuiltin(id BuiltinID) bool {
	for _, it := range defaultItems {
		if it.ID == id {
			return true
		}
	}
	return false
}
