package storage

import "fmt"

// Per-user document layout: a collection of day-keyed progress documents, one
// settings document, and the sibling features' activity-signal documents.

func SettingsPath(userID string) string {
	return fmt.Sprintf("users/%s/settings", userID)
}

func DayPath(userID, dateKey string) string {
	return fmt.Sprintf("users/%s/progress/%s", userID, dateKey)
}

func DaysPrefix(userID string) string {
	return fmt.Sprintf("users/%s/progress/", userID)
}

func DeckSignalPath(userID, deckID string) string {
	return fmt.Sprintf("users/%s/signals/decks/%s", userID, deckID)
}

func DecksPrefix(userID string) string {
	return fmt.Sprintf("users/%s/signals/decks/", userID)
}

func GrammarSignalPath(userID string) string {
	return fmt.Sprintf("users/%s/signals/grammar", userID)
}

func WritingSignalPath(userID string) string {
	return fmt.Sprintf("users/%s/signals/writing", userID)
}
