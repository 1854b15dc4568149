package store

import (
	"log/slog"

	"pawtrail/internal/model"
	"pawtrail/internal/storage"
)

// Namespace keys. One flat key per entity kind; callers never derive these.
const (
	NamespaceReminders = "reminders"
	NamespaceJournal   = "journal-entries"
	NamespaceQuickLogs = "quick-logs"
	NamespacePets      = "pets"
)

type (
	Reminders = Collection[model.Reminder, *model.Reminder]
	Journal   = Collection[model.JournalEntry, *model.JournalEntry]
	QuickLogs = Collection[model.QuickLog, *model.QuickLog]
	Pets      = Collection[model.Pet, *model.Pet]
)

func NewReminders(b storage.Backend, logger *slog.Logger) *Reminders {
	return New[model.Reminder](b, NamespaceReminders, logger)
}

func NewJournal(b storage.Backend, logger *slog.Logger) *Journal {
	return New[model.JournalEntry](b, NamespaceJournal, logger)
}

func NewQuickLogs(b storage.Backend, logger *slog.Logger) *QuickLogs {
	return New[model.QuickLog](b, NamespaceQuickLogs, logger)
}

func NewPets(b storage.Backend, logger *slog.Logger) *Pets {
	return New[model.Pet](b, NamespacePets, logger)
}
