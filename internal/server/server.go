package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"pawtrail/internal/backup"
	"pawtrail/internal/config"
	"pawtrail/internal/handler"
	"pawtrail/internal/middleware"
	"pawtrail/internal/seed"
	"pawtrail/internal/store"
	"pawtrail/internal/storage"
	ws "pawtrail/internal/websocket"
)

type Server struct {
	hub           *ws.Hub
	petH          *handler.PetHandler
	reminderH     *handler.ReminderHandler
	journalH      *handler.JournalHandler
	quickLogH     *handler.QuickLogHandler
	backupH       *handler.BackupHandler
	backupManager *backup.Manager
	logger        *slog.Logger
}

// New wires the stores, handlers, and live-sync hub, and bootstraps every
// collection (seeding empty namespaces with demo data when enabled).
func New(db *sql.DB, cfg config.Config, logger *slog.Logger) (*Server, error) {
	hub := ws.NewHub(logger.With("component", "websocket"))
	backend := storage.NewSQLiteBackend(db)

	storeLogger := logger.With("component", "store")
	pets := store.NewPets(backend, storeLogger)
	reminders := store.NewReminders(backend, storeLogger)
	journal := store.NewJournal(backend, storeLogger)
	quickLogs := store.NewQuickLogs(backend, storeLogger)

	if err := bootstrap(cfg.DemoData, pets, reminders, journal, quickLogs); err != nil {
		return nil, fmt.Errorf("bootstrap collections: %w", err)
	}

	backupMgr := backup.NewManager(backup.Config{
		Enabled:    cfg.Backup.Enabled,
		Dir:        cfg.Backup.Dir,
		Passphrase: cfg.Backup.Passphrase,
		Interval:   cfg.Backup.Interval,
		Keep:       cfg.Backup.Keep,
	}, db, cfg.DBPath, func(s backup.Status) {
		hub.Broadcast(ws.Message{
			Type:       "backup_status",
			Collection: "backup",
			Action:     string(s.State),
			Record:     s,
		})
	}, logger.With("component", "backup"))

	return &Server{
		hub:           hub,
		petH:          handler.NewPetHandler(pets, hub, logger.With("component", "pet")),
		reminderH:     handler.NewReminderHandler(reminders, hub, logger.With("component", "reminder")),
		journalH:      handler.NewJournalHandler(journal, hub, logger.With("component", "journal")),
		quickLogH:     handler.NewQuickLogHandler(quickLogs, hub, logger.With("component", "quicklog")),
		backupH:       handler.NewBackupHandler(backupMgr, logger.With("component", "backup_handler")),
		backupManager: backupMgr,
		logger:        logger,
	}, nil
}

func bootstrap(demo bool, pets *store.Pets, reminders *store.Reminders, journal *store.Journal, quickLogs *store.QuickLogs) error {
	if !demo {
		var err error
		if _, err = pets.Load(nil); err != nil {
			return err
		}
		if _, err = reminders.Load(nil); err != nil {
			return err
		}
		if _, err = journal.Load(nil); err != nil {
			return err
		}
		_, err = quickLogs.Load(nil)
		return err
	}

	if _, err := pets.Load(seed.Pets()); err != nil {
		return err
	}
	if _, err := reminders.Load(seed.Reminders()); err != nil {
		return err
	}
	if _, err := journal.Load(seed.JournalEntries()); err != nil {
		return err
	}
	_, err := quickLogs.Load(seed.QuickLogs())
	return err
}

// BackupManager returns the backup manager so main can run its schedule.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Pet API routes
	mux.HandleFunc("POST /api/pets", s.petH.Create)
	mux.HandleFunc("GET /api/pets", s.petH.List)
	mux.HandleFunc("GET /api/pets/{id}", s.petH.Get)
	mux.HandleFunc("PUT /api/pets/{id}", s.petH.Update)
	mux.HandleFunc("DELETE /api/pets/{id}", s.petH.Delete)

	// Reminder API routes
	mux.HandleFunc("POST /api/reminders", s.reminderH.Create)
	mux.HandleFunc("GET /api/reminders", s.reminderH.List)
	mux.HandleFunc("GET /api/reminders/upcoming", s.reminderH.Upcoming)
	mux.HandleFunc("PUT /api/reminders/{id}", s.reminderH.Update)
	mux.HandleFunc("POST /api/reminders/{id}/toggle", s.reminderH.Toggle)
	mux.HandleFunc("DELETE /api/reminders/{id}", s.reminderH.Delete)

	// Journal API routes
	mux.HandleFunc("POST /api/journal-entries", s.journalH.Create)
	mux.HandleFunc("GET /api/journal-entries", s.journalH.List)
	mux.HandleFunc("PUT /api/journal-entries/{id}", s.journalH.Update)
	mux.HandleFunc("DELETE /api/journal-entries/{id}", s.journalH.Delete)

	// Quick log API routes
	mux.HandleFunc("POST /api/quick-logs", s.quickLogH.Create)
	mux.HandleFunc("GET /api/quick-logs", s.quickLogH.List)
	mux.HandleFunc("PUT /api/quick-logs/{id}", s.quickLogH.Update)
	mux.HandleFunc("DELETE /api/quick-logs/{id}", s.quickLogH.Delete)

	// Backup API routes
	mux.HandleFunc("GET /api/backup/status", s.backupH.Status)
	mux.HandleFunc("POST /api/backup/now", s.backupH.Now)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
