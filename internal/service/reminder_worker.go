package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"firmdesk/internal/metrics"
	"firmdesk/internal/port"
)

// ReminderConfig holds settings for the deadline reminder worker.
type ReminderConfig struct {
	PollInterval time.Duration
	Lookahead    time.Duration
}

// ReminderWorker polls for notices whose deadlines fall inside the lookahead
// window and emails the owning user. Each notice is reminded at most once per
// process lifetime.
type ReminderWorker struct {
	noticeRepo port.NoticeRepository
	userRepo   port.UserRepository
	sender     port.EmailSender
	cfg        ReminderConfig
	reminded   map[uuid.UUID]bool
}

// NewReminderWorker creates a new ReminderWorker.
func NewReminderWorker(noticeRepo port.NoticeRepository, userRepo port.UserRepository, sender port.EmailSender, cfg ReminderConfig) *ReminderWorker {
	return &ReminderWorker{
		noticeRepo: noticeRepo,
		userRepo:   userRepo,
		sender:     sender,
		cfg:        cfg,
		reminded:   make(map[uuid.UUID]bool),
	}
}

// Start runs the polling loop until ctx is canceled.
func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	log.Printf("reminderWorker: started (poll=%s, lookahead=%s)", w.cfg.PollInterval, w.cfg.Lookahead)

	for {
		select {
		case <-ctx.Done():
			log.Printf("reminderWorker: shutdown complete")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ReminderWorker) runOnce(ctx context.Context) {
	cutoff := time.Now().UTC().Add(w.cfg.Lookahead)
	notices, err := w.noticeRepo.ListDueBefore(ctx, cutoff)
	if err != nil {
		log.Printf("reminderWorker: listing due notices: %v", err)
		return
	}

	for i := range notices {
		notice := &notices[i]
		if w.reminded[notice.ID] {
			continue
		}
		user, err := w.userRepo.GetByID(ctx, notice.OwnerID)
		if err != nil {
			log.Printf("reminderWorker: owner %s for notice %s: %v", notice.OwnerID, notice.ID, err)
			continue
		}
		if err := w.sender.SendNoticeReminder(ctx, user.Email, user.FullName, notice); err != nil {
			log.Printf("reminderWorker: sending reminder for notice %s: %v", notice.ID, err)
			continue
		}
		w.reminded[notice.ID] = true
		metrics.RemindersSent.Inc()
		log.Printf("reminderWorker: reminded %s about notice %s (deadline %s)", user.Email, notice.NoticeNumber, notice.Deadline)
	}
}
