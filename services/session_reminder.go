package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"coachpoint_go/database"
	"coachpoint_go/models"
	"coachpoint_go/services/notifications"
	"coachpoint_go/utils"
)

// SessionReminderScheduler notifies assigned coaches shortly before their
// batch sessions start, based on each batch's weekly timetable.
type SessionReminderScheduler struct {
	db *gorm.DB
}

func NewSessionReminderScheduler() *SessionReminderScheduler {
	return &SessionReminderScheduler{db: database.GetDB()}
}

// StartScheduler blocks, checking for upcoming sessions every 15 minutes.
// Run it in its own goroutine.
func (sr *SessionReminderScheduler) StartScheduler(stop <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	fmt.Println("Session reminder scheduler started...")

	for {
		select {
		case <-stop:
			fmt.Println("Session reminder scheduler stopping")
			return
		case <-ticker.C:
			sr.CheckUpcomingSessions()
		}
	}
}

// CheckUpcomingSessions looks 30 and 60 minutes ahead for batch sessions
// starting in that window and notifies the assigned coaches.
func (sr *SessionReminderScheduler) CheckUpcomingSessions() {
	now := time.Now()

	reminders := []struct {
		minutes int
		label   string
	}{
		{30, "30 minutes"},
		{60, "1 hour"},
	}

	var batches []models.Batch
	if err := sr.db.Where("status = ?", "active").Preload("Sport").Find(&batches).Error; err != nil {
		fmt.Printf("Error fetching active batches: %v\n", err)
		return
	}

	for _, reminder := range reminders {
		targetTime := now.Add(time.Duration(reminder.minutes) * time.Minute)

		for _, batch := range batches {
			startAt, ok := sessionStartNear(batch, targetTime)
			if !ok {
				continue
			}
			if sr.hasReminderBeenSent(batch.ID, reminder.minutes) {
				continue
			}
			sr.sendUpcomingSessionReminder(batch, startAt, reminder.minutes, reminder.label)
		}
	}
}

// sessionStartNear reports whether the batch timetable has a session starting
// within 5 minutes of target, and returns that start time.
func sessionStartNear(batch models.Batch, target time.Time) (time.Time, bool) {
	entries, err := utils.ValidateSchedule(batch.Schedule)
	if err != nil {
		return time.Time{}, false
	}
	for _, entry := range entries {
		if !strings.EqualFold(entry.Day, target.Weekday().String()) {
			continue
		}
		hour, minute, err := utils.ParseHourMinute(entry.StartTime)
		if err != nil {
			continue
		}
		startAt := time.Date(target.Year(), target.Month(), target.Day(), hour, minute, 0, 0, target.Location())
		diff := startAt.Sub(target)
		if diff >= -5*time.Minute && diff <= 5*time.Minute {
			return startAt, true
		}
	}
	return time.Time{}, false
}

// hasReminderBeenSent checks recent notifications so a batch is only
// reminded once per window.
func (sr *SessionReminderScheduler) hasReminderBeenSent(batchID uint, minutes int) bool {
	var count int64
	err := sr.db.Model(&models.Notification{}).
		Where("title = ? AND message LIKE ? AND created_at > ?",
			"Upcoming Session",
			fmt.Sprintf("%%starts in %d minutes%%", minutes),
			time.Now().Add(-2*time.Hour)).
		Where("data LIKE ?", fmt.Sprintf("%%\"batch_id\":%d%%", batchID)).
		Count(&count).Error
	if err != nil {
		return false
	}
	return count > 0
}

// sendUpcomingSessionReminder notifies every coach actively assigned to the batch.
func (sr *SessionReminderScheduler) sendUpcomingSessionReminder(batch models.Batch, startAt time.Time, minutes int, timeLabel string) {
	var assignments []models.CoachAssignment
	err := sr.db.Where("batch_id = ? AND is_active = ?", batch.ID, true).Find(&assignments).Error
	if err != nil {
		fmt.Printf("Error fetching assignments for batch %d: %v\n", batch.ID, err)
		return
	}
	if len(assignments) == 0 {
		return
	}

	coachIDs := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		coachIDs = append(coachIDs, a.CoachID)
	}

	message := fmt.Sprintf("Your batch '%s' starts in %d minutes at %s", batch.Name, minutes, startAt.Format("15:04"))
	n := notifications.QueuedWithData("Upcoming Session", message, "info", map[string]interface{}{
		"batch_id":   batch.ID,
		"start_time": startAt.Format("15:04"),
		"lead":       timeLabel,
	})
	if err := notifications.NewService().EnqueueOrCreate(coachIDs, n); err != nil {
		fmt.Printf("Error sending session reminders for batch %d: %v\n", batch.ID, err)
		return
	}

	fmt.Printf("Sent session reminders for batch %d (%s before)\n", batch.ID, timeLabel)
}
