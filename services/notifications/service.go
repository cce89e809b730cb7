package notifications

import (
	"context"
	"coachpoint_go/config"
	"coachpoint_go/database"
	"coachpoint_go/models"
	"coachpoint_go/utils"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Queue item structure stored in Redis.
// Kept minimal to reduce payload size; one item may fan out to many users.
// If Redis is down the service falls back to a direct DB insert, so the
// database remains the source of truth.

type queuedNotification struct {
	UserIDs   []uint    `json:"user_ids"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const redisListKey = "notifications:queue"

// Service exposes notification creation with optional Redis queue.
// If Redis is disabled/unavailable, performs direct DB insert.

type Service struct {
	db       *gorm.DB
	redis    *redis.Client
	useRedis bool
	wsHub    WSHub
}

// WSHub interface for WebSocket broadcasting
type WSHub interface {
	BroadcastToUser(userID uint, message interface{})
}

// defaultHub allows services created in different parts of the app (e.g., schedulers)
// to automatically broadcast over the same WebSocket hub without manually wiring each instance.
var defaultHub WSHub

// SetDefaultWSHub sets the package-level default WebSocket hub used by new Service instances.
func SetDefaultWSHub(h WSHub) {
	defaultHub = h
}

// BroadcastEvent pushes a realtime event to every open socket of the given
// users through the default hub. No-op when no hub is wired.
func BroadcastEvent(userIDs []uint, event interface{}) {
	if defaultHub == nil {
		return
	}
	for _, id := range userIDs {
		defaultHub.BroadcastToUser(id, event)
	}
}

func NewService() *Service {
	return &Service{
		db:       database.GetDB(),
		redis:    database.GetRedisClient(),
		useRedis: config.AppConfig != nil && config.AppConfig.UseRedisNotifications && database.GetRedisClient() != nil,
		wsHub:    defaultHub,
	}
}

// SetWebSocketHub sets the WebSocket hub for real-time notifications
func (s *Service) SetWebSocketHub(hub WSHub) {
	s.wsHub = hub
}

// validTypes mirrors the enum on models.Notification.
var validTypes = map[string]struct{}{"info": {}, "warning": {}, "error": {}, "success": {}}

func normalizeType(typ string) string {
	if _, ok := validTypes[typ]; ok {
		return typ
	}
	return "info"
}

// Queued builds a queue item for the common title/message/type case.
func Queued(title, message, typ string) queuedNotification {
	return queuedNotification{Title: title, Message: message, Type: normalizeType(typ)}
}

// QueuedWithData attaches a structured data payload (entity ids, deep links).
func QueuedWithData(title, message, typ string, data any) queuedNotification {
	return queuedNotification{Title: title, Message: message, Type: normalizeType(typ), Data: data}
}

// EnqueueOrCreate stores notifications using the Redis queue if enabled, else direct insert.
func (s *Service) EnqueueOrCreate(userIDs []uint, n queuedNotification) error {
	if len(userIDs) == 0 {
		return errors.New("no user ids")
	}
	n.UserIDs = userIDs
	n.CreatedAt = time.Now().UTC()

	if s.useRedis {
		b, err := json.Marshal(n)
		if err != nil {
			return err
		}
		if err = s.redis.RPush(context.Background(), redisListKey, b).Err(); err == nil {
			return nil // queued successfully
		}
		log.Printf("[notif] Redis queue failed, falling back to direct insert: %v", err)
	}

	return s.createDirect(userIDs, n)
}

// createDirect writes directly to DB (used by worker or fallback).
func (s *Service) createDirect(userIDs []uint, n queuedNotification) error {
	if len(userIDs) == 0 {
		return nil
	}

	var dataJSON []byte
	if n.Data != nil {
		if b, err := json.Marshal(n.Data); err == nil {
			dataJSON = b
		}
	}

	notifs := make([]models.Notification, 0, len(userIDs))
	for _, uid := range userIDs {
		notifs = append(notifs, models.Notification{
			UserID:  uid,
			Title:   n.Title,
			Message: n.Message,
			Type:    normalizeType(n.Type),
			Read:    false,
			Data:    dataJSON,
		})
	}

	if err := s.db.Create(&notifs).Error; err != nil {
		return err
	}

	if s.wsHub != nil {
		for _, notif := range notifs {
			s.db.Preload("User").First(&notif, notif.ID)
			dto := utils.ToNotificationDTO(notif)
			s.wsHub.BroadcastToUser(notif.UserID, map[string]interface{}{
				"type": "notification",
				"data": dto,
			})
		}
	}

	return nil
}

// StartWorker starts a background worker polling the Redis queue and flushing to DB
func (s *Service) StartWorker(stop <-chan struct{}) {
	if !s.useRedis {
		log.Println("[notif] Redis notifications disabled; worker not started")
		return
	}
	go func() {
		log.Println("[notif] Redis notification worker started")
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		ctx := context.Background()
		batchSize := 200
		for {
			select {
			case <-stop:
				log.Println("[notif] Worker stopping")
				return
			case <-ticker.C:
				s.flushBatch(ctx, batchSize)
			}
		}
	}()
}

// flushBatch polls the Redis queue and processes notifications in batches.
func (s *Service) flushBatch(ctx context.Context, batchSize int) {
	if s.redis == nil {
		return
	}
	for i := 0; i < 5; i++ { // up to 5 sub-batches per tick
		vals, err := s.redis.LRange(ctx, redisListKey, 0, int64(batchSize-1)).Result()
		if err != nil || len(vals) == 0 {
			return
		}
		// Trim immediately to avoid duplicates (best-effort)
		if err = s.redis.LTrim(ctx, redisListKey, int64(len(vals)), -1).Err(); err != nil {
			log.Printf("[notif] LTrim failed: %v", err)
		}
		for _, raw := range vals {
			var q queuedNotification
			if err := json.Unmarshal([]byte(raw), &q); err != nil {
				continue
			}
			if err := s.createDirect(q.UserIDs, q); err != nil {
				log.Printf("[notif] DB insert failed: %v", err)
			}
		}
		if len(vals) < batchSize {
			return
		}
	}
}
