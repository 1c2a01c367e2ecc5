package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	EventRoomUpdate      = "roomUpdate"
	EventInventoryUpdate = "inventoryUpdate"
)

// Publisher fans an event out to connected dashboards.
type Publisher interface {
	Broadcast(event string, data any) error
}

// SnapshotService pushes room and inventory snapshots to dashboards on a
// timer and whenever Notify is called. It only reads.
type SnapshotService struct {
	Rooms     *RoomService
	Inventory *InventoryService
	Publisher Publisher
	Interval  time.Duration
	Logger    *logrus.Logger

	notify chan struct{}
}

func NewSnapshotService(rooms *RoomService, inventory *InventoryService, pub Publisher, interval time.Duration, logger *logrus.Logger) *SnapshotService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SnapshotService{
		Rooms:     rooms,
		Inventory: inventory,
		Publisher: pub,
		Interval:  interval,
		Logger:    logger,
		notify:    make(chan struct{}, 1),
	}
}

// Notify asks for a snapshot soon. It never blocks; bursts collapse into one push.
func (s *SnapshotService) Notify() {
	if s == nil {
		return
	}
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Run publishes until ctx is done.
func (s *SnapshotService) Run(ctx context.Context) {
	var tick <-chan time.Time
	if s.Interval > 0 {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
		case <-s.notify:
		}
		if err := s.Publish(ctx); err != nil {
			s.Logger.WithFields(logrus.Fields{
				"module":   "SnapshotService",
				"funcName": "Run",
			}).Error(err.Error())
		}
	}
}

// Publish sends one room and one inventory snapshot.
func (s *SnapshotService) Publish(ctx context.Context) error {
	rooms, err := s.Rooms.List(ctx)
	if err != nil {
		return err
	}
	items, err := s.Inventory.List(ctx)
	if err != nil {
		return err
	}
	if err := s.Publisher.Broadcast(EventRoomUpdate, map[string]any{"rooms": rooms}); err != nil {
		return err
	}
	return s.Publisher.Broadcast(EventInventoryUpdate, items)
}
