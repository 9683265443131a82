package broadcast

import (
	"context"
	"log/slog"
	"time"

	"github.com/crewsync/crewsync-backend-go/internal/domain/stats"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/pubsub"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/sse"
)

// Live event names pushed to dashboards.
const (
	EventStaffUpdated  = "staff.updated"
	EventStatsUpdated  = "stats.updated"
	EventRosterCleared = "roster.cleared"
)

const recomputeTimeout = 15 * time.Second

// Publisher mirrors live messages to other running instances. Satisfied by
// pubsub.RedisPublisher; nil-able for single-instance deployments.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload interface{}) error
}

// Subscriber receives other instances' publications. Also satisfied by
// pubsub.RedisPublisher.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string, handler func(pubsub.Message)) error
}

// Broadcaster pushes live updates after mutations. Every notification also
// recomputes the event's merged stats tree and publishes it, so dashboards
// never have to poll. All of it happens on a detached goroutine: a slow or
// failing broadcast must never delay or fail the mutation that triggered it.
type Broadcaster struct {
	stats  stats.StatsService
	hub    *sse.Hub
	remote Publisher
	logger *slog.Logger
}

func NewBroadcaster(statsService stats.StatsService, hub *sse.Hub, remote Publisher, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		stats:  statsService,
		hub:    hub,
		remote: remote,
		logger: logger,
	}
}

// Channel names the Redis pub/sub channel for one event's live updates.
func Channel(eventID string) string {
	return "event:" + eventID
}

// StaffUpdated announces an attendance or roster-row mutation.
func (b *Broadcaster) StaffUpdated(companyID, eventID string, payload interface{}) {
	b.notify(companyID, eventID, EventStaffUpdated, payload)
}

// RosterCleared announces a bulk roster removal.
func (b *Broadcaster) RosterCleared(companyID, eventID string, payload interface{}) {
	b.notify(companyID, eventID, EventRosterCleared, payload)
}

func (b *Broadcaster) notify(companyID, eventID, name string, payload interface{}) {
	go func() {
		// Detached from the request: the mutation already committed.
		ctx, cancel := context.WithTimeout(context.Background(), recomputeTimeout)
		defer cancel()

		b.publish(ctx, eventID, name, payload)

		overview, err := b.stats.Overview(ctx, companyID, stats.OverviewRequest{EventID: eventID})
		if err != nil {
			b.logger.Error("stats recompute after mutation failed",
				slog.String("event_id", eventID),
				slog.String("trigger", name),
				slog.Any("error", err),
			)
			return
		}

		b.publish(ctx, eventID, EventStatsUpdated, overview)
	}()
}

func (b *Broadcaster) publish(ctx context.Context, eventID, name string, payload interface{}) {
	b.hub.Publish(eventID, sse.Event{
		EventID: eventID,
		Name:    name,
		Data:    payload,
	})

	if b.remote == nil {
		return
	}
	if err := b.remote.Publish(ctx, Channel(eventID), name, payload); err != nil {
		b.logger.Error("remote publish failed",
			slog.String("event_id", eventID),
			slog.String("name", name),
			slog.Any("error", err),
		)
	}
}

// MirrorRemote subscribes to another instance's publications for eventID and
// replays them into the local hub until ctx ends. Run once per subscribed
// event by the live handler.
func (b *Broadcaster) MirrorRemote(ctx context.Context, sub Subscriber, eventID string) {
	err := sub.Subscribe(ctx, Channel(eventID), func(m pubsub.Message) {
		b.hub.Publish(eventID, sse.Event{
			EventID: eventID,
			Name:    m.Event,
			Data:    m.Payload,
		})
	})
	if err != nil && ctx.Err() == nil {
		b.logger.Error("remote mirror stopped",
			slog.String("event_id", eventID),
			slog.Any("error", err),
		)
	}
}
