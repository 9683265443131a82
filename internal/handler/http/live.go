package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/crewsync/crewsync-backend-go/internal/domain/event"
	"github.com/crewsync/crewsync-backend-go/internal/handler/http/response"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/sse"
	"github.com/crewsync/crewsync-backend-go/internal/service/broadcast"
	"github.com/go-chi/chi/v5"
)

type LiveHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type liveHandlerImpl struct {
	events      event.EventRepository
	hub         *sse.Hub
	broadcaster *broadcast.Broadcaster
	subscriber  broadcast.Subscriber

	// One remote mirror per event regardless of how many clients stream it.
	mu      sync.Mutex
	mirrors map[string]*mirror
}

type mirror struct {
	cancel context.CancelFunc
	refs   int
}

func NewLiveHandler(events event.EventRepository, hub *sse.Hub, broadcaster *broadcast.Broadcaster, subscriber broadcast.Subscriber) LiveHandler {
	return &liveHandlerImpl{
		events:      events,
		hub:         hub,
		broadcaster: broadcaster,
		subscriber:  subscriber,
		mirrors:     make(map[string]*mirror),
	}
}

// Stream implements LiveHandler. It holds the connection open and pushes
// staff.updated / stats.updated / roster.cleared events as SSE frames.
func (h *liveHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	eventID := chi.URLParam(r, "eventID")
	if _, err := h.events.GetByID(r.Context(), eventID, cid); err != nil {
		response.HandleError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cleanup := h.hub.Subscribe(eventID)
	defer cleanup()

	h.acquireMirror(eventID)
	defer h.releaseMirror(eventID)

	// Tell the client the stream is live before the first mutation arrives.
	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-ch:
			if !open {
				return
			}
			data, err := json.Marshal(ev.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, data)
			flusher.Flush()
		}
	}
}

func (h *liveHandlerImpl) acquireMirror(eventID string) {
	if h.subscriber == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if m, ok := h.mirrors[eventID]; ok {
		m.refs++
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.mirrors[eventID] = &mirror{cancel: cancel, refs: 1}
	go h.broadcaster.MirrorRemote(ctx, h.subscriber, eventID)
}

func (h *liveHandlerImpl) releaseMirror(eventID string) {
	if h.subscriber == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.mirrors[eventID]
	if !ok {
		return
	}
	m.refs--
	if m.refs == 0 {
		m.cancel()
		delete(h.mirrors, eventID)
	}
}
