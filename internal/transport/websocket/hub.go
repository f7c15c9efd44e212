// Package websocket
package websocket

import (
	"context"
	"encoding/json"

	"uptimebar/internal/core"
	"uptimebar/internal/domain"
	"uptimebar/internal/logger"
)

// Hub fans server events out to subscribed dashboard connections. All state
// is owned by the Run goroutine.
type Hub struct {
	clients  map[*Client]bool
	channels map[string]map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	subscribe   chan *Subscription
	unsubscribe chan *Subscription

	events chan *domain.WsServerEvent

	snapshots *core.SnapshotStore
	log       logger.Logger
}

type Subscription struct {
	client  *Client
	channel string
}

func NewHub(log logger.Logger, snapshots *core.SnapshotStore) *Hub {
	return &Hub{
		clients:  make(map[*Client]bool),
		channels: make(map[string]map[*Client]bool),

		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *Subscription),
		unsubscribe: make(chan *Subscription),

		events: make(chan *domain.WsServerEvent, 100),

		snapshots: snapshots,
		log:       log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "id", client.ID, "total_clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Info("ws: client unregistered", "id", client.ID, "total_clients", len(h.clients))

				for channel, subs := range h.channels {
					if _, subscribed := subs[client]; subscribed {
						delete(subs, client)
						if len(subs) == 0 {
							delete(h.channels, channel)
						}
					}
				}
			}

		case sub := <-h.subscribe:
			if h.channels[sub.channel] == nil {
				h.channels[sub.channel] = make(map[*Client]bool)
			}
			h.channels[sub.channel][sub.client] = true
			h.log.Debug("ws: client subscribed", "id", sub.client.ID, "channel", sub.channel)

			h.replaySnapshot(sub)

		case sub := <-h.unsubscribe:
			if subs, ok := h.channels[sub.channel]; ok {
				if _, subscribed := subs[sub.client]; subscribed {
					delete(subs, sub.client)
					if len(subs) == 0 {
						delete(h.channels, sub.channel)
					}
					h.log.Debug("ws: client unsubscribed", "id", sub.client.ID, "channel", sub.channel)
				}
			}

		case event := <-h.events:
			h.handleEvent(event)

		case <-ctx.Done():
			return
		}
	}
}

// replaySnapshot sends the latest uptime payload to a fresh subscriber so
// dashboards render without waiting for the next sampler tick.
func (h *Hub) replaySnapshot(sub *Subscription) {
	if sub.channel != domain.WsChannelUptime || h.snapshots == nil {
		return
	}

	snap := h.snapshots.Get()
	if snap == nil {
		return
	}

	message, err := json.Marshal(&domain.WsServerEvent{
		Channel: domain.WsChannelUptime,
		Event:   domain.WsEventUptimeUpdated,
		Payload: snap,
	})
	if err != nil {
		h.log.Error("ws: failed to marshal snapshot", "error", err)
		return
	}

	select {
	case sub.client.send <- message:
	default:
		h.log.Warn("ws: snapshot dropped, client buffer full", "id", sub.client.ID)
	}
}

func (h *Hub) handleEvent(event *domain.WsServerEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.log.Error("ws: failed to marshal server event", "error", err)
		return
	}

	subs, ok := h.channels[event.Channel]
	if !ok {
		h.log.Debug("ws: event channel has no subscribers", "channel", event.Channel)
		return
	}

	for client := range subs {
		select {
		case client.send <- message:
		default:
			h.log.Warn("ws: client channel full, dropping event", "id", client.ID)
		}
	}
}

// Broadcast queues an event for every subscriber of the channel. It never
// blocks the caller; an overloaded hub drops the event and logs it.
func (h *Hub) Broadcast(channel, event string, payload any) {
	select {
	case h.events <- &domain.WsServerEvent{Channel: channel, Event: event, Payload: payload}:
	default:
		h.log.Warn("ws: event queue full, dropping broadcast", "channel", channel, "event", event)
	}
}
