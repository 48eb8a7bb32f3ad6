package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"headway/internal/domain"
	"headway/internal/i18n"
	"headway/internal/routing"
)

// WSHandler runs route searches over a WebSocket. Each connection keeps
// only its latest search; starting a new one discards the previous routes.
type WSHandler struct {
	service *routing.Service
	catalog *i18n.Catalog
	logger  *slog.Logger
}

func NewWSHandler(service *routing.Service, catalog *i18n.Catalog, logger *slog.Logger) *WSHandler {
	return &WSHandler{service: service, catalog: catalog, logger: logger.With("handler", "websocket")}
}

type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SearchPayload struct {
	From  *domain.LatLon    `json:"from"`
	To    *domain.LatLon    `json:"to"`
	Mode  domain.TravelMode `json:"mode"`
	Units string            `json:"units,omitempty"`
	Lang  string            `json:"lang,omitempty"`
}

type RoutesMessage struct {
	Type    string        `json:"type"`
	Payload RoutesPayload `json:"payload"`
}

type RoutesPayload struct {
	SearchID string                `json:"searchId"`
	Routes   []domain.RouteSummary `json:"routes"`
}

type ErrorMessage struct {
	Type    string        `json:"type"`
	Payload errorResponse `json:"payload"`
}

type PongMessage struct {
	Type string `json:"type"`
}

type wsClient struct {
	id       string
	send     chan []byte
	lang     []string
	searchID string
}

func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Error("websocket accept failed", "error", err)
		return
	}

	client := &wsClient{
		id:   uuid.New().String(),
		send: make(chan []byte, 16),
		lang: i18n.AcceptLanguage(r.Header.Get("Accept-Language")),
	}

	ServerStats.IncWSConnections()
	defer ServerStats.DecWSConnections()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go h.writeLoop(ctx, conn, client)

	h.readLoop(ctx, conn, client)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *wsClient) {
	defer func() {
		if client.searchID != "" {
			h.service.Discard(client.searchID)
		}
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		msgType, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				h.logger.Debug("websocket read error", "client_id", client.id, "error", err)
			}
			return
		}
		ServerStats.IncWSMessagesIn()

		if msgType != websocket.MessageText {
			continue
		}

		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Debug("invalid message format", "client_id", client.id, "error", err)
			h.sendError(client, "invalid message format")
			continue
		}

		switch msg.Type {
		case "search":
			var payload SearchPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				h.sendError(client, "invalid search payload")
				continue
			}
			h.search(ctx, client, payload)

		case "ping":
			h.send(client, PongMessage{Type: "pong"})
		}
	}
}

func (h *WSHandler) search(ctx context.Context, client *wsClient, payload SearchPayload) {
	units, err := parseUnits(payload.Units)
	if err != nil {
		h.sendError(client, "invalid units: "+err.Error())
		return
	}
	mode := payload.Mode
	if mode == "" {
		mode = domain.TravelModeCar
	}

	tags := client.lang
	if payload.Lang != "" {
		tags = append([]string{payload.Lang}, client.lang...)
	}

	ServerStats.IncSearches()
	res, err := h.service.FetchBest(ctx, h.catalog.Localizer(tags...), routing.Query{
		From:  payload.From,
		To:    payload.To,
		Mode:  mode,
		Units: units,
	})
	if err != nil {
		h.sendError(client, err.Error())
		return
	}

	if client.searchID != "" {
		h.service.Discard(client.searchID)
	}
	client.searchID = res.SearchID

	h.send(client, RoutesMessage{
		Type: "routes",
		Payload: RoutesPayload{
			SearchID: res.SearchID,
			Routes:   res.Summaries(),
		},
	})
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *wsClient) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case msg := <-client.send:
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				return
			}
			ServerStats.IncWSMessagesOut()

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) send(client *wsClient, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	select {
	case client.send <- data:
	default:
		h.logger.Debug("client send buffer full", "client_id", client.id)
	}
}

func (h *WSHandler) sendError(client *wsClient, message string) {
	h.send(client, ErrorMessage{Type: "error", Payload: errorResponse{Error: message}})
}
