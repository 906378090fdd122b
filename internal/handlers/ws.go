package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/game"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler is the single gateway between websocket connections and room
// actors. It validates the connection ticket, decodes the tagged command
// frames and forwards each one to the room's actor, acking the outcome.
type WSHandler struct {
	registry      *game.Registry
	ticketService *services.TicketService
	aiService     *services.AIService
	log           *logrus.Entry
}

func NewWSHandler(registry *game.Registry, ticketService *services.TicketService, aiService *services.AIService) *WSHandler {
	return &WSHandler{
		registry:      registry,
		ticketService: ticketService,
		aiService:     aiService,
		log:           logrus.WithField("component", "ws"),
	}
}

type wsRequest struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type wsAck struct {
	Type    string         `json:"type"`
	Cmd     string         `json:"cmd"`
	OK      bool           `json:"ok"`
	Kind    game.Kind      `json:"kind,omitempty"`
	Error   string         `json:"error,omitempty"`
	State   *game.Snapshot `json:"state,omitempty"`
	Content string         `json:"content,omitempty"`
}

func ackOK(cmd string) wsAck {
	return wsAck{Type: "ack", Cmd: cmd, OK: true}
}

func ackErr(cmd string, err error) wsAck {
	return wsAck{Type: "ack", Cmd: cmd, OK: false, Kind: game.KindOf(err), Error: err.Error()}
}

// HandleRoom upgrades /ws/room/:code. The ticket is checked before the
// upgrade and before any room state is touched.
func (h *WSHandler) HandleRoom(c *gin.Context) {
	code := c.Param("code")

	userID, err := h.ticketService.Validate(c.Query("ticket"), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired ticket"})
		return
	}

	actor, err := h.registry.GetOrCreate(code)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		case errors.Is(err, game.ErrRoomClosed):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "room is closed"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to open room"})
		}
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := game.NewClient(conn)
	go client.WritePump()

	h.log.WithFields(logrus.Fields{"code": code, "user_id": userID}).Info("connection opened")
	h.readLoop(client, actor, userID)

	actor.Leave(client)
	client.Close()
	h.log.WithFields(logrus.Fields{"code": code, "user_id": userID}).Info("connection closed")
}

func (h *WSHandler) readLoop(client *game.Client, actor *game.Actor, userID uint) {
	for {
		raw, err := client.Read()
		if err != nil {
			return
		}

		var req wsRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			client.SendJSON(ackErr("", &game.Error{Kind: game.KindValidation, Message: "malformed frame"}))
			continue
		}
		if !client.Allow() {
			client.SendJSON(ackErr(req.Type, &game.Error{Kind: game.KindValidation, Message: "too many commands"}))
			continue
		}

		client.SendJSON(h.dispatch(client, actor, userID, req))
	}
}

func (h *WSHandler) dispatch(client *game.Client, actor *game.Actor, userID uint, req wsRequest) wsAck {
	ctx := context.Background()

	switch req.Type {
	case "room:join":
		snap, err := actor.Join(ctx, client, userID)
		if err != nil {
			return ackErr(req.Type, err)
		}
		ack := ackOK(req.Type)
		ack.State = snap
		return ack

	case "game:roll":
		if err := actor.Roll(ctx, client); err != nil {
			return ackErr(req.Type, err)
		}
		return ackOK(req.Type)

	case "deck:draw":
		var data struct {
			Count  int   `json:"count"`
			MoveID *uint `json:"move_id"`
		}
		if err := json.Unmarshal(req.Data, &data); err != nil {
			return ackErr(req.Type, &game.Error{Kind: game.KindValidation, Message: "malformed payload"})
		}
		if err := actor.Draw(ctx, client, data.Count, data.MoveID); err != nil {
			return ackErr(req.Type, err)
		}
		return ackOK(req.Type)

	case "therapy:save":
		var data struct {
			MoveID      uint   `json:"move_id"`
			Emotion     string `json:"emotion"`
			Intensity   int    `json:"intensity"`
			Insight     string `json:"insight"`
			Body        string `json:"body"`
			MicroAction string `json:"micro_action"`
		}
		if err := json.Unmarshal(req.Data, &data); err != nil {
			return ackErr(req.Type, &game.Error{Kind: game.KindValidation, Message: "malformed payload"})
		}
		note := game.NoteInput{
			Emotion:     data.Emotion,
			Intensity:   data.Intensity,
			Insight:     data.Insight,
			Body:        data.Body,
			MicroAction: data.MicroAction,
		}
		if err := actor.SaveTherapyNote(ctx, client, data.MoveID, note); err != nil {
			return ackErr(req.Type, err)
		}
		return ackOK(req.Type)

	case "game:nextTurn":
		if err := actor.NextTurn(ctx, client); err != nil {
			return ackErr(req.Type, err)
		}
		return ackOK(req.Type)

	case "room:close":
		if err := actor.CloseRoom(ctx, client); err != nil {
			return ackErr(req.Type, err)
		}
		return ackOK(req.Type)

	case "ai:tip", "ai:finalReport":
		var data struct {
			Intention string `json:"intention"`
		}
		if len(req.Data) > 0 {
			if err := json.Unmarshal(req.Data, &data); err != nil {
				return ackErr(req.Type, &game.Error{Kind: game.KindValidation, Message: "malformed payload"})
			}
		}
		kind := game.AITip
		if req.Type == "ai:finalReport" {
			kind = game.AIFinalReport
		}
		return h.assist(ctx, client, actor, req.Type, kind, data.Intention)

	default:
		return ackErr(req.Type, &game.Error{Kind: game.KindValidation, Message: "unknown command"})
	}
}

// assist resolves the prompt context inside the actor, then performs the
// HTTP call outside it so a slow model never stalls the room.
func (h *WSHandler) assist(ctx context.Context, client *game.Client, actor *game.Actor, cmd string, kind game.AIKind, intention string) wsAck {
	aiCtx, err := actor.ResolveAIContext(ctx, client, kind)
	if err != nil {
		return ackErr(cmd, err)
	}

	var content string
	switch kind {
	case game.AIFinalReport:
		content, err = h.aiService.GenerateFinalReport(aiCtx, intention)
	default:
		content, err = h.aiService.GenerateTip(aiCtx, intention)
	}
	if err != nil {
		h.log.WithError(err).Warn("ai assistance failed")
		return ackErr(cmd, &game.Error{Kind: game.KindInternal, Message: "assistance unavailable"})
	}

	ack := ackOK(cmd)
	ack.Content = content
	return ack
}
