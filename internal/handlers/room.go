package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/game"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/middleware"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/services"
)

type RoomHandler struct {
	roomService    *services.RoomService
	consentService *services.ConsentService
	ticketService  *services.TicketService
}

func NewRoomHandler(roomService *services.RoomService, consentService *services.ConsentService, ticketService *services.TicketService) *RoomHandler {
	return &RoomHandler{
		roomService:    roomService,
		consentService: consentService,
		ticketService:  ticketService,
	}
}

func (h *RoomHandler) Create(c *gin.Context) {
	room, err := h.roomService.Create(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create room"})
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.roomService.ListByTherapist(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list rooms"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.roomService.GetByCode(c.Param("code"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load room"})
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) AcceptConsent(c *gin.Context) {
	participant, err := h.consentService.Accept(c.Param("code"), middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, game.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		case errors.Is(err, game.ErrRoomClosed):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "room is closed"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to record consent"})
		}
		return
	}
	c.JSON(http.StatusOK, participant)
}

func (h *RoomHandler) IssueTicket(c *gin.Context) {
	code := c.Param("code")
	if _, err := h.roomService.GetByCode(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load room"})
		return
	}

	ticket, err := h.ticketService.Issue(middleware.UserID(c), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to issue ticket"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}
