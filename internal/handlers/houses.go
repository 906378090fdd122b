package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/board"
)

// HouseHandler serves the static board catalog.
type HouseHandler struct{}

func NewHouseHandler() *HouseHandler {
	return &HouseHandler{}
}

func (h *HouseHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, board.Houses())
}

func (h *HouseHandler) Get(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid house number"})
		return
	}
	house, ok := board.HouseByNumber(number)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "house not found"})
		return
	}
	c.JSON(http.StatusOK, house)
}
