package game

import (
	"time"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/board"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/models"
)

// Commands form a tagged union: one type per room operation, each with its
// own payload. They are only ever applied inside the room's actor loop, so
// none of them need locking.
type command interface {
	name() string
}

type joinCommand struct {
	client *Client
	userID uint
}

type leaveCommand struct {
	client *Client
}

type rollCommand struct {
	client *Client
}

type drawCommand struct {
	client *Client
	count  int
	moveID *uint
}

type NoteInput struct {
	Emotion     string
	Intensity   int
	Insight     string
	Body        string
	MicroAction string
}

type therapySaveCommand struct {
	client *Client
	moveID uint
	note   NoteInput
}

type nextTurnCommand struct {
	client *Client
}

type closeCommand struct {
	client *Client
}

// AIKind selects which prompt context an aiContextCommand resolves.
type AIKind string

const (
	AITip         AIKind = "tip"
	AIFinalReport AIKind = "final_report"
)

type aiContextCommand struct {
	client *Client
	kind   AIKind
}

// consentCommand refreshes the actor's canonical copy after consent was
// recorded out-of-band over REST.
type consentCommand struct {
	userID uint
	at     time.Time
}

func (joinCommand) name() string        { return "room:join" }
func (leaveCommand) name() string       { return "room:leave" }
func (rollCommand) name() string        { return "game:roll" }
func (drawCommand) name() string        { return "deck:draw" }
func (therapySaveCommand) name() string { return "therapy:save" }
func (nextTurnCommand) name() string    { return "game:nextTurn" }
func (closeCommand) name() string       { return "room:close" }
func (aiContextCommand) name() string   { return "ai:context" }
func (consentCommand) name() string     { return "consent:refresh" }

// AIContext is everything the AI collaborator needs to build a prompt. The
// actor resolves it under the gates; the HTTP call happens outside the loop.
type AIContext struct {
	Kind        AIKind
	Participant models.Participant
	Position    int
	House       *board.House
	Moves       []models.Move
}

type result struct {
	err       error
	snapshot  *Snapshot
	aiContext *AIContext
}

type envelope struct {
	cmd   command
	reply chan result
}
