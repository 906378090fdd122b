package game

import "github.com/rodrigojspires/caminhos-hekate-sub006/internal/models"

// Snapshot is the full canonical room state pushed to every subscriber after
// each committed mutation. Full state rather than deltas: a joining or
// reconnecting client never has to merge.
type Snapshot struct {
	Room         models.Room          `json:"room"`
	Participants []models.Participant `json:"participants"`
	PlayerStates []models.PlayerState `json:"player_states"`
	LastMove     *models.Move         `json:"last_move"`
	DeckHistory  []models.DeckDraw    `json:"deck_history"`
}
