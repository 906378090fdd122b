package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/models"
)

// memStore is an in-memory Store for actor tests.
type memStore struct {
	mu           sync.Mutex
	room         models.Room
	participants []models.Participant
	states       map[uint]models.PlayerState
	moves        []models.Move
	draws        []models.DeckDraw
	notes        map[uint]models.TherapyNote
	users        map[uint]models.User
	nextID       uint
}

func newMemStore(room models.Room) *memStore {
	return &memStore{
		room:   room,
		states: make(map[uint]models.PlayerState),
		notes:  make(map[uint]models.TherapyNote),
		users:  make(map[uint]models.User),
		nextID: 100,
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) addUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *memStore) addParticipant(p models.Participant) models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	s.participants = append(s.participants, p)
	return p
}

func (s *memStore) RoomByCode(code string) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.room.Code != code {
		return nil, ErrRoomNotFound
	}
	room := s.room
	return &room, nil
}

func (s *memStore) SaveRoom(room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.room = *room
	return nil
}

func (s *memStore) ParticipantsByRoom(roomID uint) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		if p.RoomID == roomID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) FirstOrCreateParticipant(p *models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.participants {
		if existing.RoomID == p.RoomID && existing.UserID == p.UserID {
			*p = existing
			return nil
		}
	}
	p.ID = s.id()
	s.participants = append(s.participants, *p)
	return nil
}

func (s *memStore) PlayerStatesByRoom(roomID uint) ([]models.PlayerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PlayerState, 0, len(s.states))
	for _, st := range s.states {
		if st.RoomID == roomID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *memStore) LastMove(roomID uint) (*models.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var last *models.Move
	for i := range s.moves {
		if s.moves[i].RoomID != roomID {
			continue
		}
		if last == nil || s.moves[i].TurnNumber > last.TurnNumber {
			last = &s.moves[i]
		}
	}
	if last == nil {
		return nil, nil
	}
	mv := *last
	return &mv, nil
}

func (s *memStore) MoveByID(id uint) (*models.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, mv := range s.moves {
		if mv.ID == id {
			out := mv
			return &out, nil
		}
	}
	return nil, ErrRoomNotFound
}

func (s *memStore) MovesByParticipant(participantID uint) ([]models.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Move
	for _, mv := range s.moves {
		if mv.ParticipantID == participantID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (s *memStore) CommitRoll(state *models.PlayerState, move *models.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state.ID == 0 {
		state.ID = s.id()
	}
	s.states[state.ParticipantID] = *state
	move.ID = s.id()
	s.moves = append(s.moves, *move)
	return nil
}

func (s *memStore) DeckDrawsByRoom(roomID uint) ([]models.DeckDraw, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.DeckDraw
	for _, d := range s.draws {
		if d.RoomID == roomID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *memStore) CreateDeckDraw(draw *models.DeckDraw) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draw.ID = s.id()
	s.draws = append(s.draws, *draw)
	return nil
}

func (s *memStore) UpsertTherapyNote(note *models.TherapyNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if note.ID == 0 {
		note.ID = s.id()
	}
	s.notes[note.MoveID] = *note
	return nil
}

func (s *memStore) UserByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		out := u
		return &out, nil
	}
	return nil, ErrRoomNotFound
}

// newTestClient builds a client with no underlying connection; outbound
// frames land in its send channel.
func newTestClient() *Client {
	id := uuid.NewString()
	return &Client{
		id:      id,
		send:    make(chan []byte, sendBuffer),
		limiter: rate.NewLimiter(rate.Inf, 1),
		log:     logrus.WithField("component", "test").WithField("conn_id", id),
	}
}

func drain(c *Client) int {
	n := 0
	for {
		select {
		case <-c.send:
			n++
		default:
			return n
		}
	}
}
