package game

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/board"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/models"
)

// Registry maps room codes to live actors. An actor is created lazily on
// the first command against its room and released once the room is closed
// and its last subscriber detaches.
type Registry struct {
	store  Store
	engine *board.Engine
	deck   *board.Deck
	log    *logrus.Entry

	mu     sync.Mutex
	actors map[string]*Actor
}

func NewRegistry(store Store, engine *board.Engine, deck *board.Deck) *Registry {
	return &Registry{
		store:  store,
		engine: engine,
		deck:   deck,
		log:    logrus.WithField("component", "registry"),
		actors: make(map[string]*Actor),
	}
}

// GetOrCreate returns the live actor for a room, spinning one up from the
// database if needed. Rooms are only ever minted over REST by a therapist,
// so an unknown code is a hard not-found, never an implicit create.
func (r *Registry) GetOrCreate(code string) (*Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.actors[code]; ok {
		return a, nil
	}

	room, err := r.store.RoomByCode(code)
	if err != nil {
		return nil, err
	}
	if room.Status == models.RoomStatusClosed {
		return nil, ErrRoomClosed
	}

	a, err := newActor(code, *room, r)
	if err != nil {
		r.log.WithError(err).WithField("code", code).Error("load room state")
		return nil, ErrInternal
	}
	r.actors[code] = a
	go a.Run()
	return a, nil
}

// NotifyConsent forwards a freshly recorded consent to the room's actor, if
// one is live. A cold room needs nothing: the next actor load reads the
// participant rows anyway.
func (r *Registry) NotifyConsent(code string, userID uint, at time.Time) {
	r.mu.Lock()
	a, ok := r.actors[code]
	r.mu.Unlock()
	if ok {
		a.RefreshConsent(userID, at)
	}
}

func (r *Registry) remove(code string, a *Actor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.actors[code]; ok && current == a {
		delete(r.actors, code)
		r.log.WithField("code", code).Info("room actor released")
	}
}
