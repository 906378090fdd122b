package game

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/board"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/models"
)

const (
	testRoomCode    = "ABCD23"
	therapistUserID = uint(1)
	player1UserID   = uint(2)
	player2UserID   = uint(3)
)

type fixture struct {
	store *memStore
	reg   *Registry
	actor *Actor

	therapist *Client
	player1   *Client
	player2   *Client
}

// setup seeds a pending room with a therapist and two consented players and
// returns a live actor with no connections yet.
func setup(t *testing.T) *fixture {
	t.Helper()

	room := models.Room{
		ID:          1,
		TherapistID: therapistUserID,
		Code:        testRoomCode,
		Status:      models.RoomStatusPending,
	}
	store := newMemStore(room)
	store.addUser(models.User{ID: therapistUserID, Username: "ana", DisplayName: "Ana"})
	store.addUser(models.User{ID: player1UserID, Username: "bruno"})
	store.addUser(models.User{ID: player2UserID, Username: "clara"})

	now := time.Now()
	store.addParticipant(models.Participant{
		ID: 11, RoomID: 1, UserID: therapistUserID,
		Role: models.RoleTherapist, DisplayName: "Ana",
		ConsentAcceptedAt: &now, JoinedAt: now,
	})
	store.addParticipant(models.Participant{
		ID: 12, RoomID: 1, UserID: player1UserID,
		Role: models.RolePlayer, DisplayName: "bruno",
		ConsentAcceptedAt: &now, JoinedAt: now.Add(time.Second),
	})
	store.addParticipant(models.Participant{
		ID: 13, RoomID: 1, UserID: player2UserID,
		Role: models.RolePlayer, DisplayName: "clara",
		ConsentAcceptedAt: &now, JoinedAt: now.Add(2 * time.Second),
	})

	engine := board.NewEngineWithRand(board.DefaultConfig(), rand.New(rand.NewSource(42)))
	deck := board.NewDeckWithRand(72, rand.New(rand.NewSource(42)))
	reg := NewRegistry(store, engine, deck)

	actor, err := reg.GetOrCreate(testRoomCode)
	require.NoError(t, err)

	return &fixture{
		store:     store,
		reg:       reg,
		actor:     actor,
		therapist: newTestClient(),
		player1:   newTestClient(),
		player2:   newTestClient(),
	}
}

func (f *fixture) joinAll(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.actor.Join(ctx, f.therapist, therapistUserID)
	require.NoError(t, err)
	_, err = f.actor.Join(ctx, f.player1, player1UserID)
	require.NoError(t, err)
	_, err = f.actor.Join(ctx, f.player2, player2UserID)
	require.NoError(t, err)
}

func TestJoinActivatesRoom(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	snap, err := f.actor.Join(ctx, f.therapist, therapistUserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusPending, snap.Room.Status)
	assert.True(t, snap.Room.TherapistOnline)

	snap, err = f.actor.Join(ctx, f.player1, player1UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusActive, snap.Room.Status)
	require.NotNil(t, snap.Room.TurnParticipantID)
	assert.Equal(t, uint(12), *snap.Room.TurnParticipantID, "first player in join order opens")

	assert.Equal(t, models.RoomStatusActive, f.store.room.Status, "activation is persisted")
}

func TestJoinUnknownUserCreatesParticipant(t *testing.T) {
	f := setup(t)
	f.store.addUser(models.User{ID: 9, Username: "dora"})

	snap, err := f.actor.Join(context.Background(), newTestClient(), 9)
	require.NoError(t, err)
	require.Len(t, snap.Participants, 4)
	joined := snap.Participants[3]
	assert.Equal(t, models.RolePlayer, joined.Role)
	assert.Equal(t, "dora", joined.DisplayName)
	assert.False(t, joined.HasConsented())
}

func TestRollGates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.joinAll(t)

	t.Run("only the turn owner may roll", func(t *testing.T) {
		err := f.actor.Roll(ctx, f.player2)
		assert.ErrorIs(t, err, ErrNotYourTurn)
	})

	t.Run("connections that never joined are rejected", func(t *testing.T) {
		err := f.actor.Roll(ctx, newTestClient())
		assert.ErrorIs(t, err, ErrNotJoined)
	})

	t.Run("turn owner rolls", func(t *testing.T) {
		require.NoError(t, f.actor.Roll(ctx, f.player1))
		require.Len(t, f.store.moves, 1)
		assert.Equal(t, 1, f.store.moves[0].TurnNumber)
		assert.Equal(t, uint(12), f.store.moves[0].ParticipantID)
	})

	t.Run("therapist offline blocks the roll", func(t *testing.T) {
		f.actor.Leave(f.therapist)
		err := f.actor.Roll(ctx, f.player1)
		assert.ErrorIs(t, err, ErrTherapistOffline)

		_, err = f.actor.Join(ctx, f.therapist, therapistUserID)
		require.NoError(t, err)
		assert.NoError(t, f.actor.Roll(ctx, f.player1))
	})
}

func TestRollRequiresConsent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// Strip player1's consent before the actor loads.
	f.store.participants[1].ConsentAcceptedAt = nil
	actor, err := NewRegistry(f.store, f.reg.engine, f.reg.deck).GetOrCreate(testRoomCode)
	require.NoError(t, err)

	therapist, player := newTestClient(), newTestClient()
	_, err = actor.Join(ctx, therapist, therapistUserID)
	require.NoError(t, err)
	_, err = actor.Join(ctx, player, player1UserID)
	require.NoError(t, err)

	err = actor.Roll(ctx, player)
	assert.ErrorIs(t, err, ErrConsentRequired)

	actor.RefreshConsent(player1UserID, time.Now())
	assert.NoError(t, actor.Roll(ctx, player))
}

func TestConcurrentRollsSerialize(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.joinAll(t)

	const rolls = 20
	var wg sync.WaitGroup
	for i := 0; i < rolls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = f.actor.Roll(ctx, f.player1)
		}()
	}
	wg.Wait()

	// Every committed move carries a distinct, gap-free turn number even
	// though the rolls raced.
	seen := make(map[int]bool)
	for _, mv := range f.store.moves {
		assert.False(t, seen[mv.TurnNumber], "duplicate turn number %d", mv.TurnNumber)
		seen[mv.TurnNumber] = true
	}
	for turn := 1; turn <= len(f.store.moves); turn++ {
		assert.True(t, seen[turn], "missing turn number %d", turn)
	}
}

func TestNextTurn(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.joinAll(t)

	t.Run("players may not advance the turn", func(t *testing.T) {
		err := f.actor.NextTurn(ctx, f.player1)
		assert.ErrorIs(t, err, ErrTherapistOnly)
	})

	t.Run("advances in join order and wraps", func(t *testing.T) {
		require.NoError(t, f.actor.NextTurn(ctx, f.therapist))
		assert.Equal(t, uint(13), *f.store.room.TurnParticipantID)

		require.NoError(t, f.actor.NextTurn(ctx, f.therapist))
		assert.Equal(t, uint(12), *f.store.room.TurnParticipantID)
	})
}

func TestNextTurnSkipsCompletedPlayers(t *testing.T) {
	f := setup(t)
	f.store.states[13] = models.PlayerState{
		ID: 50, RoomID: 1, ParticipantID: 13,
		Position: 72, HasStarted: true, HasCompleted: true,
	}
	actor, err := NewRegistry(f.store, f.reg.engine, f.reg.deck).GetOrCreate(testRoomCode)
	require.NoError(t, err)

	ctx := context.Background()
	therapist, player := newTestClient(), newTestClient()
	_, err = actor.Join(ctx, therapist, therapistUserID)
	require.NoError(t, err)
	_, err = actor.Join(ctx, player, player1UserID)
	require.NoError(t, err)

	require.NoError(t, actor.NextTurn(ctx, therapist))
	assert.Equal(t, uint(12), *f.store.room.TurnParticipantID, "completed player is skipped")
}

func TestCompletedPlayerCannotRoll(t *testing.T) {
	f := setup(t)
	f.store.states[12] = models.PlayerState{
		ID: 50, RoomID: 1, ParticipantID: 12,
		Position: 72, HasStarted: true, HasCompleted: true,
	}
	actor, err := NewRegistry(f.store, f.reg.engine, f.reg.deck).GetOrCreate(testRoomCode)
	require.NoError(t, err)

	ctx := context.Background()
	therapist, player := newTestClient(), newTestClient()
	_, err = actor.Join(ctx, therapist, therapistUserID)
	require.NoError(t, err)
	_, err = actor.Join(ctx, player, player1UserID)
	require.NoError(t, err)

	err = actor.Roll(ctx, player)
	assert.ErrorIs(t, err, ErrJourneyComplete)
}

func TestDeckDraw(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.joinAll(t)

	t.Run("invalid count", func(t *testing.T) {
		err := f.actor.Draw(ctx, f.player1, 5, nil)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("draw is recorded and broadcast", func(t *testing.T) {
		drain(f.player2)
		require.NoError(t, f.actor.Draw(ctx, f.player1, 2, nil))
		require.Len(t, f.store.draws, 1)
		assert.Len(t, f.store.draws[0].Houses, 2)
		assert.Equal(t, uint(12), f.store.draws[0].DrawnByID)
		assert.Greater(t, drain(f.player2), 0, "other subscribers see the draw")
	})

	t.Run("draw may reference a move in this room", func(t *testing.T) {
		require.NoError(t, f.actor.Roll(ctx, f.player1))
		moveID := f.store.moves[0].ID
		require.NoError(t, f.actor.Draw(ctx, f.player1, 1, &moveID))

		unknown := uint(9999)
		err := f.actor.Draw(ctx, f.player1, 1, &unknown)
		assert.Equal(t, KindValidation, KindOf(err))
	})
}

func TestTherapyNoteLock(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.joinAll(t)

	require.NoError(t, f.actor.Roll(ctx, f.player1))
	first := f.store.moves[0].ID

	note := NoteInput{Emotion: "medo", Intensity: 7, Insight: "algo se move"}

	t.Run("author annotates the last move", func(t *testing.T) {
		require.NoError(t, f.actor.SaveTherapyNote(ctx, f.player1, first, note))
		saved := f.store.notes[first]
		assert.Equal(t, "medo", saved.Emotion)
		assert.Equal(t, 7, saved.Intensity)
	})

	t.Run("note is editable while the move is last", func(t *testing.T) {
		note.Intensity = 4
		require.NoError(t, f.actor.SaveTherapyNote(ctx, f.player1, first, note))
		assert.Equal(t, 4, f.store.notes[first].Intensity)
	})

	t.Run("only the author may annotate", func(t *testing.T) {
		err := f.actor.SaveTherapyNote(ctx, f.therapist, first, note)
		assert.ErrorIs(t, err, ErrNotYourMove)
	})

	t.Run("intensity is bounded", func(t *testing.T) {
		err := f.actor.SaveTherapyNote(ctx, f.player1, first, NoteInput{Intensity: 11})
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("a superseded move is locked", func(t *testing.T) {
		require.NoError(t, f.actor.Roll(ctx, f.player1))
		err := f.actor.SaveTherapyNote(ctx, f.player1, first, note)
		assert.ErrorIs(t, err, ErrMoveLocked)
	})
}

func TestCloseRoom(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.joinAll(t)

	t.Run("players may not close", func(t *testing.T) {
		err := f.actor.CloseRoom(ctx, f.player1)
		assert.ErrorIs(t, err, ErrTherapistOnly)
	})

	t.Run("therapist closes", func(t *testing.T) {
		require.NoError(t, f.actor.CloseRoom(ctx, f.therapist))
		assert.Equal(t, models.RoomStatusClosed, f.store.room.Status)
		assert.Nil(t, f.store.room.TurnParticipantID)
	})

	t.Run("commands against a closed room fail", func(t *testing.T) {
		assert.ErrorIs(t, f.actor.Roll(ctx, f.player1), ErrRoomClosed)
		assert.ErrorIs(t, f.actor.NextTurn(ctx, f.therapist), ErrRoomClosed)
		_, err := f.actor.Join(ctx, newTestClient(), player2UserID)
		assert.ErrorIs(t, err, ErrRoomClosed)
	})

	t.Run("actor is released after the last leave", func(t *testing.T) {
		f.actor.Leave(f.player1)
		f.actor.Leave(f.player2)
		f.actor.Leave(f.therapist)

		_, err := f.reg.GetOrCreate(testRoomCode)
		assert.ErrorIs(t, err, ErrRoomClosed)
	})
}

func TestAIContextResolution(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.joinAll(t)

	t.Run("tip carries the current house once on board", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			require.NoError(t, f.actor.Roll(ctx, f.player1))
			if st := f.store.states[12]; st.HasStarted {
				break
			}
		}
		aiCtx, err := f.actor.ResolveAIContext(ctx, f.player1, AITip)
		require.NoError(t, err)
		if st := f.store.states[12]; st.HasStarted {
			require.NotNil(t, aiCtx.House)
			assert.Equal(t, st.Position, aiCtx.House.Number)
		}
	})

	t.Run("final report carries the move history", func(t *testing.T) {
		aiCtx, err := f.actor.ResolveAIContext(ctx, f.player1, AIFinalReport)
		require.NoError(t, err)
		assert.Equal(t, len(f.store.moves), len(aiCtx.Moves))
	})
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.joinAll(t)

	drain(f.therapist)
	drain(f.player1)
	drain(f.player2)

	require.NoError(t, f.actor.Roll(ctx, f.player1))

	assert.Equal(t, 1, drain(f.therapist))
	assert.Equal(t, 1, drain(f.player1))
	assert.Equal(t, 1, drain(f.player2))
}

func TestRegistryReusesLiveActor(t *testing.T) {
	f := setup(t)

	again, err := f.reg.GetOrCreate(testRoomCode)
	require.NoError(t, err)
	assert.Same(t, f.actor, again)

	_, err = f.reg.GetOrCreate("NOPE99")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
