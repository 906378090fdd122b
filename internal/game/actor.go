package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/board"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/models"
)

// Actor owns the canonical state of one room and applies commands strictly
// one at a time: commands may arrive concurrently from any number of
// connections, but the loop guarantees at most one is in flight per room.
// That is what makes one-move-per-turn hold without locks on the state.
type Actor struct {
	code     string
	store    Store
	engine   *board.Engine
	deck     *board.Deck
	registry *Registry
	log      *logrus.Entry

	inbox    chan envelope
	done     chan struct{}
	released bool

	room         models.Room
	participants []models.Participant
	states       map[uint]*models.PlayerState
	lastMove     *models.Move
	deckHistory  []models.DeckDraw

	subscribers     map[*Client]uint
	therapistOnline bool
}

func newActor(code string, room models.Room, reg *Registry) (*Actor, error) {
	a := &Actor{
		code:        code,
		store:       reg.store,
		engine:      reg.engine,
		deck:        reg.deck,
		registry:    reg,
		log:         logrus.WithField("component", "room").WithField("code", code),
		inbox:       make(chan envelope, 256),
		done:        make(chan struct{}),
		room:        room,
		states:      make(map[uint]*models.PlayerState),
		subscribers: make(map[*Client]uint),
	}

	participants, err := a.store.ParticipantsByRoom(room.ID)
	if err != nil {
		return nil, err
	}
	a.participants = participants

	states, err := a.store.PlayerStatesByRoom(room.ID)
	if err != nil {
		return nil, err
	}
	for i := range states {
		st := states[i]
		a.states[st.ParticipantID] = &st
	}

	if a.lastMove, err = a.store.LastMove(room.ID); err != nil {
		return nil, err
	}
	if a.deckHistory, err = a.store.DeckDrawsByRoom(room.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Actor) Code() string { return a.code }

// Run consumes the inbox until the room is closed and its last subscriber
// detaches. It must run in exactly one goroutine.
func (a *Actor) Run() {
	for env := range a.inbox {
		env.reply <- a.apply(env.cmd)
		if a.released {
			close(a.done)
			return
		}
	}
}

func (a *Actor) execute(ctx context.Context, cmd command) result {
	reply := make(chan result, 1)
	select {
	case a.inbox <- envelope{cmd: cmd, reply: reply}:
	case <-a.done:
		return result{err: ErrRoomClosed}
	case <-ctx.Done():
		return result{err: ctx.Err()}
	}
	select {
	case res := <-reply:
		return res
	case <-a.done:
		return result{err: ErrRoomClosed}
	case <-ctx.Done():
		return result{err: ctx.Err()}
	}
}

// --- public command surface ---

func (a *Actor) Join(ctx context.Context, client *Client, userID uint) (*Snapshot, error) {
	res := a.execute(ctx, joinCommand{client: client, userID: userID})
	return res.snapshot, res.err
}

func (a *Actor) Leave(client *Client) {
	a.execute(context.Background(), leaveCommand{client: client})
}

func (a *Actor) Roll(ctx context.Context, client *Client) error {
	return a.execute(ctx, rollCommand{client: client}).err
}

func (a *Actor) Draw(ctx context.Context, client *Client, count int, moveID *uint) error {
	return a.execute(ctx, drawCommand{client: client, count: count, moveID: moveID}).err
}

func (a *Actor) SaveTherapyNote(ctx context.Context, client *Client, moveID uint, note NoteInput) error {
	return a.execute(ctx, therapySaveCommand{client: client, moveID: moveID, note: note}).err
}

func (a *Actor) NextTurn(ctx context.Context, client *Client) error {
	return a.execute(ctx, nextTurnCommand{client: client}).err
}

func (a *Actor) CloseRoom(ctx context.Context, client *Client) error {
	return a.execute(ctx, closeCommand{client: client}).err
}

func (a *Actor) ResolveAIContext(ctx context.Context, client *Client, kind AIKind) (*AIContext, error) {
	res := a.execute(ctx, aiContextCommand{client: client, kind: kind})
	return res.aiContext, res.err
}

// RefreshConsent is called after consent is recorded over REST so the
// canonical copy and every subscriber catch up.
func (a *Actor) RefreshConsent(userID uint, at time.Time) {
	a.execute(context.Background(), consentCommand{userID: userID, at: at})
}

// --- command application ---

func (a *Actor) apply(cmd command) result {
	a.log.WithField("cmd", cmd.name()).Debug("applying command")

	switch c := cmd.(type) {
	case joinCommand:
		return a.handleJoin(c)
	case leaveCommand:
		return a.handleLeave(c)
	case rollCommand:
		return a.handleRoll(c)
	case drawCommand:
		return a.handleDraw(c)
	case therapySaveCommand:
		return a.handleTherapySave(c)
	case nextTurnCommand:
		return a.handleNextTurn(c)
	case closeCommand:
		return a.handleClose(c)
	case aiContextCommand:
		return a.handleAIContext(c)
	case consentCommand:
		return a.handleConsentRefresh(c)
	default:
		a.log.Errorf("unknown command %T", cmd)
		return result{err: ErrInternal}
	}
}

func (a *Actor) handleJoin(cmd joinCommand) result {
	if a.room.Status == models.RoomStatusClosed {
		return result{err: ErrRoomClosed}
	}

	p := a.participantByUser(cmd.userID)
	if p == nil {
		user, err := a.store.UserByID(cmd.userID)
		if err != nil {
			a.log.WithError(err).Error("load user on join")
			return result{err: ErrInternal}
		}
		role := models.RolePlayer
		if cmd.userID == a.room.TherapistID {
			role = models.RoleTherapist
		}
		name := user.DisplayName
		if name == "" {
			name = user.Username
		}
		created := models.Participant{
			RoomID:      a.room.ID,
			UserID:      cmd.userID,
			Role:        role,
			DisplayName: name,
			JoinedAt:    time.Now(),
		}
		if err := a.store.FirstOrCreateParticipant(&created); err != nil {
			a.log.WithError(err).Error("create participant")
			return result{err: ErrInternal}
		}
		a.participants = append(a.participants, created)
		p = &a.participants[len(a.participants)-1]
	}

	a.subscribers[cmd.client] = p.ID
	a.refreshPresence()

	if a.room.Status == models.RoomStatusPending {
		if err := a.maybeActivate(); err != nil {
			delete(a.subscribers, cmd.client)
			a.refreshPresence()
			return result{err: ErrInternal}
		}
	}

	snap := a.snapshot()
	a.broadcast(snap)
	a.log.WithField("participant_id", p.ID).Info("participant joined")
	return result{snapshot: snap}
}

// maybeActivate performs PENDING -> ACTIVE once the therapist is online and
// at least one player is connected. The first player in join order opens.
func (a *Actor) maybeActivate() error {
	if !a.therapistOnline {
		return nil
	}
	players := a.playersInOrder()
	playerOnline := false
	for _, pid := range a.subscribers {
		if p := a.participantByID(pid); p != nil && p.Role == models.RolePlayer {
			playerOnline = true
			break
		}
	}
	if !playerOnline || len(players) == 0 {
		return nil
	}

	updated := a.room
	updated.Status = models.RoomStatusActive
	updated.CurrentTurnIndex = 0
	first := players[0].ID
	updated.TurnParticipantID = &first
	if err := a.store.SaveRoom(&updated); err != nil {
		a.log.WithError(err).Error("activate room")
		return err
	}
	a.room = updated
	a.log.Info("room activated")
	return nil
}

func (a *Actor) handleLeave(cmd leaveCommand) result {
	if _, ok := a.subscribers[cmd.client]; !ok {
		return result{}
	}
	delete(a.subscribers, cmd.client)
	presenceChanged := a.refreshPresence()

	if len(a.subscribers) == 0 && a.room.Status == models.RoomStatusClosed {
		a.registry.remove(a.code, a)
		a.released = true
		return result{}
	}
	if presenceChanged {
		a.broadcast(a.snapshot())
	}
	return result{}
}

func (a *Actor) handleRoll(cmd rollCommand) result {
	p, err := a.resolve(cmd.client)
	if err != nil {
		return result{err: err}
	}
	if a.room.Status != models.RoomStatusActive {
		return result{err: ErrRoomNotActive}
	}
	if a.room.TurnParticipantID == nil || *a.room.TurnParticipantID != p.ID {
		return result{err: ErrNotYourTurn}
	}
	if !p.HasConsented() {
		return result{err: ErrConsentRequired}
	}
	if !a.therapistOnline {
		return result{err: ErrTherapistOffline}
	}

	st := a.states[p.ID]
	if st == nil {
		st = &models.PlayerState{
			RoomID:          a.room.ID,
			ParticipantID:   p.ID,
			RollsUntilStart: a.engine.Config().StartGraceRolls,
		}
	}
	if st.HasCompleted {
		return result{err: ErrJourneyComplete}
	}

	outcome := a.engine.Roll(board.RollInput{
		Position:        st.Position,
		HasStarted:      st.HasStarted,
		RollsUntilStart: st.RollsUntilStart,
	})

	turnNumber := 1
	if a.lastMove != nil {
		turnNumber = a.lastMove.TurnNumber + 1
	}
	move := models.Move{
		RoomID:        a.room.ID,
		ParticipantID: p.ID,
		TurnNumber:    turnNumber,
		DiceValue:     outcome.DiceValue,
		FromPos:       outcome.FromPos,
		ToPos:         outcome.ToPos,
		Entered:       outcome.Entered,
		CreatedAt:     time.Now(),
	}

	updated := *st
	updated.Position = outcome.ToPos
	updated.HasStarted = outcome.HasStarted
	updated.HasCompleted = outcome.Completed
	updated.RollsUntilStart = outcome.RollsUntilStart
	updated.RollCountTotal++

	if err := a.store.CommitRoll(&updated, &move); err != nil {
		a.log.WithError(err).Error("commit roll")
		return result{err: ErrInternal}
	}
	a.states[p.ID] = &updated
	a.lastMove = &move

	a.log.WithFields(logrus.Fields{
		"participant_id": p.ID,
		"dice":           move.DiceValue,
		"to_pos":         move.ToPos,
		"turn_number":    move.TurnNumber,
	}).Info("move committed")

	a.broadcast(a.snapshot())
	return result{}
}

func (a *Actor) handleDraw(cmd drawCommand) result {
	p, err := a.resolve(cmd.client)
	if err != nil {
		return result{err: err}
	}
	if !p.HasConsented() {
		return result{err: ErrConsentRequired}
	}

	houses, err := a.deck.Draw(cmd.count)
	if err != nil {
		return result{err: validation(err.Error())}
	}
	if cmd.moveID != nil {
		mv, err := a.store.MoveByID(*cmd.moveID)
		if err != nil || mv.RoomID != a.room.ID {
			return result{err: validation("move not found in this room")}
		}
	}

	draw := models.DeckDraw{
		RoomID:    a.room.ID,
		DrawnByID: p.ID,
		MoveID:    cmd.moveID,
		Houses:    houses,
		CreatedAt: time.Now(),
	}
	if err := a.store.CreateDeckDraw(&draw); err != nil {
		a.log.WithError(err).Error("create deck draw")
		return result{err: ErrInternal}
	}
	a.deckHistory = append(a.deckHistory, draw)

	a.broadcast(a.snapshot())
	return result{}
}

func (a *Actor) handleTherapySave(cmd therapySaveCommand) result {
	p, err := a.resolve(cmd.client)
	if err != nil {
		return result{err: err}
	}
	if !p.HasConsented() {
		return result{err: ErrConsentRequired}
	}
	if cmd.note.Intensity < 0 || cmd.note.Intensity > 10 {
		return result{err: validation("intensity must be between 0 and 10")}
	}
	if a.lastMove == nil || a.lastMove.ID != cmd.moveID {
		return result{err: ErrMoveLocked}
	}
	if a.lastMove.ParticipantID != p.ID {
		return result{err: ErrNotYourMove}
	}

	note := models.TherapyNote{MoveID: a.lastMove.ID, CreatedAt: time.Now()}
	if a.lastMove.Note != nil {
		note = *a.lastMove.Note
	}
	note.Emotion = cmd.note.Emotion
	note.Intensity = cmd.note.Intensity
	note.Insight = cmd.note.Insight
	note.Body = cmd.note.Body
	note.MicroAction = cmd.note.MicroAction
	note.UpdatedAt = time.Now()

	if err := a.store.UpsertTherapyNote(&note); err != nil {
		a.log.WithError(err).Error("save therapy note")
		return result{err: ErrInternal}
	}
	a.lastMove.Note = &note

	a.broadcast(a.snapshot())
	return result{}
}

func (a *Actor) handleNextTurn(cmd nextTurnCommand) result {
	p, err := a.resolve(cmd.client)
	if err != nil {
		return result{err: err}
	}
	if p.Role != models.RoleTherapist {
		return result{err: ErrTherapistOnly}
	}
	if a.room.Status != models.RoomStatusActive {
		return result{err: ErrRoomNotActive}
	}

	players := a.playersInOrder()
	if len(players) == 0 {
		return result{err: ErrRoomNotActive}
	}

	current := -1
	if a.room.TurnParticipantID != nil {
		for i, pl := range players {
			if pl.ID == *a.room.TurnParticipantID {
				current = i
				break
			}
		}
	}

	// Next player in join order, wrapping; players whose journey is complete
	// are skipped while anyone is still travelling.
	next := (current + 1) % len(players)
	for i := 0; i < len(players); i++ {
		idx := (current + 1 + i) % len(players)
		st := a.states[players[idx].ID]
		if st == nil || !st.HasCompleted {
			next = idx
			break
		}
	}

	updated := a.room
	updated.CurrentTurnIndex = next
	nextID := players[next].ID
	updated.TurnParticipantID = &nextID
	if err := a.store.SaveRoom(&updated); err != nil {
		a.log.WithError(err).Error("advance turn")
		return result{err: ErrInternal}
	}
	a.room = updated

	a.broadcast(a.snapshot())
	return result{}
}

func (a *Actor) handleClose(cmd closeCommand) result {
	p, err := a.resolve(cmd.client)
	if err != nil {
		return result{err: err}
	}
	if p.Role != models.RoleTherapist {
		return result{err: ErrTherapistOnly}
	}

	updated := a.room
	updated.Status = models.RoomStatusClosed
	updated.TurnParticipantID = nil
	if err := a.store.SaveRoom(&updated); err != nil {
		a.log.WithError(err).Error("close room")
		return result{err: ErrInternal}
	}
	a.room = updated
	a.log.Info("room closed")

	a.broadcast(a.snapshot())
	return result{}
}

func (a *Actor) handleAIContext(cmd aiContextCommand) result {
	p, err := a.resolve(cmd.client)
	if err != nil {
		return result{err: err}
	}
	if !p.HasConsented() {
		return result{err: ErrConsentRequired}
	}

	aiCtx := &AIContext{Kind: cmd.kind, Participant: *p}
	if st := a.states[p.ID]; st != nil {
		aiCtx.Position = st.Position
		if h, ok := board.HouseByNumber(st.Position); ok {
			aiCtx.House = &h
		}
	}
	if cmd.kind == AIFinalReport {
		moves, err := a.store.MovesByParticipant(p.ID)
		if err != nil {
			a.log.WithError(err).Error("load moves for report")
			return result{err: ErrInternal}
		}
		aiCtx.Moves = moves
	}
	return result{aiContext: aiCtx}
}

func (a *Actor) handleConsentRefresh(cmd consentCommand) result {
	found := false
	for i := range a.participants {
		if a.participants[i].UserID == cmd.userID {
			at := cmd.at
			a.participants[i].ConsentAcceptedAt = &at
			found = true
			break
		}
	}
	if !found {
		// Consent can be recorded before the first join; pick up the row.
		participants, err := a.store.ParticipantsByRoom(a.room.ID)
		if err != nil {
			a.log.WithError(err).Error("reload participants after consent")
			return result{}
		}
		a.participants = participants
	}
	a.broadcast(a.snapshot())
	return result{}
}

// --- helpers ---

// resolve maps a connection to its participant, rejecting commands from
// connections that never joined and any command against a closed room.
func (a *Actor) resolve(client *Client) (*models.Participant, error) {
	pid, ok := a.subscribers[client]
	if !ok {
		return nil, ErrNotJoined
	}
	if a.room.Status == models.RoomStatusClosed {
		return nil, ErrRoomClosed
	}
	p := a.participantByID(pid)
	if p == nil {
		return nil, ErrInternal
	}
	return p, nil
}

func (a *Actor) participantByID(id uint) *models.Participant {
	for i := range a.participants {
		if a.participants[i].ID == id {
			return &a.participants[i]
		}
	}
	return nil
}

func (a *Actor) participantByUser(userID uint) *models.Participant {
	for i := range a.participants {
		if a.participants[i].UserID == userID {
			return &a.participants[i]
		}
	}
	return nil
}

func (a *Actor) playersInOrder() []models.Participant {
	players := make([]models.Participant, 0, len(a.participants))
	for _, p := range a.participants {
		if p.Role == models.RolePlayer {
			players = append(players, p)
		}
	}
	return players
}

func (a *Actor) refreshPresence() bool {
	online := false
	for _, pid := range a.subscribers {
		if p := a.participantByID(pid); p != nil && p.Role == models.RoleTherapist {
			online = true
			break
		}
	}
	changed := online != a.therapistOnline
	a.therapistOnline = online
	return changed
}

func (a *Actor) snapshot() *Snapshot {
	room := a.room
	room.TherapistOnline = a.therapistOnline
	room.Participants = nil

	snap := &Snapshot{
		Room:         room,
		Participants: append([]models.Participant(nil), a.participants...),
		DeckHistory:  append([]models.DeckDraw(nil), a.deckHistory...),
	}
	for _, p := range a.participants {
		if st := a.states[p.ID]; st != nil {
			snap.PlayerStates = append(snap.PlayerStates, *st)
		}
	}
	if a.lastMove != nil {
		mv := *a.lastMove
		snap.LastMove = &mv
	}
	return snap
}

type push struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func (a *Actor) broadcast(snap *Snapshot) {
	data, err := json.Marshal(push{Type: "room:state", Data: snap})
	if err != nil {
		a.log.WithError(err).Error("marshal snapshot")
		return
	}
	for client := range a.subscribers {
		client.Send(data)
	}
}
