package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jejutic/tg_vampires/pkg/game"
)

// SessionHandler exposes the engine operations of the stored sessions.
// Every operation answers with the session view after it was applied.
type SessionHandler struct {
	store   *Store
	premium bool
	log     *slog.Logger
}

func NewSessionHandler(store *Store, premium bool, log *slog.Logger) *SessionHandler {
	return &SessionHandler{
		store:   store,
		premium: premium,
		log:     log,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (h *SessionHandler) session(c *gin.Context) (*tableSession, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid session id")
		return nil, false
	}
	ts, ok := h.store.Get(id)
	if !ok {
		NotFound(c, "session not found")
		return nil, false
	}
	return ts, true
}

// apply runs op on the session's engine and answers with the resulting view
func (h *SessionHandler) apply(c *gin.Context, op func(e *game.Engine) error) {
	ts, ok := h.session(c)
	if !ok {
		return
	}

	ts.mu.Lock()
	err := op(ts.engine)
	view := ts.view()
	ts.mu.Unlock()

	if err != nil {
		FromGameError(c, err)
		return
	}
	OK(c, view)
}

// Create configures a new session.
// POST /v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	settings := game.Settings{
		PlayerCount: req.PlayerCount,
		Counts:      make(map[game.Role]int, len(req.Counts)+1),
	}
	for role, cnt := range req.Counts {
		settings.Counts[role] = cnt
	}
	if settings.Counts[game.Vampire] == 0 {
		settings.Counts[game.Vampire] = 1
	}
	if err := settings.Validate(h.premium); err != nil {
		FromGameError(c, err)
		return
	}

	ts := h.store.Create()
	ts.mu.Lock()
	_, err := ts.engine.Configure(settings, h.premium)
	view := ts.view()
	ts.mu.Unlock()
	if err != nil {
		h.store.Delete(view.ID)
		FromGameError(c, err)
		return
	}

	h.log.Info("session created", "session", view.ID, "players", settings.PlayerCount)
	Created(c, view)
}

// Get returns the session view.
// GET /v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	h.apply(c, func(*game.Engine) error { return nil })
}

// Delete ends the session and disconnects its subscribers.
// DELETE /v1/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid session id")
		return
	}
	if !h.store.Delete(id) {
		NotFound(c, "session not found")
		return
	}
	h.log.Info("session deleted", "session", id)
	NoContent(c)
}

// Start seats the names and starts the first night.
// POST /v1/sessions/:id/start
func (h *SessionHandler) Start(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}
	h.apply(c, func(e *game.Engine) error {
		_, err := e.StartGame(req.Names)
		return err
	})
}

// NightTarget submits the active player's night action.
// POST /v1/sessions/:id/night-target
func (h *SessionHandler) NightTarget(c *gin.Context) {
	var req TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}
	target := game.NoTarget
	if req.TargetID != nil {
		target = *req.TargetID
	}
	h.apply(c, func(e *game.Engine) error {
		return e.SelectNightTarget(target)
	})
}

// NextNightResult passes the device on during the night results.
// POST /v1/sessions/:id/night-result/next
func (h *SessionHandler) NextNightResult(c *gin.Context) {
	h.apply(c, (*game.Engine).NextNightResult)
}

// Vote casts the active player's vote.
// POST /v1/sessions/:id/vote
func (h *SessionHandler) Vote(c *gin.Context) {
	var req TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetID == nil {
		BadRequest(c, "invalid payload: target_id is required")
		return
	}
	h.apply(c, func(e *game.Engine) error {
		return e.Vote(*req.TargetID)
	})
}

// SkipVote lets the active player abstain.
// POST /v1/sessions/:id/skip-vote
func (h *SessionHandler) SkipVote(c *gin.Context) {
	h.apply(c, (*game.Engine).SkipVote)
}

// StartJudgement puts the accused on trial.
// POST /v1/sessions/:id/judgement/start
func (h *SessionHandler) StartJudgement(c *gin.Context) {
	h.apply(c, (*game.Engine).StartJudgement)
}

// Judge records the active judge's verdict.
// POST /v1/sessions/:id/judgement
func (h *SessionHandler) Judge(c *gin.Context) {
	var req JudgementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}
	h.apply(c, func(e *game.Engine) error {
		return e.SubmitJudgementVote(*req.Guilty)
	})
}

// SkipAccusation goes on without a trial.
// POST /v1/sessions/:id/accusation/skip
func (h *SessionHandler) SkipAccusation(c *gin.Context) {
	h.apply(c, (*game.Engine).SkipAccusation)
}

// Proceed presses the "next" button of the current phase.
// POST /v1/sessions/:id/proceed
func (h *SessionHandler) Proceed(c *gin.Context) {
	h.apply(c, (*game.Engine).Proceed)
}

// Reset drops the running game, settings are kept.
// POST /v1/sessions/:id/reset
func (h *SessionHandler) Reset(c *gin.Context) {
	h.apply(c, func(e *game.Engine) error {
		e.ResetGame()
		return nil
	})
}

// Subscribe streams the session events over a websocket, starting with the
// current state.
// GET /v1/sessions/:id/ws
func (h *SessionHandler) Subscribe(c *gin.Context) {
	ts, ok := h.session(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	ts.mu.Lock()
	sub := ts.hub.subscribe(conn)
	if sub != nil {
		view := ts.view()
		sub.send <- wsMessage{Type: "state_changed", Data: game.StateChangedEvent{
			State:  view.State,
			Active: view.Active,
		}}
	}
	ts.mu.Unlock()
	if sub == nil {
		conn.Close()
		return
	}

	go sub.writePump()
	sub.readPump(ts.hub)
}

// HealthResponse is the response for the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// Health returns the health status of the application.
// GET /health
func (h *SessionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Sessions: h.store.Len(),
	})
}
