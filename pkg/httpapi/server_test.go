package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jejutic/tg_vampires/pkg/config"
	"github.com/jejutic/tg_vampires/pkg/game"
	"github.com/jejutic/tg_vampires/pkg/httpapi"
	"github.com/jejutic/tg_vampires/pkg/logger"
)

type playerView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Alive bool   `json:"alive"`
	Dying bool   `json:"dying"`
}

type stateView struct {
	CurrentPhase    string         `json:"current_phase"`
	CurrentDay      int            `json:"current_day"`
	Players         []playerView   `json:"players"`
	LastNightDeaths []int          `json:"last_night_deaths"`
	VotingResults   map[string]int `json:"voting_results"`
	AccusedID       int            `json:"accused_id"`
	GameResult      *struct {
		WinningRole    string       `json:"winning_role"`
		WinningFaction string       `json:"winning_faction"`
		Survivors      []playerView `json:"survivors"`
	} `json:"game_result"`
}

type sessionView struct {
	ID       string `json:"id"`
	Settings *struct {
		PlayerCount int            `json:"player_count"`
		Counts      map[string]int `json:"counts"`
	} `json:"settings"`
	State        stateView   `json:"state"`
	ActivePlayer *playerView `json:"active_player"`
}

type envelope struct {
	Data sessionView `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		Field     string `json:"field"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

var _ = Describe("Server", func() {
	var ctx context.Context
	var client *resty.Client
	var httpServer *httptest.Server
	var store *httpapi.Store

	newServer := func(rules config.GameConfig) {
		cfg := &config.Config{
			Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: time.Second},
			Log:    config.LogConfig{Level: "error"},
			Game:   rules,
		}
		// keep the role-cards in dealing order: vampires, specials, villagers
		store = httpapi.NewStore(rules, logger.Nop(), game.WithShuffle(func(int, func(i, j int)) {}))
		srv := httpapi.New(cfg, logger.Nop(), store)
		httpServer = httptest.NewServer(srv.Router())
		DeferCleanup(httpServer.Close)
		DeferCleanup(store.Close)

		client = resty.New().SetBaseURL(httpServer.URL)
	}

	BeforeEach(func() {
		var cancelFn context.CancelFunc
		ctx, cancelFn = context.WithTimeout(context.Background(), time.Minute)
		DeferCleanup(cancelFn)

		newServer(config.GameConfig{})
	})

	post := func(path string, body any) (*resty.Response, sessionView) {
		var result envelope
		req := client.R().SetContext(ctx).SetResult(&result)
		if body != nil {
			req.SetBody(body)
		}
		resp, err := req.Post(path)
		Expect(err).ToNot(HaveOccurred(), "POST %s should not fail", path)
		return resp, result.Data
	}

	mustPost := func(path string, body any) sessionView {
		resp, view := post(path, body)
		Expect(resp.StatusCode()).To(Equal(http.StatusOK), "unexpected status for %s: %s", path, resp.String())
		return view
	}

	createSession := func(playerCount int, counts map[string]int) sessionView {
		var result envelope
		resp, err := client.R().SetContext(ctx).
			SetBody(map[string]any{"player_count": playerCount, "counts": counts}).
			SetResult(&result).
			Post("/v1/sessions")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusCreated), resp.String())
		return result.Data
	}

	sessionPath := func(id, action string) string {
		return "/v1/sessions/" + id + "/" + action
	}

	It("reports health", func() {
		createSession(4, nil)

		var health httpapi.HealthResponse
		resp, err := client.R().SetContext(ctx).SetResult(&health).Get("/health")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusOK))
		Expect(health).To(Equal(httpapi.HealthResponse{Status: "ok", Sessions: 1}))
	})

	It("plays a four-person game until the village wins", func() {
		session := createSession(4, map[string]int{"VAMPIRE": 1})
		Expect(session.State.CurrentPhase).To(Equal("SETUP"))
		Expect(session.Settings.PlayerCount).To(Equal(4))
		Expect(session.Settings.Counts).To(Equal(map[string]int{"VAMPIRE": 1}))

		view := mustPost(sessionPath(session.ID, "start"), map[string]any{"names": []string{"Ann", "Bob", "Cid", "Dan"}})
		Expect(view.State.CurrentPhase).To(Equal("NIGHT"))
		Expect(view.State.CurrentDay).To(Equal(1))
		Expect(view.State.Players).To(HaveLen(4))
		Expect(view.State.Players[0].Role).To(Equal("VAMPIRE"))
		Expect(view.ActivePlayer.Name).To(Equal("Ann"))

		By("biting Bob at night")
		mustPost(sessionPath(session.ID, "night-target"), map[string]any{"target_id": 1})
		for i := 0; i < 3; i++ {
			view = mustPost(sessionPath(session.ID, "night-target"), map[string]any{})
		}
		Expect(view.State.CurrentPhase).To(Equal("NIGHT_RESULT"))
		Expect(view.State.Players[1].Dying).To(BeTrue())

		By("passing the device around for the night results")
		view = mustPost(sessionPath(session.ID, "night-result/next"), nil)
		Expect(view.ActivePlayer.Name).To(Equal("Bob"), "dying players see their result too")
		for view.State.CurrentPhase == "NIGHT_RESULT" {
			view = mustPost(sessionPath(session.ID, "proceed"), nil)
		}
		Expect(view.State.CurrentPhase).To(Equal("DAY"))
		Expect(view.State.CurrentDay).To(Equal(2))
		Expect(view.State.LastNightDeaths).To(Equal([]int{1}))
		Expect(view.State.Players[1].Alive).To(BeFalse())

		By("accusing Ann")
		mustPost(sessionPath(session.ID, "proceed"), nil)
		mustPost(sessionPath(session.ID, "vote"), map[string]any{"target_id": 2})
		mustPost(sessionPath(session.ID, "vote"), map[string]any{"target_id": 0})
		view = mustPost(sessionPath(session.ID, "vote"), map[string]any{"target_id": 0})
		Expect(view.State.CurrentPhase).To(Equal("DAY_VOTE_RESULT"))
		Expect(view.State.AccusedID).To(Equal(0))
		Expect(view.State.VotingResults).To(Equal(map[string]int{"0": 2, "2": 1}))

		By("finding Ann guilty")
		view = mustPost(sessionPath(session.ID, "judgement/start"), nil)
		Expect(view.State.CurrentPhase).To(Equal("JUDGEMENT"))
		Expect(view.ActivePlayer.Name).To(Equal("Cid"))
		mustPost(sessionPath(session.ID, "judgement"), map[string]any{"guilty": true})
		view = mustPost(sessionPath(session.ID, "judgement"), map[string]any{"guilty": false})
		Expect(view.State.CurrentPhase).To(Equal("VOTE_RESULT"))
		Expect(view.State.Players[0].Alive).To(BeTrue(), "a tied judgement is innocent")

		By("voting again on day 3")
		view = mustPost(sessionPath(session.ID, "proceed"), nil)
		Expect(view.State.CurrentPhase).To(Equal("NIGHT"))
		Expect(view.State.CurrentDay).To(Equal(3))
		for view.State.CurrentPhase == "NIGHT" {
			view = mustPost(sessionPath(session.ID, "night-target"), map[string]any{})
		}
		for view.State.CurrentPhase == "NIGHT_RESULT" {
			view = mustPost(sessionPath(session.ID, "proceed"), nil)
		}
		mustPost(sessionPath(session.ID, "proceed"), nil)
		mustPost(sessionPath(session.ID, "skip-vote"), nil)
		mustPost(sessionPath(session.ID, "vote"), map[string]any{"target_id": 0})
		mustPost(sessionPath(session.ID, "vote"), map[string]any{"target_id": 0})
		mustPost(sessionPath(session.ID, "judgement/start"), nil)
		mustPost(sessionPath(session.ID, "judgement"), map[string]any{"guilty": true})
		view = mustPost(sessionPath(session.ID, "judgement"), map[string]any{"guilty": true})
		Expect(view.State.Players[0].Alive).To(BeFalse())

		view = mustPost(sessionPath(session.ID, "proceed"), nil)
		Expect(view.State.CurrentPhase).To(Equal("GAME_OVER"))
		Expect(view.State.GameResult).ToNot(BeNil())
		Expect(view.State.GameResult.WinningRole).To(Equal("VILLAGER"))
		Expect(view.State.GameResult.WinningFaction).To(Equal("VILLAGE"))
		Expect(view.State.GameResult.Survivors).To(HaveLen(2))

		view = mustPost(sessionPath(session.ID, "proceed"), nil)
		Expect(view.State.CurrentPhase).To(Equal("SETUP"))
		Expect(view.Settings).ToNot(BeNil(), "settings survive the reset")
	})

	It("skips the accusation", func() {
		session := createSession(4, nil)
		mustPost(sessionPath(session.ID, "start"), map[string]any{"names": []string{"Ann", "Bob", "Cid", "Dan"}})
		view := mustPost(sessionPath(session.ID, "night-target"), map[string]any{})
		for view.State.CurrentPhase == "NIGHT" {
			view = mustPost(sessionPath(session.ID, "night-target"), map[string]any{})
		}
		for view.State.CurrentPhase == "NIGHT_RESULT" {
			view = mustPost(sessionPath(session.ID, "proceed"), nil)
		}
		mustPost(sessionPath(session.ID, "proceed"), nil)
		mustPost(sessionPath(session.ID, "vote"), map[string]any{"target_id": 1})
		for i := 0; i < 3; i++ {
			view = mustPost(sessionPath(session.ID, "skip-vote"), nil)
		}
		Expect(view.State.AccusedID).To(Equal(1))

		view = mustPost(sessionPath(session.ID, "accusation/skip"), nil)
		Expect(view.State.CurrentPhase).To(Equal("VOTE_RESULT"))
		Expect(view.State.Players[1].Alive).To(BeTrue())
	})

	It("rejects invalid settings", func() {
		var failure errorEnvelope
		resp, err := client.R().SetContext(ctx).
			SetBody(map[string]any{"player_count": 4, "counts": map[string]int{"VAMPIRE": 2}}).
			SetError(&failure).
			Post("/v1/sessions")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusBadRequest))
		Expect(failure.Error.Code).To(Equal("VALIDATION_ERROR"))
		Expect(failure.Error.Field).To(Equal("counts"))
		Expect(failure.Error.RequestID).ToNot(BeEmpty())

		resp, err = client.R().SetContext(ctx).
			SetBody(map[string]any{"player_count": 8, "counts": map[string]int{"VAMPIRE": 1, "WIZARD": 1}}).
			SetError(&failure).
			Post("/v1/sessions")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusBadRequest), "extended roles need premium")
		Expect(failure.Error.Code).To(Equal("VALIDATION_ERROR"))
		Expect(failure.Error.Message).To(ContainSubstring("WIZARD requires premium features"))

		resp, err = client.R().SetContext(ctx).
			SetBody(map[string]any{"player_count": 8, "counts": map[string]int{"DRAGON": 1}}).
			SetError(&failure).
			Post("/v1/sessions")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusBadRequest))
		Expect(failure.Error.Code).To(Equal("BAD_REQUEST"))
		Expect(store.Len()).To(BeZero())
	})

	It("gives a table without vampires a single one", func() {
		session := createSession(6, map[string]int{"DOCTOR": 1})
		Expect(session.Settings).ToNot(BeNil())
		Expect(session.Settings.Counts).To(HaveKeyWithValue("VAMPIRE", 1))
		Expect(session.Settings.Counts).To(HaveKeyWithValue("DOCTOR", 1))
	})

	It("keeps the requested number of vampires", func() {
		session := createSession(6, map[string]int{"VAMPIRE": 2})
		Expect(session.Settings.Counts).To(HaveKeyWithValue("VAMPIRE", 2))
	})

	It("unlocks the extended roles with premium", func() {
		newServer(config.GameConfig{Premium: true})
		session := createSession(8, map[string]int{"VAMPIRE": 2, "WIZARD": 1})
		Expect(session.Settings.Counts).To(HaveKeyWithValue("WIZARD", 1))
	})

	It("rejects actions out of turn with a conflict", func() {
		session := createSession(4, nil)

		var failure errorEnvelope
		resp, err := client.R().SetContext(ctx).SetError(&failure).Post(sessionPath(session.ID, "proceed"))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusConflict))
		Expect(failure.Error.Code).To(Equal("INVALID_ACTION"))

		mustPost(sessionPath(session.ID, "start"), map[string]any{"names": []string{"Ann", "Bob", "Cid", "Dan"}})
		resp, _ = post(sessionPath(session.ID, "night-target"), map[string]any{"target_id": 0})
		Expect(resp.StatusCode()).To(Equal(http.StatusConflict), "nobody targets themselves")
		resp, _ = post(sessionPath(session.ID, "vote"), map[string]any{"target_id": 1})
		Expect(resp.StatusCode()).To(Equal(http.StatusConflict), "nobody votes at night")
		resp, _ = post(sessionPath(session.ID, "vote"), map[string]any{})
		Expect(resp.StatusCode()).To(Equal(http.StatusBadRequest))
		resp, _ = post(sessionPath(session.ID, "judgement"), map[string]any{})
		Expect(resp.StatusCode()).To(Equal(http.StatusBadRequest))

		resp, _ = post(sessionPath(session.ID, "start"), map[string]any{"names": []string{"Ann", "Bob", "Cid", "Dan"}})
		Expect(resp.StatusCode()).To(Equal(http.StatusConflict), "the game is already running")

		view := mustPost(sessionPath(session.ID, "reset"), nil)
		Expect(view.State.CurrentPhase).To(Equal("SETUP"))

		resp, _ = post(sessionPath(session.ID, "start"), map[string]any{"names": []string{"Ann", "Bob", "Ann", "Dan"}})
		Expect(resp.StatusCode()).To(Equal(http.StatusBadRequest), "names must be unique")
	})

	It("answers 404 for unknown sessions and routes", func() {
		resp, err := client.R().SetContext(ctx).Get("/v1/sessions/8f2b6e1c-3c0a-4d43-9f7e-0e7b2a7d4c11")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusNotFound))

		resp, err = client.R().SetContext(ctx).Get("/v1/sessions/not-a-uuid")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusBadRequest))

		resp, err = client.R().SetContext(ctx).Get("/v2/anything")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusNotFound))
	})

	It("deletes sessions", func() {
		session := createSession(4, nil)

		resp, err := client.R().SetContext(ctx).Delete("/v1/sessions/" + session.ID)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusNoContent))

		resp, err = client.R().SetContext(ctx).Get("/v1/sessions/" + session.ID)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusNotFound))

		resp, err = client.R().SetContext(ctx).Delete("/v1/sessions/" + session.ID)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusNotFound))
	})

	It("reuses the caller's request id", func() {
		resp, err := client.R().SetContext(ctx).SetHeader(httpapi.RequestIDHeader, "req-42").Get("/health")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.Header().Get(httpapi.RequestIDHeader)).To(Equal("req-42"))
	})

	It("streams session events over a websocket", func() {
		session := createSession(4, nil)

		wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/v1/sessions/" + session.ID + "/ws"
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(conn.Close)

		read := func() wsMessage {
			var msg wsMessage
			Expect(conn.SetReadDeadline(time.Now().Add(5 * time.Second))).To(Succeed())
			Expect(conn.ReadJSON(&msg)).To(Succeed())
			return msg
		}

		snapshot := read()
		Expect(snapshot.Type).To(Equal("state_changed"))
		Expect(string(snapshot.Data)).To(ContainSubstring(`"current_phase":"SETUP"`))

		mustPost(sessionPath(session.ID, "start"), map[string]any{"names": []string{"Ann", "Bob", "Cid", "Dan"}})
		phase := read()
		Expect(phase.Type).To(Equal("phase_changed"))
		Expect(string(phase.Data)).To(MatchJSON(`{"from":"SETUP","to":"NIGHT","day":1}`))
		Expect(read().Type).To(Equal("state_changed"))

		post(sessionPath(session.ID, "night-target"), map[string]any{"target_id": 0})
		rejected := read()
		Expect(rejected.Type).To(Equal("rejected"))
		Expect(string(rejected.Data)).To(MatchJSON(`{"action":"select night target","player_id":0,"error":"invalid action: select night target: player cannot target themselves"}`))

		resp, err := client.R().SetContext(ctx).Delete("/v1/sessions/" + session.ID)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusNoContent))

		Expect(conn.SetReadDeadline(time.Now().Add(5 * time.Second))).To(Succeed())
		_, _, err = conn.ReadMessage()
		Expect(websocket.IsCloseError(err, websocket.CloseNoStatusReceived, websocket.CloseNormalClosure)).To(BeTrue(), "deleting the session closes the stream: %v", err)
	})

	It("proceeds a day on its own once the discussion time is up", func() {
		newServer(config.GameConfig{DayDuration: 20 * time.Millisecond})
		session := createSession(4, nil)
		view := mustPost(sessionPath(session.ID, "start"), map[string]any{"names": []string{"Ann", "Bob", "Cid", "Dan"}})
		for view.State.CurrentPhase == "NIGHT" {
			view = mustPost(sessionPath(session.ID, "night-target"), map[string]any{})
		}
		for view.State.CurrentPhase == "NIGHT_RESULT" {
			view = mustPost(sessionPath(session.ID, "proceed"), nil)
		}
		Expect(view.State.CurrentPhase).To(Equal("DAY"))

		Eventually(func() string {
			var result envelope
			_, err := client.R().SetContext(ctx).SetResult(&result).Get("/v1/sessions/" + session.ID)
			Expect(err).ToNot(HaveOccurred())
			return result.Data.State.CurrentPhase
		}).WithTimeout(time.Second).WithPolling(10 * time.Millisecond).Should(Equal("VOTING"))
	})
})
