package gameserver

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jejutic/tg_vampires/pkg/config"
	game "github.com/jejutic/tg_vampires/pkg/game"
)

const (
	skipAnswer     = "skip"
	sleepAnswer    = "sleep"
	nextAnswer     = "next"
	guiltyAnswer   = "guilty"
	innocentAnswer = "innocent"
	judgeAnswer    = "judge"
	pardonAnswer   = "pardon"
)

// screen identifies what the device shows, so that a screen is rendered once
type screen struct {
	phase  game.Phase
	day    int
	active int
}

// session is the table of one chat. mu guards everything, including the
// engine, whose handlers run with mu held.
type session struct {
	mu     sync.Mutex
	chat   int64
	send   func(ServerMessage)
	rules  config.GameConfig
	log    *slog.Logger
	engine *game.Engine
	timer  game.PhaseTimer
	names  []string // seating of the last started game
	shown  screen
}

func newSession(chat int64, send func(ServerMessage), rules config.GameConfig, log *slog.Logger, opts ...game.Option) *session {
	s := &session{
		chat:  chat,
		send:  send,
		rules: rules,
		log:   log.With("chat", chat),
		shown: screen{active: game.NoTarget},
	}
	s.engine = game.NewEngine(s, append([]game.Option{game.WithLogger(log)}, opts...)...)
	return s
}

func (s *session) reply(text string, removeOptions bool) {
	s.send(newMessage(s.chat, text, removeOptions))
}

func (s *session) ask(text string, options ...string) {
	s.send(ServerMessage{
		Chat:    s.chat,
		Text:    text,
		Options: options,
	})
}

// handleAnswer treats free text as the answer to the screen shown.
// Rejections are reported by HandleRejected.
func (s *session) handleAnswer(text string) {
	text = strings.TrimSpace(text)
	answer := strings.ToLower(text)

	switch s.engine.Phase() {
	case game.Setup:
		s.reply("No game is running. Send /create to set the table up", false)
	case game.Night:
		if answer == skipAnswer || answer == sleepAnswer {
			_ = s.engine.SelectNightTarget(game.NoTarget)
			return
		}
		if target, ok := s.playerByName(text); ok {
			_ = s.engine.SelectNightTarget(target)
		}
	case game.NightResult:
		_ = s.engine.NextNightResult()
	case game.Voting:
		if answer == skipAnswer {
			_ = s.engine.SkipVote()
			return
		}
		if target, ok := s.playerByName(text); ok {
			_ = s.engine.Vote(target)
		}
	case game.Judgement:
		switch answer {
		case guiltyAnswer:
			_ = s.engine.SubmitJudgementVote(true)
		case innocentAnswer:
			_ = s.engine.SubmitJudgementVote(false)
		default:
			s.reply(`Answer "`+guiltyAnswer+`" or "`+innocentAnswer+`"`, false)
		}
	case game.DayVoteResult:
		switch answer {
		case judgeAnswer:
			_ = s.engine.StartJudgement()
		case pardonAnswer:
			_ = s.engine.SkipAccusation()
		default:
			_ = s.engine.Proceed()
		}
	default:
		_ = s.engine.Proceed()
	}
}

func (s *session) playerByName(name string) (int, bool) {
	for _, p := range s.engine.State().Players {
		if strings.EqualFold(p.Name, name) {
			return p.ID, true
		}
	}
	s.reply("There is no player called "+name, false)
	return game.NoTarget, false
}

// armProceed paces the current phase. The caller holds s.mu.
func (s *session) armProceed(d time.Duration) {
	if d <= 0 {
		return
	}
	s.timer.ArmProceed(d, s.engine, &s.mu)
}

func (s *session) stop() {
	if s.engine.Phase() == game.Setup {
		s.reply("No game is running", true)
		return
	}
	s.engine.ResetGame()
}
