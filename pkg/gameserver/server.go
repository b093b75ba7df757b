package gameserver

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jejutic/tg_vampires/pkg/config"
	game "github.com/jejutic/tg_vampires/pkg/game"
	"github.com/jejutic/tg_vampires/pkg/logger"
)

// UserMessage is an incoming message. A chat is one table sharing one device.
type UserMessage struct {
	Chat    int64
	Text    string
	Command bool
}

// ServerMessage is an outgoing message. nil Options keeps the keyboard,
// empty Options removes it.
type ServerMessage struct {
	Chat    int64
	Text    string
	Options []string
}

func newMessage(chat int64, text string, removeOptions bool) ServerMessage {
	msg := ServerMessage{
		Chat: chat,
		Text: text,
	}
	if removeOptions {
		msg.Options = make([]string, 0)
	}
	return msg
}

type Server[T any] interface {
	GetUpdatesChan() <-chan T
	UpdateToMessage(T) *UserMessage // didn't want to make an extra goroutine for casting of updates from chan
	SendMessage(ServerMessage)
}

type vampireServer[T any] struct {
	Server[T]
	log        *slog.Logger
	rosters    rosterStorage // nil when saved rosters are disabled
	rules      config.GameConfig
	mu         *sync.Mutex
	sessions   map[int64]*session
	engineOpts []game.Option
}

// NewVampireServer serves the tables of s. An empty dbUrl disables saved
// rosters, otherwise the database is migrated before serving.
func NewVampireServer[T any](
	ctx context.Context,
	s Server[T],
	driverName string,
	dbUrl string,
	rules config.GameConfig,
	log *slog.Logger,
) (vampireServer[T], error) {
	vs := vampireServer[T]{
		Server:   s,
		log:      logger.WithComponent(log, "gameserver"),
		rules:    rules,
		mu:       &sync.Mutex{},
		sessions: make(map[int64]*session),
	}
	if dbUrl == "" {
		vs.log.Info("saved rosters disabled")
		return vs, nil
	}

	rosters, err := openRosterDb(ctx, driverName, dbUrl)
	if err != nil {
		return vs, err
	}
	vs.rosters = rosters
	return vs, nil
}

// sessionOf returns the table of chat, creating it on first contact
func (vs vampireServer[T]) sessionOf(chat int64) *session {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	s, ok := vs.sessions[chat]
	if !ok {
		s = newSession(chat, vs.SendMessage, vs.rules, vs.log, vs.engineOpts...)
		vs.sessions[chat] = s
	}
	return s
}

// Run serves updates until the channel is closed or ctx is done
func Run[T any](ctx context.Context, vs vampireServer[T]) {
	updates := vs.GetUpdatesChan()
	for {
		var update T
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			update = u
		}

		msg := vs.UpdateToMessage(update)
		if msg == nil {
			continue
		}
		vs.handle(ctx, *msg)
	}
}

func (vs vampireServer[T]) handle(ctx context.Context, msg UserMessage) {
	s := vs.sessionOf(msg.Chat)
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.Command {
		handleCommand(ctx, vs, s, msg)
	} else {
		s.handleAnswer(msg.Text)
	}
}

// Close releases the roster database, if any
func (vs vampireServer[T]) Close() error {
	if db, ok := vs.rosters.(*rosterDb); ok {
		return db.Close()
	}
	return nil
}
