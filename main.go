package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jejutic/tg_vampires/pkg/config"
	gameServer "github.com/jejutic/tg_vampires/pkg/gameserver"
	"github.com/jejutic/tg_vampires/pkg/httpapi"
	"github.com/jejutic/tg_vampires/pkg/logger"
)

type tgBotServer struct {
	*tgbotapi.BotAPI
	log *slog.Logger
}

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log)
	log.Info("starting application",
		"http", cfg.Server.Enabled,
		"telegram", cfg.Telegram.Token != "",
		"log_level", cfg.Log.Level,
	)
	if !cfg.Server.Enabled && cfg.Telegram.Token == "" {
		return errors.New("nothing to serve: set TELEGRAM_APITOKEN or HTTP_ENABLED")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	fail := func(err error) {
		errCh <- err
		stop()
	}

	if cfg.Server.Enabled {
		store := httpapi.NewStore(cfg.Game, log)
		defer store.Close()

		srv := httpapi.New(cfg, log, store)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil {
				fail(err)
			}
		}()
	}

	if cfg.Telegram.Token != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			stop()
			wg.Wait()
			return err
		}
		bot.Debug = cfg.Telegram.Debug
		log.Info("authorized on telegram", "account", bot.Self.UserName)

		s := tgBotServer{BotAPI: bot, log: logger.WithComponent(log, "telegram")}
		vs, err := gameServer.NewVampireServer[tgbotapi.Update](ctx, s, "pgx", cfg.Database.URI, cfg.Game, log)
		if err != nil {
			stop()
			wg.Wait()
			return err
		}
		defer vs.Close()

		wg.Add(1)
		go func() {
			defer wg.Done()
			gameServer.Run[tgbotapi.Update](ctx, vs)
		}()
		go func() {
			<-ctx.Done()
			bot.StopReceivingUpdates()
		}()
	}

	wg.Wait()
	select {
	case err := <-errCh:
		return err
	default:
		log.Info("stopped")
		return nil
	}
}

func (tbs tgBotServer) GetUpdatesChan() <-chan tgbotapi.Update {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	return tbs.BotAPI.GetUpdatesChan(u)
}

func (tbs tgBotServer) UpdateToMessage(update tgbotapi.Update) *gameServer.UserMessage {
	if update.Message == nil { // ignore non-Message updates
		return nil
	}

	return &gameServer.UserMessage{
		Chat:    update.Message.Chat.ID,
		Text:    update.Message.Text,
		Command: update.Message.IsCommand(),
	}
}

func (tbs tgBotServer) SendMessage(msg gameServer.ServerMessage) {
	msgConfig := tgbotapi.NewMessage(msg.Chat, msg.Text)

	if msg.Options != nil {
		if len(msg.Options) == 0 {
			msgConfig.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		} else {
			var keyboard [][]tgbotapi.KeyboardButton
			for _, c := range msg.Options {
				keyboard = append(keyboard, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(c)))
			}
			msgConfig.ReplyMarkup = tgbotapi.NewReplyKeyboard(keyboard...)
		}
	}

	for i := 0; i < 2; i++ {
		if _, err := tbs.Send(msgConfig); err == nil {
			return
		} else {
			tbs.log.Warn("unable to send message", "chat", msg.Chat, "trial", i, "error", err)
		}
	}
}
