package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"desk-calendar/internal/bot"
	"desk-calendar/internal/notify"
	"desk-calendar/internal/service"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a session: reminder, autosave, daily report and the Telegram bot",
	Long: `Load the notes, remind about today, then keep running until interrupted.
Notes are autosaved on an interval and saved again on shutdown. When
TELEGRAM_TOKEN is set the Telegram bot serves the same notes.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := loadConfig()
		logger := slog.Default()
		notes := openNotes(cfg, false)
		reminders := service.NewReminderService(notes)

		terminal := notify.NewTerminal(os.Stdout)
		sinks := notify.Multi{terminal}
		var telegramBot *bot.Bot
		if cfg.TelegramToken != "" {
			var err error
			telegramBot, err = bot.New(cfg.TelegramToken, cfg.TelegramChatID, notes, reminders, logger)
			if err != nil {
				fatal("Failed to start bot", err)
			}
			if cfg.TelegramChatID != 0 {
				sinks = append(sinks, telegramBot)
			}
		}

		if _, err := reminders.Notify(ctx, time.Now(), sinks...); err != nil {
			logger.Warn("startup reminder", "error", err)
		}

		scheduler := service.NewSchedulerService(time.Local)
		if cfg.AutosaveInterval > 0 {
			if _, err := scheduler.ScheduleInterval(cfg.AutosaveInterval, func() {
				saved, err := notes.CommitIfDirty()
				if err != nil {
					logger.Error("autosave", "error", err)
					return
				}
				if saved {
					logger.Debug("autosaved notes", "path", notes.Path())
				}
			}); err != nil {
				fatal("Failed to schedule autosave", err)
			}
		}
		var reminderID cron.EntryID
		if cfg.ReminderTime != "" {
			var err error
			reminderID, err = scheduler.ScheduleDaily(cfg.ReminderTime, func() {
				jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if _, err := reminders.Notify(jobCtx, time.Now(), terminal); err != nil {
					logger.Error("daily reminder", "error", err)
				}
				if telegramBot != nil && cfg.TelegramChatID != 0 {
					if err := telegramBot.SendDailySummary(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
						logger.Error("daily summary", "error", err)
					}
				}
			})
			if err != nil {
				fatal("Failed to schedule reminder", err)
			}
		}
		scheduler.Start()
		if reminderID != 0 {
			logger.Info("daily reminder scheduled", "next", scheduler.Next(reminderID))
		}

		logger.Info("session started", "file", notes.Path(), "telegram", telegramBot != nil)
		if telegramBot != nil {
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("bot stopped with error", "error", err)
			}
		} else {
			<-ctx.Done()
		}

		scheduler.Stop()
		commit(notes)
		logger.Info("shutdown complete")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
