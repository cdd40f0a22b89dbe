package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"desk-calendar/internal/model"
	"desk-calendar/internal/service"
)

// cbDeletePrefix marks inline delete buttons. Removal is then confirmed on the reply keyboard.
const cbDeletePrefix = "delete:"

const (
	btnConfirm     = "✅ Confirm"
	btnCancel      = "↩️ Cancel"
	menuLabelPrev  = "⬅️ Prev"
	menuLabelToday = "📅 Today"
	menuLabelNext  = "Next ➡️"
	menuLabelNotes = "📋 Notes"
	menuLabelMonth = "🗓 Month"
	menuLabelHelp  = "ℹ️ Help"
)

type confirmationRequest struct {
	date   model.Date
	noteID int
}

// Bot is the Telegram front end for the note store.
type Bot struct {
	api           *tgbotapi.BotAPI
	notes         *service.NoteService
	reminders     *service.ReminderService
	chatID        int64
	logger        *slog.Logger
	now           func() time.Time
	selected      map[int64]model.Date
	confirmations map[int64]confirmationRequest
	mu            sync.Mutex
}

// New connects to the Bot API. chatID is where reminders go; zero disables them.
func New(token string, chatID int64, notes *service.NoteService, reminders *service.ReminderService, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("bot authorized", "account", api.Self.UserName)

	return &Bot{
		api:           api,
		notes:         notes,
		reminders:     reminders,
		chatID:        chatID,
		logger:        logger,
		now:           time.Now,
		selected:      make(map[int64]model.Date),
		confirmations: make(map[int64]confirmationRequest),
	}, nil
}

// Start polls updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.logger.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(update.CallbackQuery); err != nil {
				b.logger.Error("handle callback", "error", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(update.Message); err != nil {
				b.logger.Error("handle message", "error", err)
			}
		}
	}

	return ctx.Err()
}

// Notify sends a reminder to the configured chat.
func (b *Bot) Notify(_ context.Context, title, body string) error {
	if b.chatID == 0 {
		return errors.New("telegram chat id is not configured")
	}
	text := "🔔 <b>" + escape(title) + "</b>"
	if body != "" {
		text += "\n" + escape(body)
	}
	return b.sendText(b.chatID, text)
}

// SendDailySummary sends the daily report to the configured chat.
func (b *Bot) SendDailySummary(_ context.Context) error {
	if b.chatID == 0 {
		return nil
	}
	return b.sendText(b.chatID, escape(b.reminders.DailySummary(b.now())))
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.logger.Debug("command", "chat", chatID, "command", msg.Command(), "args", msg.CommandArguments())
		return b.handleCommand(msg)
	}

	if pending, ok := b.getConfirmation(chatID); ok {
		return b.handleConfirmationResponse(chatID, msg.Text, pending)
	}

	if handled, err := b.handleMenuAlias(msg); handled {
		return err
	}

	// Plain text is a new note for the selected day.
	return b.addNote(chatID, msg.Text)
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		return b.handleStart(msg)
	case "help":
		return b.sendText(chatID, helpText)
	case "today":
		return b.selectDay(chatID, model.DateOf(b.now()))
	case "day":
		date, err := model.ResolveDate(args, model.DateOf(b.now()))
		if err != nil {
			return b.sendText(chatID, "Use a date like <code>2024-05-01</code>, <code>today</code> or <code>tomorrow</code>.")
		}
		return b.selectDay(chatID, date)
	case "prev":
		return b.shiftDay(chatID, -1)
	case "next":
		return b.shiftDay(chatID, 1)
	case "notes":
		return b.sendDay(chatID)
	case "add":
		return b.addNote(chatID, args)
	case "remove":
		return b.handleRemove(chatID, args)
	case "month":
		return b.sendMonth(chatID)
	case "summary":
		return b.sendText(chatID, escape(b.reminders.DailySummary(b.now())))
	case "cancel":
		b.clearConfirmation(chatID)
		return b.sendText(chatID, "Cancelled.")
	default:
		return b.sendText(chatID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("👋 Hi, %s!\n<b>Send me a line of text and I will pin it to the selected day.</b>\n\n%s", escape(name), helpText)
	if err := b.sendText(msg.Chat.ID, text); err != nil {
		return err
	}
	if reminder, due := b.reminders.Today(b.now()); due {
		if err := b.sendText(msg.Chat.ID, "🔔 <b>"+escape(reminder.Title())+"</b>"); err != nil {
			return err
		}
	}
	return b.selectDay(msg.Chat.ID, b.selectedDay(msg.Chat.ID))
}

const helpText = "ℹ️ <b>Commands</b>\n" +
	"• /today - jump to today\n" +
	"• /day &lt;date&gt; - pick a day (2024-05-01, today, tomorrow)\n" +
	"• /prev, /next - previous or next day\n" +
	"• /notes - notes for the selected day\n" +
	"• /add &lt;text&gt; - add a note (plain text works too)\n" +
	"• /remove &lt;n&gt; - remove note number n\n" +
	"• /month - days with notes this month\n" +
	"• /summary - today and totals\n" +
	"• /cancel - cancel a pending removal"

func (b *Bot) selectDay(chatID int64, date model.Date) error {
	b.setSelected(chatID, date)
	b.notes.Select(date)
	return b.sendDay(chatID)
}

func (b *Bot) shiftDay(chatID int64, days int) error {
	return b.selectDay(chatID, b.selectedDay(chatID).AddDays(days))
}

func (b *Bot) addNote(chatID int64, text string) error {
	date := b.selectedDay(chatID)
	note, err := b.notes.Add(date, text, "")
	if errors.Is(err, service.ErrEmptyTitle) {
		return b.sendText(chatID, "Send the note text, for example: <code>/add Pay rent</code>")
	}
	if err != nil {
		return err
	}
	b.logger.Info("note added", "chat", chatID, "date", date, "id", note.ID)
	return b.sendDay(chatID)
}

func (b *Bot) handleRemove(chatID int64, args string) error {
	index, err := strconv.Atoi(args)
	if err != nil || index < 1 {
		return b.sendText(chatID, "Give the note number: <code>/remove 2</code>")
	}
	date := b.selectedDay(chatID)
	notes := b.notes.List(date)
	if index > len(notes) {
		return b.sendText(chatID, "No such note.")
	}
	return b.askDeleteConfirmation(chatID, date, notes[index-1])
}

func (b *Bot) askDeleteConfirmation(chatID int64, date model.Date, note model.Note) error {
	b.setConfirmation(chatID, confirmationRequest{date: date, noteID: note.ID})
	text := fmt.Sprintf("Remove «%s» from %s?", escape(strings.TrimSpace(note.Title)), date)
	return b.sendWithReplyMarkup(chatID, text, confirmKeyboard())
}

func (b *Bot) handleConfirmationResponse(chatID int64, text string, req confirmationRequest) error {
	switch {
	case isConfirmInput(text):
		b.clearConfirmation(chatID)
		return b.deleteAndRefresh(chatID, req)
	case isCancelInput(text):
		b.clearConfirmation(chatID)
		return b.sendText(chatID, "Kept.")
	default:
		return b.sendWithReplyMarkup(chatID, "Confirm or cancel the removal.", confirmKeyboard())
	}
}

func (b *Bot) deleteAndRefresh(chatID int64, req confirmationRequest) error {
	note, err := b.notes.RemoveByID(req.date, req.noteID)
	if errors.Is(err, service.ErrNoteNotFound) {
		return b.sendText(chatID, "That note is already gone.")
	}
	if err != nil {
		return err
	}
	b.logger.Info("note removed", "chat", chatID, "date", req.date, "id", note.ID)
	if err := b.sendText(chatID, fmt.Sprintf("🗑 «%s» removed.", escape(strings.TrimSpace(note.Title)))); err != nil {
		return err
	}
	b.setSelected(chatID, req.date)
	return b.sendDay(chatID)
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Warn("callback ack", "error", err)
	}

	chatID := cb.Message.Chat.ID
	req, err := parseCallback(cb.Data)
	if err != nil {
		b.logger.Debug("ignore callback", "data", cb.Data, "error", err)
		return nil
	}

	for _, note := range b.notes.List(req.date) {
		if note.ID == req.noteID {
			return b.askDeleteConfirmation(chatID, req.date, note)
		}
	}
	return b.sendText(chatID, "That note is already gone.")
}

func (b *Bot) handleMenuAlias(msg *tgbotapi.Message) (bool, error) {
	chatID := msg.Chat.ID
	switch strings.TrimSpace(msg.Text) {
	case menuLabelPrev:
		return true, b.shiftDay(chatID, -1)
	case menuLabelToday:
		return true, b.selectDay(chatID, model.DateOf(b.now()))
	case menuLabelNext:
		return true, b.shiftDay(chatID, 1)
	case menuLabelNotes:
		return true, b.sendDay(chatID)
	case menuLabelMonth:
		return true, b.sendMonth(chatID)
	case menuLabelHelp:
		return true, b.sendText(chatID, helpText)
	default:
		return false, nil
	}
}

func (b *Bot) sendDay(chatID int64) error {
	date := b.selectedDay(chatID)
	notes := b.notes.List(date)
	text := formatDay(date, model.DateOf(b.now()), notes, b.notes.Summary())

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if len(notes) > 0 {
		msg.ReplyMarkup = deleteKeyboard(date, notes)
	} else {
		msg.ReplyMarkup = mainMenuKeyboard()
	}
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendMonth(chatID int64) error {
	date := b.selectedDay(chatID)
	counts := b.notes.Month(date.Year, date.Month)
	grid := service.FormatMonth(date.Year, date.Month, counts, model.DateOf(b.now()))
	return b.sendText(chatID, "<pre>"+escape(grid)+"</pre>")
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) selectedDay(chatID int64) model.Date {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d, ok := b.selected[chatID]; ok {
		return d
	}
	return model.DateOf(b.now())
}

func (b *Bot) setSelected(chatID int64, date model.Date) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected[chatID] = date
}

func (b *Bot) getConfirmation(chatID int64) (confirmationRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	req, ok := b.confirmations[chatID]
	return req, ok
}

func (b *Bot) setConfirmation(chatID int64, req confirmationRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.confirmations[chatID] = req
}

func (b *Bot) clearConfirmation(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.confirmations, chatID)
}

func deleteKeyboard(date model.Date, notes []model.Note) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(notes))
	for i, note := range notes {
		label := fmt.Sprintf("🗑 %d · %s", i+1, shortTitle(note.Title, 24))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackData(date, note.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConfirm),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelPrev),
			tgbotapi.NewKeyboardButton(menuLabelToday),
			tgbotapi.NewKeyboardButton(menuLabelNext),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelNotes),
			tgbotapi.NewKeyboardButton(menuLabelMonth),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func isConfirmInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnConfirm) || value == "confirm" || value == "yes"
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancel) || value == "cancel" || value == "no"
}

func escape(s string) string {
	return html.EscapeString(s)
}
