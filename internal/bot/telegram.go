package bot

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram adapts the Telegram Bot API to the core's collaborator contracts:
// it is the inbound event source, the outbound message sink and the
// channel-membership checker.
type Telegram struct {
	api       *tgbotapi.BotAPI
	channelID int64
}

// NewTelegram connects to the Bot API. Connecting validates the token, so a
// bad credential or no connectivity fails here, before anything else starts.
func NewTelegram(token string, channelID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Printf("Authorized on bot account %s", api.Self.UserName)

	return &Telegram{
		api:       api,
		channelID: channelID,
	}, nil
}

// Username returns the bot's username, used to build referral links.
func (t *Telegram) Username() string {
	return t.api.Self.UserName
}

// Run polls for updates and feeds them to the dispatcher until ctx is done.
// Each update is handled on its own goroutine; serialization happens at the
// account store, not here.
func (t *Telegram) Run(ctx context.Context, dispatcher *Dispatcher) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := t.api.GetUpdatesChan(u)
	log.Println("Polling for updates...")

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go t.handleUpdate(dispatcher, update)
		}
	}
}

func (t *Telegram) handleUpdate(dispatcher *Dispatcher, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if _, err := t.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			log.Printf("Failed to answer callback from %d: %v", cb.From.ID, err)
		}
		if cb.Message != nil {
			dispatcher.HandleCallback(cb.From.ID, cb.Message.MessageID, cb.Data, cb.From.FirstName)
		}

	case update.Message != nil && update.Message.Chat.IsPrivate() && update.Message.From != nil:
		msg := update.Message
		if msg.IsCommand() {
			if msg.Command() == "start" {
				dispatcher.HandleStart(msg.From.ID, msg.From.FirstName, msg.CommandArguments())
			}
			return
		}
		if msg.Text != "" {
			dispatcher.HandleText(msg.From.ID, msg.From.FirstName, msg.Text)
		}
	}
}

// Send delivers a message with an optional keyboard. Failures are logged,
// never retried.
func (t *Telegram) Send(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	if _, err := t.api.Send(msg); err != nil {
		log.Printf("Failed to send message to %d: %v", chatID, err)
	}
}

// Notify implements services.Notifier.
func (t *Telegram) Notify(accountID int64, text string) {
	t.Send(accountID, text, nil)
}

// Edit replaces the text (and optionally the inline keyboard) of an earlier
// message.
func (t *Telegram) Edit(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	var edit tgbotapi.EditMessageTextConfig
	if markup != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *markup)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	edit.DisableWebPagePreview = true

	if _, err := t.api.Request(edit); err != nil {
		log.Printf("Failed to edit message %d for %d: %v", messageID, chatID, err)
	}
}

// IsMember implements services.MembershipChecker via getChatMember.
func (t *Telegram) IsMember(accountID int64) (bool, error) {
	member, err := t.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: t.channelID,
			UserID: accountID,
		},
	})
	if err != nil {
		return false, err
	}

	switch member.Status {
	case "member", "administrator", "creator", "restricted":
		return true, nil
	}
	return false, nil
}
