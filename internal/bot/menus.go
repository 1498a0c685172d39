package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// mainMenu generates the main menu keyboard.
func mainMenu(claimLabel string) tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(claimLabel),
			tgbotapi.NewKeyboardButton(btnBalance),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnWithdraw),
			tgbotapi.NewKeyboardButton(btnInvite),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSupport),
			tgbotapi.NewKeyboardButton(btnStats),
		),
	)
}

// balanceMenu generates the balance submenu keyboard.
func balanceMenu() tgbotapi.ReplyKeyboardMarkup {
	menu := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSetBank)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnViewAccount)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnHistory)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnHome)),
	)
	menu.OneTimeKeyboard = true
	return menu
}

// verificationKeyboard generates the channel verification inline keyboard.
func verificationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ I've Joined", callbackVerified),
		),
	)
}
