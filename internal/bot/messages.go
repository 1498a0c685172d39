package bot

import (
	"fmt"
	"strings"
	"time"

	"rewardsbot/internal/config"
	"rewardsbot/internal/models"
	"rewardsbot/internal/services"
	"rewardsbot/internal/utils"
)

const (
	verifiedMessage = "✅ Channel verification complete! You can now access all bot features."

	verifyFailedMessage = "⚠️ Verification failed!\n\n" +
		"Please make sure:\n" +
		"1. You have joined our channel\n" +
		"2. If you have joined, leave and join again\n" +
		"3. Try using /start again"

	supportMessage = "🆘 NEED HELP?\n\n" +
		"Our support team is here to assist you!\n\n" +
		"Use the contact listed in the channel description.\n\n" +
		"We typically respond within 1 hour. Thank you for your patience!"

	bankInvalidMessage = "❌ INVALID FORMAT! Please send EXACTLY 3 lines:\n" +
		"1. ACC NUMBER\n" +
		"2. BANK NAME\n" +
		"3. ACCT NAME"

	bankUpdatedMessage = "✅ BANK DETAILS UPDATED SUCCESSFULLY!"

	noBankMessage = "❌ You haven't set bank details yet. Use 'Set/Replace Bank' to add them."

	noHistoryMessage = "You have no claim history yet."

	userNotFoundMessage = "❌ User not found. Please send /start again."

	invalidOptionMessage = "❌ Invalid option. Please choose from the menu below:"

	homeMessage = "🏠 Returning to main menu..."
)

func verificationPrompt(link string) string {
	return "⛔️ JOIN OUR CHANNEL TO CONTINUE\n\n" +
		"To use this bot, you must first join our official channel:\n" +
		link + "\n\n" +
		"✅ After joining, click the button below to verify:"
}

func notMemberMessage(link string) string {
	return "❌ You need to join our channel first!\n\n" +
		fmt.Sprintf("Please join %s and then click the verification button again.", link)
}

func welcomeMessage(cfg *config.Config) string {
	return "💸 WELCOME TO THE REWARDS BOT 💸\n\n" +
		"Earn cash rewards by claiming and referring friends.\n\n" +
		"🤑 HOW TO EARN:\n\n" +
		fmt.Sprintf("1️⃣ Claim %s every %s! 💰\n",
			utils.FormatCurrency(cfg.Rewards.ClaimAmount), formatCooldown(cfg.Rewards.ClaimCooldown)) +
		fmt.Sprintf("2️⃣ Refer friends to earn %s per referral! 🤝\n\n",
			utils.FormatCurrency(cfg.Rewards.ReferralBonus)) +
		"💵 WITHDRAWALS:\n\n" +
		scheduleLines(cfg.Withdrawal.Windows) +
		fmt.Sprintf("🔹 %d+ referrals required\n", cfg.Withdrawal.MinReferrals) +
		fmt.Sprintf("🔹 Min withdrawal: %s\n", utils.FormatCurrency(cfg.Withdrawal.MinAmount)) +
		fmt.Sprintf("🔹 Max withdrawal: %s\n\n", utils.FormatCurrency(cfg.Withdrawal.MaxAmount)) +
		"🚀 Start claiming and inviting friends now!"
}

func claimSuccessMessage(amount int64, cooldown time.Duration) string {
	return "🎉 NEW EARNING ALERT!\n" +
		fmt.Sprintf("+%s ADDED TO YOUR BALANCE! 💸\n\n", utils.FormatCurrency(amount)) +
		fmt.Sprintf("⏳ Next claim available in %s", formatCooldown(cooldown))
}

func claimWaitMessage(seconds int64) string {
	return fmt.Sprintf("⏳ Please wait %s before claiming again!", utils.FormatTimeRemaining(seconds))
}

func balanceMessage(balance int64, cfg *config.Config) string {
	return fmt.Sprintf("ℹ️ YOUR BALANCE: %s\n\n", utils.FormatCurrency(balance)) +
		"💳 Withdrawals are paid to your saved bank account\n\n" +
		"📅 WITHDRAWAL SCHEDULE:\n" +
		scheduleLines(cfg.Withdrawal.Windows) +
		fmt.Sprintf("- Requires %d+ referrals\n\n", cfg.Withdrawal.MinReferrals) +
		fmt.Sprintf("💰 Min withdrawal: %s\n", utils.FormatCurrency(cfg.Withdrawal.MinAmount)) +
		fmt.Sprintf("💸 Max withdrawal: %s\n\n", utils.FormatCurrency(cfg.Withdrawal.MaxAmount)) +
		"👥 Invite friends to unlock withdrawals!"
}

func windowClosedMessage(firstName string, windows []config.WithdrawalWindow) string {
	return fmt.Sprintf("Hi %s,\n\n", firstName) +
		"⛔️ WITHDRAWALS ARE CLOSED\n\n" +
		"Withdrawals are only available:\n" +
		scheduleLines(windows) + "\n" +
		"Please try again during these times."
}

func insufficientReferralsMessage(firstName string, have, need int) string {
	return fmt.Sprintf("Hi %s,\n\n", firstName) +
		"⛔️ WITHDRAWAL REQUIREMENT NOT MET\n\n" +
		fmt.Sprintf("You need at least %d referrals to withdraw!\n", need) +
		fmt.Sprintf("Current referrals: %d\n\n", have) +
		"👥 Invite more friends to unlock withdrawals!"
}

func belowMinimumMessage(firstName string, balance, min int64) string {
	return fmt.Sprintf("Hi %s,\n\n", firstName) +
		fmt.Sprintf("⛔️ MINIMUM WITHDRAWAL IS %s\n\n", utils.FormatCurrency(min)) +
		fmt.Sprintf("Your current balance: %s\n\n", utils.FormatCurrency(balance)) +
		"💸 Keep claiming rewards to reach the minimum!"
}

func bankMissingMessage(firstName string) string {
	return fmt.Sprintf("Hi %s,\n\n", firstName) +
		"⛔️ BANK DETAILS REQUIRED\n\n" +
		"You need to set your bank details before withdrawing!\n" +
		fmt.Sprintf("Go to '%s' → '%s' to add your information.", btnBalance, btnSetBank)
}

func pendingMessage(firstName string, outcome services.WithdrawalOutcome) string {
	return "⏳ WITHDRAWAL REQUEST PENDING\n\n" +
		fmt.Sprintf("Hi %s,\n\n", firstName) +
		"We've received your withdrawal request:\n" +
		fmt.Sprintf("• Amount: %s\n", utils.FormatCurrency(outcome.Amount)) +
		fmt.Sprintf("• Account Number: %s\n", outcome.Bank.AccountNumber) +
		fmt.Sprintf("• Bank Name: %s\n", outcome.Bank.BankName) +
		fmt.Sprintf("• Account Name: %s\n\n", outcome.Bank.AccountName) +
		"⏳ Your withdrawal is now pending approval.\n" +
		"You will receive a follow-up message shortly."
}

func inviteMessage(botUsername string, accountID, bonus int64) string {
	link := fmt.Sprintf("https://t.me/%s?start=%d", botUsername, accountID)
	return "👥 INVITE FRIENDS, EARN REWARDS\n\n" +
		fmt.Sprintf("💰 EARN %s PER REFERRAL!\n\n", utils.FormatCurrency(bonus)) +
		"Share this link with your friends:\n\n" + link
}

func statsMessage(stats services.Stats) string {
	return "📊 BOT STATISTICS:\n\n" +
		fmt.Sprintf("👥 Total Users: %d\n", stats.TotalAccounts) +
		fmt.Sprintf("✅ Active Users: %d\n", stats.VerifiedAccounts) +
		fmt.Sprintf("💰 Total Balance: %s\n", utils.FormatCurrency(stats.TotalBalance)) +
		fmt.Sprintf("👫 Total Referrals: %d\n\n", stats.TotalReferrals) +
		"🟢 System Status: Operational"
}

const bankPromptMessage = "💳 YOUR BANK ACCOUNT DETAILS:\n\n" +
	"Please provide your details in EXACTLY this format:\n\n" +
	"ACC NUMBER\n" +
	"BANK NAME\n" +
	"ACCT NAME\n\n" +
	"⚠️ These details will be used for ALL future withdrawals. " +
	"Please double-check for accuracy!"

func viewAccountMessage(bd models.BankDetails) string {
	return "👀 YOUR BANK ACCOUNT DETAILS:\n\n" +
		fmt.Sprintf("ACC NUMBER: %s\n", bd.AccountNumber) +
		fmt.Sprintf("BANK NAME: %s\n", bd.BankName) +
		fmt.Sprintf("ACCT NAME: %s", bd.AccountName)
}

func historyMessage(history []int64, amount int64, tz *time.Location) string {
	var sb strings.Builder
	sb.WriteString("⚙️ YOUR CLAIM HISTORY:\n\n⏳ CLAIMS:\n")
	for _, ts := range history {
		when := time.Unix(ts, 0).In(tz).Format("2006-01-02 15:04:05")
		sb.WriteString(fmt.Sprintf("- Claimed %s on %s\n", utils.FormatCurrency(amount), when))
	}
	return sb.String()
}

// scheduleLines renders the configured windows, one per line.
func scheduleLines(windows []config.WithdrawalWindow) string {
	var sb strings.Builder
	for _, w := range windows {
		sb.WriteString(fmt.Sprintf("📅 %s: %02d:00 - %02d:00\n", w.Weekday, w.StartHour, w.EndHour))
	}
	return sb.String()
}

func formatCooldown(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}
