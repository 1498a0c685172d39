package bot

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rewardsbot/internal/config"
	"rewardsbot/internal/models"
	"rewardsbot/internal/services"
	"rewardsbot/internal/store"
	"rewardsbot/internal/utils"
)

// Sink sends outbound messages. Delivery is asynchronous from the core's
// point of view; implementations log failures instead of returning them.
type Sink interface {
	Send(chatID int64, text string, markup interface{})
	Edit(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup)
}

// Dispatcher routes inbound events through the verification gate to the
// claim, referral, withdrawal and account flows.
type Dispatcher struct {
	cfg          *config.Config
	store        *store.AccountStore
	claims       *services.ClaimService
	referrals    *services.ReferralService
	verification *services.VerificationService
	withdrawals  *services.WithdrawalService
	stats        *services.StatsService
	sink         Sink
	botUsername  string
	claimLabel   string
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(
	cfg *config.Config,
	accounts *store.AccountStore,
	claims *services.ClaimService,
	referrals *services.ReferralService,
	verification *services.VerificationService,
	withdrawals *services.WithdrawalService,
	stats *services.StatsService,
	sink Sink,
	botUsername string,
) *Dispatcher {
	return &Dispatcher{
		cfg:          cfg,
		store:        accounts,
		claims:       claims,
		referrals:    referrals,
		verification: verification,
		withdrawals:  withdrawals,
		stats:        stats,
		sink:         sink,
		botUsername:  botUsername,
		claimLabel:   fmt.Sprintf("🎁 Claim %s", utils.FormatCurrency(cfg.Rewards.ClaimAmount)),
	}
}

// HandleStart processes a first-contact event, creating the account lazily
// and attempting referral attribution when a referral argument is present.
func (d *Dispatcher) HandleStart(accountID int64, firstName, refArg string) {
	log.Printf("New start from user %d (%s)", accountID, firstName)

	d.store.Mutate(func(tx *store.Tx) bool {
		_, created := tx.GetOrCreate(accountID, firstName)
		return created
	})

	// Attribution is attempted opportunistically; the service no-ops when
	// any precondition fails, including a repeated /start.
	if refArg != "" {
		if referrerID, err := strconv.ParseInt(strings.TrimSpace(refArg), 10, 64); err == nil {
			d.referrals.Attribute(accountID, referrerID)
		}
	}

	if d.verification.IsVerified(accountID) {
		d.sink.Send(accountID, welcomeMessage(d.cfg), mainMenu(d.claimLabel))
	} else {
		d.promptVerification(accountID)
	}
}

// HandleCallback processes inline keyboard callbacks.
func (d *Dispatcher) HandleCallback(accountID int64, messageID int, data, firstName string) {
	if data != callbackVerified {
		return
	}

	switch d.verification.Verify(accountID, firstName) {
	case services.VerifyOK:
		d.sink.Edit(accountID, messageID, verifiedMessage, nil)
		d.sink.Send(accountID, welcomeMessage(d.cfg), mainMenu(d.claimLabel))
	case services.VerifyNotMember:
		kb := verificationKeyboard()
		d.sink.Edit(accountID, messageID, notMemberMessage(d.cfg.Telegram.ChannelLink), &kb)
	case services.VerifyCheckFailed:
		d.sink.Edit(accountID, messageID, verifyFailedMessage, nil)
	}
}

// HandleText processes a menu selection or free-text message. Everything is
// gated behind verification.
func (d *Dispatcher) HandleText(accountID int64, firstName, text string) {
	text = strings.TrimSpace(text)
	log.Printf("Menu option %q from user %d", text, accountID)

	if !d.verification.IsVerified(accountID) {
		d.promptVerification(accountID)
		return
	}

	switch d.parseCommand(text) {
	case CmdClaim:
		d.handleClaim(accountID)
	case CmdBalance:
		d.handleBalance(accountID)
	case CmdWithdraw:
		d.handleWithdraw(accountID, firstName)
	case CmdInvite:
		d.sink.Send(accountID, inviteMessage(d.botUsername, accountID, d.cfg.Rewards.ReferralBonus), nil)
	case CmdSupport:
		d.sink.Send(accountID, supportMessage, nil)
	case CmdStats:
		d.sink.Send(accountID, statsMessage(d.stats.Collect()), nil)
	case CmdHome:
		d.sink.Send(accountID, homeMessage, mainMenu(d.claimLabel))
	case CmdSetBank:
		d.handleSetBank(accountID)
	case CmdViewAccount:
		d.handleViewAccount(accountID)
	case CmdHistory:
		d.handleHistory(accountID)
	case CmdNone:
		d.handleFreeText(accountID, text)
	}
}

func (d *Dispatcher) promptVerification(accountID int64) {
	d.sink.Send(accountID, verificationPrompt(d.cfg.Telegram.ChannelLink), verificationKeyboard())
}

func (d *Dispatcher) handleClaim(accountID int64) {
	result, ok := d.claims.Claim(accountID)
	if !ok {
		d.sink.Send(accountID, userNotFoundMessage, nil)
		return
	}

	if result.Claimed {
		d.sink.Send(accountID, claimSuccessMessage(d.cfg.Rewards.ClaimAmount, d.cfg.Rewards.ClaimCooldown), mainMenu(d.claimLabel))
	} else {
		d.sink.Send(accountID, claimWaitMessage(result.SecondsRemaining), mainMenu(d.claimLabel))
	}
}

func (d *Dispatcher) handleBalance(accountID int64) {
	account, ok := d.store.Get(accountID)
	if !ok {
		d.sink.Send(accountID, userNotFoundMessage, nil)
		return
	}
	d.sink.Send(accountID, balanceMessage(account.Balance, d.cfg), balanceMenu())
}

func (d *Dispatcher) handleWithdraw(accountID int64, firstName string) {
	outcome, ok := d.withdrawals.Request(accountID)
	if !ok {
		d.sink.Send(accountID, userNotFoundMessage, nil)
		return
	}

	if outcome.Pending {
		d.sink.Send(accountID, pendingMessage(firstName, outcome), nil)
		return
	}

	switch outcome.Reason {
	case services.ReasonWindowClosed:
		d.sink.Send(accountID, windowClosedMessage(firstName, d.cfg.Withdrawal.Windows), nil)
	case services.ReasonInsufficientReferrals:
		d.sink.Send(accountID, insufficientReferralsMessage(firstName, outcome.Referrals, d.cfg.Withdrawal.MinReferrals), nil)
	case services.ReasonBelowMinimum:
		d.sink.Send(accountID, belowMinimumMessage(firstName, outcome.Balance, d.cfg.Withdrawal.MinAmount), nil)
	case services.ReasonBankDetailsMissing:
		d.sink.Send(accountID, bankMissingMessage(firstName), nil)
	}
}

func (d *Dispatcher) handleSetBank(accountID int64) {
	if !d.store.Update(accountID, func(a *models.Account) {
		a.AwaitingBankInput = true
	}) {
		d.sink.Send(accountID, userNotFoundMessage, nil)
		return
	}
	d.sink.Send(accountID, bankPromptMessage, balanceMenu())
}

func (d *Dispatcher) handleViewAccount(accountID int64) {
	account, ok := d.store.Get(accountID)
	if !ok {
		d.sink.Send(accountID, userNotFoundMessage, nil)
		return
	}

	if account.HasBankDetails() {
		d.sink.Send(accountID, viewAccountMessage(*account.BankDetails), mainMenu(d.claimLabel))
	} else {
		d.sink.Send(accountID, noBankMessage, mainMenu(d.claimLabel))
	}
}

func (d *Dispatcher) handleHistory(accountID int64) {
	account, ok := d.store.Get(accountID)
	if !ok {
		d.sink.Send(accountID, userNotFoundMessage, nil)
		return
	}

	if len(account.ClaimHistory) == 0 {
		d.sink.Send(accountID, noHistoryMessage, mainMenu(d.claimLabel))
		return
	}
	d.sink.Send(accountID,
		historyMessage(account.ClaimHistory, d.cfg.Rewards.ClaimAmount, d.cfg.Withdrawal.Timezone),
		mainMenu(d.claimLabel))
}

// handleFreeText consumes the pending bank-details input, or falls back to
// the invalid-option prompt.
func (d *Dispatcher) handleFreeText(accountID int64, text string) {
	account, ok := d.store.Get(accountID)
	if !ok {
		d.sink.Send(accountID, userNotFoundMessage, nil)
		return
	}

	if !account.AwaitingBankInput {
		d.sink.Send(accountID, invalidOptionMessage, mainMenu(d.claimLabel))
		return
	}

	details, parsed := parseBankDetails(text)
	if !parsed {
		// Malformed input mutates nothing; the flag stays armed.
		d.sink.Send(accountID, bankInvalidMessage, balanceMenu())
		return
	}

	d.store.Update(accountID, func(a *models.Account) {
		a.BankDetails = &details
		a.AwaitingBankInput = false
	})
	log.Printf("Bank details updated for user %d", accountID)
	d.sink.Send(accountID, bankUpdatedMessage, mainMenu(d.claimLabel))
}

// parseBankDetails expects exactly three non-empty lines: account number,
// bank name, account name.
func parseBankDetails(text string) (models.BankDetails, bool) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 3 {
		return models.BankDetails{}, false
	}

	details := models.BankDetails{
		AccountNumber: strings.TrimSpace(lines[0]),
		BankName:      strings.TrimSpace(lines[1]),
		AccountName:   strings.TrimSpace(lines[2]),
	}
	if !details.Complete() {
		return models.BankDetails{}, false
	}
	return details, true
}
