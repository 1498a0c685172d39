package bot

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewardsbot/internal/config"
	"rewardsbot/internal/jobs"
	"rewardsbot/internal/models"
	"rewardsbot/internal/services"
	"rewardsbot/internal/store"
)

type sentMessage struct {
	chatID    int64
	text      string
	hasMarkup bool
}

type fakeSink struct {
	mu    sync.Mutex
	sent  []sentMessage
	edits []sentMessage
}

func (f *fakeSink) Send(chatID int64, text string, markup interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, hasMarkup: markup != nil})
}

func (f *fakeSink) Edit(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, sentMessage{chatID: chatID, text: text, hasMarkup: markup != nil})
}

func (f *fakeSink) Notify(accountID int64, text string) {
	f.Send(accountID, text, nil)
}

func (f *fakeSink) last(t *testing.T) sentMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

type fakeChecker struct {
	member bool
	err    error
}

func (c *fakeChecker) IsMember(accountID int64) (bool, error) {
	return c.member, c.err
}

func allWeek() []config.WithdrawalWindow {
	var windows []config.WithdrawalWindow
	for d := time.Sunday; d <= time.Saturday; d++ {
		windows = append(windows, config.WithdrawalWindow{Weekday: d, StartHour: 0, EndHour: 24})
	}
	return windows
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	lagos, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)

	return &config.Config{
		Telegram: config.TelegramConfig{
			BotToken:    "test-token",
			ChannelID:   -100123,
			ChannelLink: "https://t.me/testchannel",
		},
		Rewards: config.RewardsConfig{
			ClaimAmount:   5000,
			ClaimCooldown: time.Hour,
			ReferralBonus: 20000,
		},
		Withdrawal: config.WithdrawalConfig{
			MinAmount:    20000,
			MaxAmount:    1000000,
			MinReferrals: 5,
			Windows:      allWeek(),
			Timezone:     lagos,
			NotifyDelay:  time.Minute,
		},
		Server: config.ServerConfig{Port: "0", JWTSecret: "secret"},
		Store:  config.StoreConfig{SnapshotPath: filepath.Join(t.TempDir(), "snapshot.json")},
	}
}

type testBot struct {
	dispatcher *Dispatcher
	store      *store.AccountStore
	sink       *fakeSink
	checker    *fakeChecker
	scheduler  *jobs.Scheduler
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()
	cfg := testConfig(t)
	accounts := store.New(cfg.Store.SnapshotPath)
	sink := &fakeSink{}
	checker := &fakeChecker{}
	scheduler := jobs.NewScheduler()
	t.Cleanup(scheduler.Stop)

	rules := services.WithdrawRules{
		MinAmount:    cfg.Withdrawal.MinAmount,
		MinReferrals: cfg.Withdrawal.MinReferrals,
		Windows:      cfg.Withdrawal.Windows,
		Timezone:     cfg.Withdrawal.Timezone,
	}

	dispatcher := NewDispatcher(
		cfg,
		accounts,
		services.NewClaimService(accounts, cfg.Rewards.ClaimAmount, cfg.Rewards.ClaimCooldown),
		services.NewReferralService(accounts, cfg.Rewards.ReferralBonus, sink),
		services.NewVerificationService(accounts, checker),
		services.NewWithdrawalService(accounts, rules, scheduler, sink, cfg.Withdrawal.NotifyDelay),
		services.NewStatsService(accounts),
		sink,
		"testbot",
	)

	return &testBot{dispatcher: dispatcher, store: accounts, sink: sink, checker: checker, scheduler: scheduler}
}

func (b *testBot) verifiedAccount(id int64) {
	b.store.Mutate(func(tx *store.Tx) bool {
		account, _ := tx.GetOrCreate(id, "Test")
		account.Verified = true
		return true
	})
}

func TestStartCreatesAccountAndPromptsVerification(t *testing.T) {
	b := newTestBot(t)

	b.dispatcher.HandleStart(1, "Ada", "")

	account, ok := b.store.Get(1)
	require.True(t, ok)
	assert.False(t, account.Verified)

	msg := b.sink.last(t)
	assert.Contains(t, msg.text, "JOIN OUR CHANNEL")
	assert.Contains(t, msg.text, "https://t.me/testchannel")
	assert.True(t, msg.hasMarkup)
}

func TestStartWithReferralArgCreditsReferrer(t *testing.T) {
	b := newTestBot(t)
	b.verifiedAccount(2)

	b.dispatcher.HandleStart(1, "Ada", "2")

	referrer, _ := b.store.Get(2)
	assert.Equal(t, int64(20000), referrer.Balance)
	assert.Equal(t, 1, referrer.ReferralCount)

	account, _ := b.store.Get(1)
	require.NotNil(t, account.ReferredBy)
	assert.Equal(t, int64(2), *account.ReferredBy)
}

func TestStartVerifiedUserGetsWelcome(t *testing.T) {
	b := newTestBot(t)
	b.verifiedAccount(1)

	b.dispatcher.HandleStart(1, "Ada", "")

	msg := b.sink.last(t)
	assert.Contains(t, msg.text, "WELCOME")
	assert.True(t, msg.hasMarkup)
}

func TestUnverifiedUserIsGated(t *testing.T) {
	b := newTestBot(t)
	b.dispatcher.HandleStart(1, "Ada", "")
	b.sink.sent = nil

	b.dispatcher.HandleText(1, "Ada", btnBalance)

	msg := b.sink.last(t)
	assert.Contains(t, msg.text, "JOIN OUR CHANNEL")
}

func TestVerificationCallbackSuccess(t *testing.T) {
	b := newTestBot(t)
	b.dispatcher.HandleStart(1, "Ada", "")
	b.checker.member = true

	b.dispatcher.HandleCallback(1, 10, callbackVerified, "Ada")

	account, _ := b.store.Get(1)
	assert.True(t, account.Verified)

	require.Len(t, b.sink.edits, 1)
	assert.Contains(t, b.sink.edits[0].text, "verification complete")
	assert.Contains(t, b.sink.last(t).text, "WELCOME")
}

func TestVerificationCallbackNotMember(t *testing.T) {
	b := newTestBot(t)
	b.dispatcher.HandleStart(1, "Ada", "")
	b.checker.member = false

	b.dispatcher.HandleCallback(1, 10, callbackVerified, "Ada")

	account, _ := b.store.Get(1)
	assert.False(t, account.Verified)

	require.Len(t, b.sink.edits, 1)
	assert.Contains(t, b.sink.edits[0].text, "join our channel first")
	assert.True(t, b.sink.edits[0].hasMarkup)
}

func TestClaimCommand(t *testing.T) {
	b := newTestBot(t)
	b.verifiedAccount(1)

	b.dispatcher.HandleText(1, "Ada", b.dispatcher.claimLabel)

	assert.Contains(t, b.sink.last(t).text, "NEW EARNING ALERT")

	account, _ := b.store.Get(1)
	assert.Equal(t, int64(5000), account.Balance)

	// Immediate second claim is rejected.
	b.dispatcher.HandleText(1, "Ada", b.dispatcher.claimLabel)
	assert.Contains(t, b.sink.last(t).text, "Please wait")
}

func TestWithdrawCommandRejection(t *testing.T) {
	b := newTestBot(t)
	b.verifiedAccount(1)

	b.dispatcher.HandleText(1, "Ada", btnWithdraw)

	msg := b.sink.last(t)
	assert.Contains(t, msg.text, "WITHDRAWAL REQUIREMENT NOT MET")
	assert.Contains(t, msg.text, "Hi Ada")
}

func TestBankDetailsFlow(t *testing.T) {
	b := newTestBot(t)
	b.verifiedAccount(1)

	b.dispatcher.HandleText(1, "Ada", btnSetBank)
	assert.Contains(t, b.sink.last(t).text, "BANK ACCOUNT DETAILS")

	account, _ := b.store.Get(1)
	require.True(t, account.AwaitingBankInput)

	// Malformed input keeps the flag armed and stores nothing.
	b.dispatcher.HandleText(1, "Ada", "0123456789\nTest Bank")
	assert.Contains(t, b.sink.last(t).text, "INVALID FORMAT")

	account, _ = b.store.Get(1)
	assert.True(t, account.AwaitingBankInput)
	assert.Nil(t, account.BankDetails)

	b.dispatcher.HandleText(1, "Ada", "0123456789\nTest Bank\nAda Doe")
	assert.Contains(t, b.sink.last(t).text, "UPDATED SUCCESSFULLY")

	account, _ = b.store.Get(1)
	assert.False(t, account.AwaitingBankInput)
	require.NotNil(t, account.BankDetails)
	assert.Equal(t, models.BankDetails{
		AccountNumber: "0123456789",
		BankName:      "Test Bank",
		AccountName:   "Ada Doe",
	}, *account.BankDetails)
}

func TestViewAccountAndHistory(t *testing.T) {
	b := newTestBot(t)
	b.verifiedAccount(1)

	b.dispatcher.HandleText(1, "Ada", btnViewAccount)
	assert.Contains(t, b.sink.last(t).text, "haven't set bank details")

	b.dispatcher.HandleText(1, "Ada", btnHistory)
	assert.Contains(t, b.sink.last(t).text, "no claim history")

	b.dispatcher.HandleText(1, "Ada", b.dispatcher.claimLabel)
	b.dispatcher.HandleText(1, "Ada", btnHistory)
	assert.Contains(t, b.sink.last(t).text, "CLAIM HISTORY")
}

func TestInviteCommand(t *testing.T) {
	b := newTestBot(t)
	b.verifiedAccount(1)

	b.dispatcher.HandleText(1, "Ada", btnInvite)

	assert.Contains(t, b.sink.last(t).text, "https://t.me/testbot?start=1")
}

func TestUnknownTextFallsBack(t *testing.T) {
	b := newTestBot(t)
	b.verifiedAccount(1)

	b.dispatcher.HandleText(1, "Ada", "what is this")

	assert.Contains(t, b.sink.last(t).text, "Invalid option")
}

func TestParseCommand(t *testing.T) {
	b := newTestBot(t)
	d := b.dispatcher

	cases := map[string]Command{
		d.claimLabel:   CmdClaim,
		btnBalance:     CmdBalance,
		btnWithdraw:    CmdWithdraw,
		btnInvite:      CmdInvite,
		btnSupport:     CmdSupport,
		btnStats:       CmdStats,
		btnHome:        CmdHome,
		btnSetBank:     CmdSetBank,
		btnViewAccount: CmdViewAccount,
		btnHistory:     CmdHistory,
		"free text":    CmdNone,
	}

	for text, want := range cases {
		assert.Equal(t, want, d.parseCommand(text), "text=%q", text)
	}
}

func TestParseBankDetails(t *testing.T) {
	details, ok := parseBankDetails("  0123456789 \nTest Bank\n Ada Doe ")
	require.True(t, ok)
	assert.Equal(t, "0123456789", details.AccountNumber)
	assert.Equal(t, "Test Bank", details.BankName)
	assert.Equal(t, "Ada Doe", details.AccountName)

	for _, raw := range []string{"", "one line", "a\nb", "a\nb\nc\nd", "a\n\nc"} {
		_, ok := parseBankDetails(raw)
		assert.False(t, ok, "input=%q", raw)
	}
}

func TestClaimLabelShowsAmount(t *testing.T) {
	b := newTestBot(t)
	assert.True(t, strings.Contains(b.dispatcher.claimLabel, "₦5,000"))
}
