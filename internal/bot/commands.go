package bot

// Command is the closed set of actions a user can select from the menus.
// Free text that matches no button maps to CmdNone and is handled by the
// bank-details input flow or the invalid-option fallback.
type Command int

const (
	CmdNone Command = iota
	CmdClaim
	CmdBalance
	CmdWithdraw
	CmdInvite
	CmdSupport
	CmdStats
	CmdHome
	CmdSetBank
	CmdViewAccount
	CmdHistory
)

// Menu button labels. The claim label is built at runtime because it shows
// the configured claim amount.
const (
	btnBalance     = "💲 Balance"
	btnWithdraw    = "📤 Withdraw"
	btnInvite      = "👥 Invite"
	btnSupport     = "🆘 SOS Support"
	btnStats       = "📊 Statistics"
	btnHome        = "Home"
	btnSetBank     = "Set/Replace Bank"
	btnViewAccount = "View Account"
	btnHistory     = "History"
)

const callbackVerified = "channel_verified"

// parseCommand maps button text to a command at the transport edge.
func (d *Dispatcher) parseCommand(text string) Command {
	switch text {
	case d.claimLabel:
		return CmdClaim
	case btnBalance:
		return CmdBalance
	case btnWithdraw:
		return CmdWithdraw
	case btnInvite:
		return CmdInvite
	case btnSupport:
		return CmdSupport
	case btnStats:
		return CmdStats
	case btnHome:
		return CmdHome
	case btnSetBank:
		return CmdSetBank
	case btnViewAccount:
		return CmdViewAccount
	case btnHistory:
		return CmdHistory
	}
	return CmdNone
}
