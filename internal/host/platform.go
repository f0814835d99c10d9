// Package host defines the boundary between the translation core and the
// Discord platform it runs on (spec.md section 6, "Public operations
// consumed from the host"). The core depends only on this interface; the
// discordgo-backed implementation lives in cmd/relaybot, keeping the
// platform SDK out of every other package's import graph.
package host

import "context"

// Recipient mirrors broadcast.Recipient's shape but is produced by the host,
// which knows about bot accounts, DM privacy settings, and guild membership.
type Recipient struct {
	UserID       string
	IsBot        bool
	CanReceiveDM bool
}

// Platform is every operation the translation core needs from the host
// (spec.md section 6). Implementations must not block indefinitely — callers
// pass a context carrying the relevant deadline.
type Platform interface {
	// GetUserLanguageCodes returns the LanguageCodes implied by a user's
	// language roles in a guild, in the host's preferred precedence order.
	GetUserLanguageCodes(ctx context.Context, userID, guildID string) ([]string, error)

	// SendDirectMessage delivers text to recipientID's DMs.
	SendDirectMessage(ctx context.Context, recipientID, text string) error

	// ListGuildRecipients enumerates potential broadcast recipients for a guild.
	ListGuildRecipients(ctx context.Context, guildID string) ([]Recipient, error)

	// EmitChannelAlert posts text to channelID, for the pre-fan-out public
	// alert a broadcast emits before translating DMs (spec.md 4.7 "Ordering
	// guarantee").
	EmitChannelAlert(ctx context.Context, channelID, text string) error
}
