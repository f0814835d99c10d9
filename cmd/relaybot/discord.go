package main

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/polyglot-relay/internal/host"
)

// discordPlatform implements host.Platform on top of a discordgo session. It
// is the only place in the module that imports discordgo, keeping the
// translation core free of platform-specific types (spec.md section 9,
// "Global singletons → constructor injection" applies equally to SDK
// clients: nothing reaches into a package-level *discordgo.Session).
type discordPlatform struct {
	session       *discordgo.Session
	roleLanguages map[string]string // role name (lowercased) -> language code
	logger        *logrus.Entry
}

func newDiscordPlatform(session *discordgo.Session, roleLanguages map[string]string, logger *logrus.Entry) *discordPlatform {
	return &discordPlatform{session: session, roleLanguages: roleLanguages, logger: logger}
}

// GetUserLanguageCodes inspects the member's roles in guildID and returns the
// language codes implied by any role whose name matches roleLanguages,
// guild-role order preserved as Discord reports it.
func (d *discordPlatform) GetUserLanguageCodes(ctx context.Context, userID, guildID string) ([]string, error) {
	member, err := d.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching guild member: %w", err)
	}

	guild, err := d.session.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching guild roles: %w", err)
	}
	rolesByID := make(map[string]*discordgo.Role, len(guild.Roles))
	for _, r := range guild.Roles {
		rolesByID[r.ID] = r
	}

	var codes []string
	for _, roleID := range member.Roles {
		role, ok := rolesByID[roleID]
		if !ok {
			continue
		}
		if code, ok := d.roleLanguages[role.Name]; ok {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

// SendDirectMessage opens (or reuses) a DM channel and sends text. Discord
// returns a 403 when the recipient has DMs disabled or has blocked the bot;
// that surfaces here as a plain error for the broadcaster to record as
// delivery_failed.
func (d *discordPlatform) SendDirectMessage(ctx context.Context, recipientID, text string) error {
	channel, err := d.session.UserChannelCreate(recipientID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("opening DM channel: %w", err)
	}
	_, err = d.session.ChannelMessageSend(channel.ID, text, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("sending DM: %w", err)
	}
	return nil
}

// ListGuildRecipients enumerates guild members as broadcast candidates.
// CanReceiveDM is optimistically true here; the platform only learns a
// member has DMs disabled when SendDirectMessage actually fails.
func (d *discordPlatform) ListGuildRecipients(ctx context.Context, guildID string) ([]host.Recipient, error) {
	members, err := d.session.GuildMembers(guildID, "", 1000, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("listing guild members: %w", err)
	}

	recipients := make([]host.Recipient, 0, len(members))
	for _, m := range members {
		isBot := m.User != nil && m.User.Bot
		id := ""
		if m.User != nil {
			id = m.User.ID
		}
		recipients = append(recipients, host.Recipient{
			UserID:       id,
			IsBot:        isBot,
			CanReceiveDM: true,
		})
	}
	return recipients, nil
}

// EmitChannelAlert posts the pre-fan-out public alert to channelID.
func (d *discordPlatform) EmitChannelAlert(ctx context.Context, channelID, text string) error {
	_, err := d.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("posting channel alert: %w", err)
	}
	return nil
}
