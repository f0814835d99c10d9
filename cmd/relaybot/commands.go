package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/polyglot-relay/internal/broadcast"
	"github.com/tesseract-hub/polyglot-relay/internal/config"
	"github.com/tesseract-hub/polyglot-relay/internal/normalize"
	"github.com/tesseract-hub/polyglot-relay/internal/orchestrator"
	"github.com/tesseract-hub/polyglot-relay/internal/preference"
	"github.com/tesseract-hub/polyglot-relay/internal/target"
)

const (
	translateCommandPrefix = "!translate"
	setLanguageCommand     = "!setlang"
	providerTimeout        = 8 * time.Second
	broadcastTimeout       = 30 * time.Second
)

// relayBot wires the translation core's public operations (spec.md section
// 6: translate, translate_for_author, broadcast) to discord message events.
type relayBot struct {
	cfg         *config.Config
	normalizer  *normalize.Normalizer
	orch        *orchestrator.Orchestrator
	resolver    *target.Resolver
	broadcaster *broadcast.Broadcaster
	platform    *discordPlatform
	prefStore   *preference.Store
	logger      *logrus.Entry
}

func (b *relayBot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	switch {
	case strings.HasPrefix(m.Content, b.cfg.Discord.SOSPrefix):
		b.handleSOS(s, m)
	case strings.HasPrefix(m.Content, translateCommandPrefix):
		b.handleTranslateCommand(s, m)
	case strings.HasPrefix(m.Content, setLanguageCommand):
		b.handleSetLanguage(s, m)
	}
}

// handleTranslateCommand implements the on-demand `translate` public
// operation: "!translate <target> <text>" or, with no target, resolves one
// from the author's context ("!translate <text>" → translate_for_author).
func (b *relayBot) handleTranslateCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), providerTimeout)
	defer cancel()

	rest := strings.TrimSpace(strings.TrimPrefix(m.Content, translateCommandPrefix))
	if rest == "" {
		b.reply(s, m.ChannelID, "Usage: `!translate <language> <text>` or `!translate <text>` to use your preferred language.")
		return
	}

	// A leading token that normalizes to a real language is treated as an
	// explicit target (translate); otherwise the whole string is the text
	// and the target comes from the author's context (translate_for_author).
	leadingToken, remainder := splitLeadingToken(rest)
	var explicitTarget, text string
	if code := b.normalizer.Normalize(leadingToken); remainder != "" && code != normalize.Unknown && code != normalize.Auto {
		explicitTarget, text = leadingToken, remainder
	} else {
		text = rest
	}

	tgt := b.resolveTarget(ctx, m.Author.ID, m.GuildID, explicitTarget)
	if tgt == normalize.Unknown {
		b.reply(s, m.ChannelID, fmt.Sprintf("I don't recognize %q as a language. Try a name, ISO code, or flag emoji.", explicitTarget))
		return
	}
	if tgt == normalize.Auto {
		b.reply(s, m.ChannelID, "I don't know what language to use for you yet. Pass a target (`!translate es hello`), set a preference with `!setlang`, or pick up a language role.")
		return
	}

	result := b.orch.Translate(ctx, text, "", tgt)
	switch result.Reason {
	case orchestrator.ReasonTranslated, orchestrator.ReasonCacheHit, orchestrator.ReasonNoTranslationNeeded:
		b.reply(s, m.ChannelID, result.Text)
	case orchestrator.ReasonAllProvidersFailed:
		b.reply(s, m.ChannelID, "Sorry, translation isn't available right now. Please try again shortly.")
	case orchestrator.ReasonCancelled:
		b.reply(s, m.ChannelID, "That request timed out. Please try again.")
	}
}

// resolveTarget wires the TargetResolver's inputs together: explicit input
// from the command, a stored preference if any, guild role lookup via the
// platform, and no configured guild default yet (spec.md 4.6).
func (b *relayBot) resolveTarget(ctx context.Context, userID, guildID, explicitInput string) string {
	var userPref string
	if b.prefStore != nil {
		if pref, err := b.prefStore.Get(ctx, userID, guildID); err == nil {
			userPref = pref
		}
	}

	return b.resolver.Resolve(target.Input{
		UserID:        userID,
		GuildID:       guildID,
		ExplicitInput: explicitInput,
		UserPref:      userPref,
		RoleLookup: func(userID, guildID string) []string {
			codes, err := b.platform.GetUserLanguageCodes(ctx, userID, guildID)
			if err != nil {
				return nil
			}
			return codes
		},
	})
}

// handleSetLanguage persists an explicit user→language assignment, the
// preference layer TargetResolver checks before role lookup.
func (b *relayBot) handleSetLanguage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if b.prefStore == nil {
		b.reply(s, m.ChannelID, "Language preferences aren't available right now.")
		return
	}

	arg := strings.TrimSpace(strings.TrimPrefix(m.Content, setLanguageCommand))
	code := b.normalizer.Normalize(arg)
	if code == normalize.Unknown {
		b.reply(s, m.ChannelID, fmt.Sprintf("I don't recognize %q as a language.", arg))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), providerTimeout)
	defer cancel()
	if err := b.prefStore.Set(ctx, m.Author.ID, m.GuildID, code); err != nil {
		b.logger.WithError(err).Warn("failed to persist language preference")
		b.reply(s, m.ChannelID, "Sorry, I couldn't save that preference.")
		return
	}
	b.reply(s, m.ChannelID, fmt.Sprintf("Got it, I'll translate for you in %s.", code))
}

// handleSOS implements the broadcast public operation's trigger path: emit
// the channel-level alert immediately, then fan the message out translated
// per-recipient (spec.md 4.7 "Ordering guarantee").
func (b *relayBot) handleSOS(s *discordgo.Session, m *discordgo.MessageCreate) {
	text := strings.TrimSpace(strings.TrimPrefix(m.Content, b.cfg.Discord.SOSPrefix))
	if text == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), broadcastTimeout)
	defer cancel()

	if err := b.platform.EmitChannelAlert(ctx, m.ChannelID, text); err != nil {
		b.logger.WithError(err).Warn("failed to emit channel alert")
	}

	recipients, err := b.platform.ListGuildRecipients(ctx, m.GuildID)
	if err != nil {
		b.logger.WithError(err).Warn("failed to list guild recipients for broadcast")
		return
	}

	broadcastRecipients := make([]broadcast.Recipient, 0, len(recipients))
	for _, r := range recipients {
		tgt := b.resolveTarget(ctx, r.UserID, m.GuildID, "")
		broadcastRecipients = append(broadcastRecipients, broadcast.Recipient{
			UserID:       r.UserID,
			IsBot:        r.IsBot,
			CanReceiveDM: r.CanReceiveDM,
			Target:       tgt,
		})
	}

	// SOS trigger text is authored in the guild's configured source language
	// (SOS_SOURCE_LANGUAGE), not detected per-message — this lets the
	// broadcaster's source==target fast path (spec.md 4.7 step 3a) skip a
	// provider call entirely for the group that already shares that language,
	// instead of always paying for a translation round trip back to itself.
	sourceHint := b.normalizer.Normalize(b.cfg.Discord.SOSSourceLanguage)
	if sourceHint == normalize.Unknown || sourceHint == normalize.Auto {
		sourceHint = ""
	}

	report := b.broadcaster.Broadcast(ctx, broadcast.Input{
		SourceText:  text,
		SourceHint:  sourceHint,
		Recipients:  broadcastRecipients,
		SenderID:    m.Author.ID,
		OriginLabel: "sos:" + m.ChannelID,
	})

	b.logger.WithFields(logrus.Fields{
		"sent":                 report.Sent,
		"dm_failed":            report.DMFailed,
		"translation_fallback": report.TranslationFallback,
	}).Info("sos broadcast dispatched")
}

func (b *relayBot) reply(s *discordgo.Session, channelID, text string) {
	if _, err := s.ChannelMessageSend(channelID, text); err != nil {
		b.logger.WithError(err).Warn("failed to send channel reply")
	}
}

// splitLeadingToken splits "es hola mundo" into ("es", "hola mundo") at the
// first space, whatever the leading token is; a string with no space comes
// back as (s, ""). Deciding whether the leading token is a language is left
// to the caller.
func splitLeadingToken(s string) (leading, rest string) {
	parts := strings.SplitN(s, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
