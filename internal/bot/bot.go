// Package bot is the Discord adapter: it translates chat commands into
// registry operations and delivers discount alerts to the configured
// channel. The core packages never import it.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/mabiwatch/mabiwatch/internal/monitor"
	"github.com/mabiwatch/mabiwatch/internal/registry"
)

// Restarter lets command handlers reschedule the monitor after a mutation.
type Restarter interface {
	Restart()
}

// Bot bridges a Discord session to the item registry.
type Bot struct {
	session   *discordgo.Session
	channelID string
	registry  *registry.Registry
	monitor   Restarter
	logger    *slog.Logger

	readyOnce sync.Once
	ready     chan struct{}
}

// New creates a Bot with a configured (but not yet opened) session.
func New(token, channelID string, reg *registry.Registry, logger *slog.Logger) (*Bot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	b := &Bot{
		session:   session,
		channelID: channelID,
		registry:  reg,
		logger:    logger,
		ready:     make(chan struct{}),
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)

	return b, nil
}

// BindMonitor wires the monitor restart hook. Must be called before Open;
// the bot and the monitor reference each other, so one side binds late.
func (b *Bot) BindMonitor(m Restarter) {
	b.monitor = m
}

// Open connects to the Discord gateway.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	return nil
}

// Close shuts down the gateway connection.
func (b *Bot) Close() error {
	return b.session.Close()
}

// Ready returns a channel closed once the gateway READY event arrives.
// The monitor gates its first sweep on it.
func (b *Bot) Ready() <-chan struct{} {
	return b.ready
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.readyOnce.Do(func() {
		b.logger.Info("discord gateway ready",
			"user", r.User.Username,
			"channel", b.channelID,
		)
		close(b.ready)
	})
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	if m.ChannelID != b.channelID {
		return
	}

	reply := b.dispatch(context.Background(), m.Content)
	if reply == "" {
		return
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		b.logger.Warn("failed to send command reply", "err", err)
	}
}

// HandleAlert posts a discount alert to the configured channel. Delivery
// failures are returned for the monitor to log; the alert is dropped.
func (b *Bot) HandleAlert(_ context.Context, a monitor.Alert) error {
	ch, err := b.resolveChannel()
	if err != nil {
		return err
	}

	msg := fmt.Sprintf(
		":rotating_light: **Steep discount on `%s`**\n"+
			"- Reference price: `%s`\n"+
			"- Lowest listed: `%s`\n"+
			"- Discount: `%.1f%%`",
		a.Item,
		formatPrice(a.ReferencePrice),
		formatPrice(a.LowestPrice),
		a.DiscountRatio*100,
	)

	if _, err := b.session.ChannelMessageSend(ch.ID, msg); err != nil {
		return fmt.Errorf("send alert: %w", err)
	}
	return nil
}

// resolveChannel looks the alert channel up in the state cache, falling
// back to a REST fetch before the cache is warm.
func (b *Bot) resolveChannel() (*discordgo.Channel, error) {
	if ch, err := b.session.State.Channel(b.channelID); err == nil {
		return ch, nil
	}

	ch, err := b.session.Channel(b.channelID)
	if err != nil {
		return nil, fmt.Errorf("resolve channel %s: %w", b.channelID, err)
	}
	return ch, nil
}
