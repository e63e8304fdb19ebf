package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mabiwatch/mabiwatch/internal/registry"
)

const commandPrefix = "!"

// dispatch parses a raw message and runs the matching registry command.
// It returns the reply text, or "" when the message is not a command.
// Item names may contain spaces, so everything after the command word is
// the argument.
func (b *Bot) dispatch(ctx context.Context, content string) string {
	if !strings.HasPrefix(content, commandPrefix) {
		return ""
	}

	cmd, arg, _ := strings.Cut(strings.TrimPrefix(content, commandPrefix), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "add":
		return b.addItem(ctx, arg)
	case "remove":
		return b.removeItem(ctx, arg)
	case "list":
		return b.listItems()
	}
	return ""
}

func (b *Bot) addItem(ctx context.Context, name string) string {
	if name == "" {
		return "Usage: `!add <item name>`"
	}

	err := b.registry.Add(ctx, name)
	switch {
	case errors.Is(err, registry.ErrAlreadyExists):
		return fmt.Sprintf("❗️ `%s` is already monitored.", name)
	case err != nil:
		b.logger.Error("failed to add item", "item", name, "err", err)
		return fmt.Sprintf("❗️ Could not add `%s`, try again later.", name)
	}

	if b.monitor != nil {
		b.monitor.Restart()
	}
	return fmt.Sprintf("✅ Now monitoring `%s`.\n%s", name, b.listItems())
}

func (b *Bot) removeItem(ctx context.Context, name string) string {
	if name == "" {
		return "Usage: `!remove <item name>`"
	}

	err := b.registry.Remove(ctx, name)
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return fmt.Sprintf("❗️ `%s` is not monitored.", name)
	case err != nil:
		b.logger.Error("failed to remove item", "item", name, "err", err)
		return fmt.Sprintf("❗️ Could not remove `%s`, try again later.", name)
	}

	if b.monitor != nil {
		b.monitor.Restart()
	}
	return fmt.Sprintf("✅ Stopped monitoring `%s`.\n%s", name, b.listItems())
}

func (b *Bot) listItems() string {
	items, err := b.registry.Items()
	if err != nil {
		b.logger.Error("failed to list items", "err", err)
		return "❗️ Could not read the item list, try again later."
	}
	if len(items) == 0 {
		return "No items are monitored."
	}

	var sb strings.Builder
	sb.WriteString("Monitored items:")
	for _, it := range items {
		sb.WriteString("\n- ")
		sb.WriteString(it)
	}
	return sb.String()
}

var pricePrinter = message.NewPrinter(language.English)

// formatPrice renders a gold amount with thousands separators.
func formatPrice(v int64) string {
	return pricePrinter.Sprintf("%d", v)
}
