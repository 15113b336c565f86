package notify

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/latoulicious/dexbox/pkg/embed"
	"github.com/latoulicious/dexbox/pkg/logging"
)

// WebhookExecutor posts a webhook message. *discordgo.Session implements it.
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier mirrors notifications to a Discord channel webhook.
// Delivery is asynchronous so a slow webhook never stalls an edit.
type DiscordNotifier struct {
	executor  WebhookExecutor
	webhookID string
	token     string
	embeds    embed.EditorEmbedBuilder
	logger    logging.Logger
	wg        sync.WaitGroup
}

// NewDiscordNotifier creates a Discord notifier for one webhook.
func NewDiscordNotifier(executor WebhookExecutor, webhookID, token string) *DiscordNotifier {
	return &DiscordNotifier{
		executor:  executor,
		webhookID: webhookID,
		token:     token,
		embeds:    embed.CreateEditorEmbeds(),
		logger:    logging.GetGlobalLoggerFactory().CreateLogger("discord"),
	}
}

// NewDiscordWebhookNotifier creates a Discord notifier backed by a
// discordgo session. Webhooks need no bot token.
func NewDiscordWebhookNotifier(webhookID, token string) (*DiscordNotifier, error) {
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return NewDiscordNotifier(session, webhookID, token), nil
}

// Embed builds the embed for n.
func (d *DiscordNotifier) Embed(n Notification) *discordgo.MessageEmbed {
	switch n.Kind {
	case KindBoxAdded:
		return d.embeds.BoxAdded(n.Detail["no"], n.Detail["name"])
	case KindConflict:
		slot, _ := strconv.Atoi(n.Detail["slot"])
		return d.embeds.MoveConflict(n.Detail["move"], slot)
	case KindCatalogReloaded:
		entries, _ := strconv.Atoi(n.Detail["entries"])
		return d.embeds.CatalogReloaded(n.Detail["source"], entries)
	case KindCatalogFailed:
		return d.embeds.CatalogLoadFailed(n.Detail["source"], fmt.Errorf("%s", n.Detail["error"]))
	}
	return d.embeds.Info("dexbox", n.Message)
}

// Notify queues n for delivery and returns immediately.
func (d *DiscordNotifier) Notify(n Notification) error {
	params := &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{d.Embed(n)},
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if _, err := d.executor.WebhookExecute(d.webhookID, d.token, false, params); err != nil {
			d.logger.Error("Failed to deliver Discord notification", err, map[string]interface{}{
				"kind": string(n.Kind),
			})
		}
	}()
	return nil
}

// Wait blocks until queued deliveries finish.
func (d *DiscordNotifier) Wait() {
	d.wg.Wait()
}
