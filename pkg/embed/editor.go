package embed

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// EditorEmbeds implements EditorEmbedBuilder
type EditorEmbeds struct {
	*BasicEmbeds
}

// NewEditorEmbedBuilder creates a new EditorEmbeds instance
func NewEditorEmbedBuilder() EditorEmbedBuilder {
	return &EditorEmbeds{BasicEmbeds: NewBasicEmbedBuilder()}
}

// BoxAdded creates an embed for a record saved as a new box entry
func (e *EditorEmbeds) BoxAdded(no, name string) *discordgo.MessageEmbed {
	embed := e.Success("📦 已成功添加到箱子", fmt.Sprintf("**#%s** %s", no, name))
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "No", Value: no, Inline: true},
		{Name: "Name", Value: name, Inline: true},
	}
	return embed
}

// MoveConflict creates an embed for a rejected duplicate move selection
func (e *EditorEmbeds) MoveConflict(move string, slot int) *discordgo.MessageEmbed {
	embed := e.Warning("⚠️ 不能选择相同技能！", fmt.Sprintf("**%s** is already selected in another slot", move))
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Slot", Value: fmt.Sprintf("%d", slot+1), Inline: true},
	}
	return embed
}

// CatalogReloaded creates an embed for a completed catalogue load
func (e *EditorEmbeds) CatalogReloaded(source string, entries int) *discordgo.MessageEmbed {
	return e.Info("🔄 Catalogue Reloaded", fmt.Sprintf("Loaded **%d** entries from %s", entries, source))
}

// CatalogLoadFailed creates an embed for a failed catalogue load
func (e *EditorEmbeds) CatalogLoadFailed(source string, err error) *discordgo.MessageEmbed {
	embed := e.Error("❌ Catalogue Load Failed", fmt.Sprintf("Source: %s", source))
	embed.Footer = &discordgo.MessageEmbedFooter{Text: err.Error()}
	return embed
}
