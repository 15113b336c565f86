package embed

import (
	"github.com/bwmarrin/discordgo"
)

// EmbedBuilder provides basic embed creation functionality
type EmbedBuilder interface {
	Success(title, description string) *discordgo.MessageEmbed
	Error(title, description string) *discordgo.MessageEmbed
	Info(title, description string) *discordgo.MessageEmbed
	Warning(title, description string) *discordgo.MessageEmbed
}

// EditorEmbedBuilder provides editor-specific embed creation functionality
type EditorEmbedBuilder interface {
	EmbedBuilder
	BoxAdded(no, name string) *discordgo.MessageEmbed
	MoveConflict(move string, slot int) *discordgo.MessageEmbed
	CatalogReloaded(source string, entries int) *discordgo.MessageEmbed
	CatalogLoadFailed(source string, err error) *discordgo.MessageEmbed
}

// EmbedFactory creates embed builders
type EmbedFactory interface {
	CreateEditorEmbedBuilder() EditorEmbedBuilder
}
