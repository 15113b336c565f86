package embed

// DefaultEmbedFactory implements EmbedFactory interface
type DefaultEmbedFactory struct{}

// NewEmbedFactory creates a new DefaultEmbedFactory instance
func NewEmbedFactory() EmbedFactory {
	return &DefaultEmbedFactory{}
}

// CreateEditorEmbedBuilder creates an EditorEmbedBuilder instance
func (f *DefaultEmbedFactory) CreateEditorEmbedBuilder() EditorEmbedBuilder {
	return NewEditorEmbedBuilder()
}

// Global factory instance for convenience
var globalFactory EmbedFactory = NewEmbedFactory()

// CreateEditorEmbeds creates an EditorEmbedBuilder using the global factory
func CreateEditorEmbeds() EditorEmbedBuilder {
	return globalFactory.CreateEditorEmbedBuilder()
}
