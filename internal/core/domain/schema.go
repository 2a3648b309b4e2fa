package domain

type OptionChoice struct {
	Name  string
	Value string
}

type OptionSchema struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool
	Choices     []OptionChoice
	// TextChannelsOnly restricts channel options to text-capable channels.
	TextChannelsOnly bool
}

// CommandSchema declares a slash command. The dispatcher only reads Name;
// the rest is published to the platform's command catalog.
type CommandSchema struct {
	Name        string
	Description string
	AdminOnly   bool
	Options     []OptionSchema
}
