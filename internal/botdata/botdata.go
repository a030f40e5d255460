// Package botdata defines the configuration record of a game bot and the
// enumerations used to classify bots, notify them of room membership and name
// the stages of a hosted game.
package botdata

import "slices"

// Column names of a bot configuration row.
const (
	ColumnID                 = "ID"
	ColumnGame               = "Game"
	ColumnDisplayName        = "DisplayName"
	ColumnCommandName        = "CommandName"
	ColumnDescription        = "Description"
	ColumnExecutableFileName = "ExecutableFileName"
	ColumnLibraryPaths       = "LibraryPaths"
	ColumnType               = "Type"
	ColumnStatus             = "Status"
	ColumnEmoticonKeyList    = "EmoticonKeyList"
)

// Row gives typed access to the named columns of one stored record.
type Row interface {
	Int64(column string) (int64, error)
	String(column string) (string, error)
	Bool(column string) (bool, error)
}

// BotConfig describes a configured bot: who it is, how it is addressed, where
// its program lives and which messages trigger it.
//
// A BotConfig is not safe for concurrent mutation. Callers that share one
// instance should treat it as read-only or hand out copies from Clone.
type BotConfig struct {
	id                 int64
	game               string
	displayName        string
	commandName        string
	description        string
	executableFileName string
	libraryPaths       []LibraryPath
	channelType        ChannelType
	enabled            bool
	emoticonKeys       []string
}

// New returns an empty BotConfig for later population.
func New() *BotConfig {
	return &BotConfig{}
}

// FromRow builds a BotConfig from a stored row. An error from the row is
// returned as is and no record is produced.
func FromRow(row Row) (*BotConfig, error) {
	id, err := row.Int64(ColumnID)
	if err != nil {
		return nil, err
	}
	game, err := row.String(ColumnGame)
	if err != nil {
		return nil, err
	}
	displayName, err := row.String(ColumnDisplayName)
	if err != nil {
		return nil, err
	}
	commandName, err := row.String(ColumnCommandName)
	if err != nil {
		return nil, err
	}
	description, err := row.String(ColumnDescription)
	if err != nil {
		return nil, err
	}
	executable, err := row.String(ColumnExecutableFileName)
	if err != nil {
		return nil, err
	}
	libraryPaths, err := row.String(ColumnLibraryPaths)
	if err != nil {
		return nil, err
	}
	channelType, err := row.Int64(ColumnType)
	if err != nil {
		return nil, err
	}
	status, err := row.Bool(ColumnStatus)
	if err != nil {
		return nil, err
	}
	emoticonKeys, err := row.String(ColumnEmoticonKeyList)
	if err != nil {
		return nil, err
	}

	return &BotConfig{
		id:                 id,
		game:               game,
		displayName:        displayName,
		commandName:        commandName,
		description:        description,
		executableFileName: executable,
		libraryPaths:       ParseLibraryPaths(libraryPaths),
		channelType:        ChannelType(channelType),
		enabled:            status,
		emoticonKeys:       ParseEmoticonKeys(emoticonKeys),
	}, nil
}

// ID is the catalog key of the bot. Zero means not yet stored.
func (b *BotConfig) ID() int64      { return b.id }
func (b *BotConfig) SetID(id int64) { b.id = id }

// Game is the label of the game as listed to users, e.g. "Werewolf".
func (b *BotConfig) Game() string        { return b.game }
func (b *BotConfig) SetGame(game string) { b.game = game }

// DisplayName is the name the bot speaks under in rooms.
func (b *BotConfig) DisplayName() string        { return b.displayName }
func (b *BotConfig) SetDisplayName(name string) { b.displayName = name }

// CommandName is the token users address the bot with, as in "/bot <command> join".
func (b *BotConfig) CommandName() string        { return b.commandName }
func (b *BotConfig) SetCommandName(name string) { b.commandName = name }

// Description is free text shown in bot listings.
func (b *BotConfig) Description() string               { return b.description }
func (b *BotConfig) SetDescription(description string) { b.description = description }

// ExecutableFileName names the program or entry point that runs the bot.
func (b *BotConfig) ExecutableFileName() string        { return b.executableFileName }
func (b *BotConfig) SetExecutableFileName(name string) { b.executableFileName = name }

// LibraryPaths returns the ordered search path for the bot's supporting code.
func (b *BotConfig) LibraryPaths() []LibraryPath { return b.libraryPaths }
func (b *BotConfig) SetLibraryPaths(paths []LibraryPath) {
	b.libraryPaths = paths
}

// ChannelType is stored as read. Use ChannelType.Valid to detect unknown codes.
func (b *BotConfig) ChannelType() ChannelType     { return b.channelType }
func (b *BotConfig) SetChannelType(t ChannelType) { b.channelType = t }

// Enabled gates instantiation: a disabled bot must not be started.
func (b *BotConfig) Enabled() bool           { return b.enabled }
func (b *BotConfig) SetEnabled(enabled bool) { b.enabled = enabled }

// EmoticonKeys returns the ordered trigger tokens, e.g. "!start".
func (b *BotConfig) EmoticonKeys() []string { return b.emoticonKeys }
func (b *BotConfig) SetEmoticonKeys(keys []string) {
	b.emoticonKeys = keys
}

// HasEmoticonKey reports whether token is one of the bot's trigger tokens.
func (b *BotConfig) HasEmoticonKey(token string) bool {
	return slices.Contains(b.emoticonKeys, token)
}

// Clone returns a deep copy of b.
func (b *BotConfig) Clone() *BotConfig {
	c := *b
	c.libraryPaths = slices.Clone(b.libraryPaths)
	c.emoticonKeys = slices.Clone(b.emoticonKeys)
	return &c
}
