// Package catalog keeps the set of bots the orchestration layer may
// instantiate, loaded from the configuration store.
package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/edgard/botgames/internal/botdata"
	"github.com/edgard/botgames/internal/logger"
)

// ErrInvalidBot is wrapped by validation failures of a stored bot.
var ErrInvalidBot = errors.New("invalid bot configuration")

// Source lists stored bot configurations.
type Source interface {
	ListBots(ctx context.Context) ([]*botdata.BotConfig, error)
}

// LoadResult counts what happened to the rows read by Registry.Load.
type LoadResult struct {
	Loaded     int
	Disabled   int
	Invalid    int
	Duplicates int
}

// botRules carries the fields of a BotConfig checked before it is loaded.
type botRules struct {
	CommandName  string              `validate:"required,command_token"`
	DisplayName  string              `validate:"required"`
	ChannelType  botdata.ChannelType `validate:"channel_type"`
	EmoticonKeys []string            `validate:"dive,required"`
}

// Registry holds the enabled, valid bots keyed by command name. Command names
// are unique within a Registry, compared case-insensitively.
type Registry struct {
	source   Source
	validate *validator.Validate
	logger   *slog.Logger

	mu        sync.RWMutex
	ordered   []*botdata.BotConfig
	byCommand map[string]*botdata.BotConfig
	byID      map[int64]*botdata.BotConfig
}

// NewRegistry creates an empty Registry reading from source.
func NewRegistry(source Source, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	v := validator.New()
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("command_token", validateCommandToken)
	_ = v.RegisterValidation("channel_type", validateChannelType)

	return &Registry{
		source:    source,
		validate:  v,
		logger:    log.With("component", "catalog"),
		byCommand: make(map[string]*botdata.BotConfig),
		byID:      make(map[int64]*botdata.BotConfig),
	}
}

// Load replaces the registry contents with the current rows of the source.
// Disabled and invalid bots are skipped. When several bots share a command
// name the one with the lowest ID wins. On error the previous contents are
// kept.
func (r *Registry) Load(ctx context.Context) (LoadResult, error) {
	var result LoadResult

	bots, err := r.source.ListBots(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load bot catalog: %w", err)
	}

	bots = slices.Clone(bots)
	slices.SortStableFunc(bots, func(a, b *botdata.BotConfig) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	ordered := make([]*botdata.BotConfig, 0, len(bots))
	byCommand := make(map[string]*botdata.BotConfig, len(bots))
	byID := make(map[int64]*botdata.BotConfig, len(bots))

	for _, bot := range bots {
		log := logger.WithBot(r.logger, bot)

		if !bot.Enabled() {
			log.DebugContext(ctx, "Skipping disabled bot")
			result.Disabled++
			continue
		}

		if err := r.Validate(bot); err != nil {
			log.WarnContext(ctx, "Skipping invalid bot", "error", err)
			result.Invalid++
			continue
		}

		key := commandKey(bot.CommandName())
		if existing, ok := byCommand[key]; ok {
			log.WarnContext(ctx, "Skipping bot with duplicate command name", "kept_bot_id", existing.ID())
			result.Duplicates++
			continue
		}

		loaded := bot.Clone()
		ordered = append(ordered, loaded)
		byCommand[key] = loaded
		byID[loaded.ID()] = loaded
	}
	result.Loaded = len(ordered)

	r.mu.Lock()
	r.ordered = ordered
	r.byCommand = byCommand
	r.byID = byID
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Bot catalog loaded",
		"loaded", result.Loaded,
		"disabled", result.Disabled,
		"invalid", result.Invalid,
		"duplicates", result.Duplicates)
	return result, nil
}

// Validate checks that bot can be addressed and placed in a channel.
func (r *Registry) Validate(bot *botdata.BotConfig) error {
	rules := botRules{
		CommandName:  bot.CommandName(),
		DisplayName:  bot.DisplayName(),
		ChannelType:  bot.ChannelType(),
		EmoticonKeys: bot.EmoticonKeys(),
	}
	if err := r.validate.Struct(rules); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBot, err)
	}
	return nil
}

// Get returns a copy of the bot addressed by command.
func (r *Registry) Get(command string) (*botdata.BotConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bot, ok := r.byCommand[commandKey(command)]
	if !ok {
		return nil, false
	}
	return bot.Clone(), true
}

// ByID returns a copy of the bot with the given ID.
func (r *Registry) ByID(id int64) (*botdata.BotConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bot, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return bot.Clone(), true
}

// List returns copies of all loaded bots ordered by ID.
func (r *Registry) List() []*botdata.BotConfig {
	return r.filter(func(*botdata.BotConfig) bool { return true })
}

// ForChannel returns the bots that may be loaded into channels of type t.
func (r *Registry) ForChannel(t botdata.ChannelType) []*botdata.BotConfig {
	return r.filter(func(b *botdata.BotConfig) bool { return b.ChannelType() == t })
}

// WithEmoticonKey returns the bots triggered by token.
func (r *Registry) WithEmoticonKey(token string) []*botdata.BotConfig {
	return r.filter(func(b *botdata.BotConfig) bool { return b.HasEmoticonKey(token) })
}

// Len returns the number of loaded bots.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}

func (r *Registry) filter(keep func(*botdata.BotConfig) bool) []*botdata.BotConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bots []*botdata.BotConfig
	for _, bot := range r.ordered {
		if keep(bot) {
			bots = append(bots, bot.Clone())
		}
	}
	return bots
}

func commandKey(command string) string {
	return strings.ToLower(strings.TrimSpace(command))
}

func validateCommandToken(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

func validateChannelType(fl validator.FieldLevel) bool {
	_, ok := botdata.ChannelTypeFromValue(int(fl.Field().Int()))
	return ok
}
