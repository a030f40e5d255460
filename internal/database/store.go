package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/botgames/internal/botdata"
)

// Store defines the bot catalog operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveBot inserts bot, or replaces the stored row with the same ID.
	// A bot with ID 0 is inserted and receives the generated ID. Bots whose
	// list fields would not read back unchanged are rejected with an error
	// wrapping botdata.ErrNotStorable.
	SaveBot(ctx context.Context, bot *botdata.BotConfig) error

	// FindBotByCommand retrieves the lowest-ID bot whose command name matches
	// command, ignoring case. Returns nil, nil if not found.
	FindBotByCommand(ctx context.Context, command string) (*botdata.BotConfig, error)

	// GetBot retrieves a bot by ID. Returns nil, nil if not found.
	GetBot(ctx context.Context, id int64) (*botdata.BotConfig, error)

	// ListBots retrieves every stored bot ordered by ID, enabled or not.
	ListBots(ctx context.Context) ([]*botdata.BotConfig, error)

	// DeleteBot removes a bot by ID. Deleting a missing bot is not an error.
	DeleteBot(ctx context.Context, id int64) error

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// botRow is the stored form of a BotConfig, with the list fields joined.
type botRow struct {
	ID                 int64  `db:"ID"`
	Game               string `db:"Game"`
	DisplayName        string `db:"DisplayName"`
	CommandName        string `db:"CommandName"`
	Description        string `db:"Description"`
	ExecutableFileName string `db:"ExecutableFileName"`
	LibraryPaths       string `db:"LibraryPaths"`
	Type               int64  `db:"Type"`
	Status             bool   `db:"Status"`
	EmoticonKeyList    string `db:"EmoticonKeyList"`
}

func newBotRow(bot *botdata.BotConfig) botRow {
	return botRow{
		ID:                 bot.ID(),
		Game:               bot.Game(),
		DisplayName:        bot.DisplayName(),
		CommandName:        bot.CommandName(),
		Description:        bot.Description(),
		ExecutableFileName: bot.ExecutableFileName(),
		LibraryPaths:       botdata.JoinLibraryPaths(bot.LibraryPaths()),
		Type:               int64(bot.ChannelType()),
		Status:             bot.Enabled(),
		EmoticonKeyList:    botdata.JoinEmoticonKeys(bot.EmoticonKeys()),
	}
}

const selectBots = `SELECT ID, Game, DisplayName, CommandName, Description, ExecutableFileName,
       LibraryPaths, Type, Status, EmoticonKeyList
  FROM bots`

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store backed by a connected sqlx.DB.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) SaveBot(ctx context.Context, bot *botdata.BotConfig) error {
	if bot == nil {
		return errors.New("cannot save nil bot")
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := botdata.CheckStorable(bot); err != nil {
		return fmt.Errorf("failed to save bot %q: %w", bot.CommandName(), err)
	}

	row := newBotRow(bot)

	if row.ID == 0 {
		query := `
			INSERT INTO bots (Game, DisplayName, CommandName, Description, ExecutableFileName,
			                  LibraryPaths, Type, Status, EmoticonKeyList)
			VALUES (:Game, :DisplayName, :CommandName, :Description, :ExecutableFileName,
			        :LibraryPaths, :Type, :Status, :EmoticonKeyList);`

		result, err := s.db.NamedExecContext(ctx, query, row)
		if err != nil {
			s.logger.ErrorContext(ctx, "Error inserting bot", "command_name", row.CommandName, "error", err)
			return fmt.Errorf("failed to insert bot %q: %w", row.CommandName, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get id of inserted bot %q: %w", row.CommandName, err)
		}
		bot.SetID(id)
		s.logger.DebugContext(ctx, "Inserted bot", "bot_id", id, "command_name", row.CommandName)
		return nil
	}

	query := `
		INSERT INTO bots (ID, Game, DisplayName, CommandName, Description, ExecutableFileName,
		                  LibraryPaths, Type, Status, EmoticonKeyList)
		VALUES (:ID, :Game, :DisplayName, :CommandName, :Description, :ExecutableFileName,
		        :LibraryPaths, :Type, :Status, :EmoticonKeyList)
		ON CONFLICT (ID) DO UPDATE SET
			Game = excluded.Game,
			DisplayName = excluded.DisplayName,
			CommandName = excluded.CommandName,
			Description = excluded.Description,
			ExecutableFileName = excluded.ExecutableFileName,
			LibraryPaths = excluded.LibraryPaths,
			Type = excluded.Type,
			Status = excluded.Status,
			EmoticonKeyList = excluded.EmoticonKeyList;`

	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		s.logger.ErrorContext(ctx, "Error saving bot", "bot_id", row.ID, "error", err)
		return fmt.Errorf("failed to save bot %d: %w", row.ID, err)
	}

	s.logger.DebugContext(ctx, "Saved bot", "bot_id", row.ID, "command_name", row.CommandName)
	return nil
}

func (s *sqlxStore) GetBot(ctx context.Context, id int64) (*botdata.BotConfig, error) {
	bots, err := s.queryBots(ctx, selectBots+" WHERE ID = ?", id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting bot", "bot_id", id, "error", err)
		return nil, fmt.Errorf("failed to get bot %d: %w", id, err)
	}
	if len(bots) == 0 {
		s.logger.DebugContext(ctx, "No bot found", "bot_id", id)
		return nil, nil
	}
	return bots[0], nil
}

func (s *sqlxStore) FindBotByCommand(ctx context.Context, command string) (*botdata.BotConfig, error) {
	bots, err := s.queryBots(ctx, selectBots+" WHERE CommandName = ? COLLATE NOCASE ORDER BY ID LIMIT 1", command)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error finding bot", "command_name", command, "error", err)
		return nil, fmt.Errorf("failed to find bot %q: %w", command, err)
	}
	if len(bots) == 0 {
		return nil, nil
	}
	return bots[0], nil
}

func (s *sqlxStore) ListBots(ctx context.Context) ([]*botdata.BotConfig, error) {
	bots, err := s.queryBots(ctx, selectBots+" ORDER BY ID")
	if err != nil {
		s.logger.ErrorContext(ctx, "Error listing bots", "error", err)
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}

	s.logger.DebugContext(ctx, "Listed bots", "count", len(bots))
	return bots, nil
}

func (s *sqlxStore) DeleteBot(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM bots WHERE ID = ?", id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting bot", "bot_id", id, "error", err)
		return fmt.Errorf("failed to delete bot %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		s.logger.DebugContext(ctx, "Deleted bot, rows affected unavailable", "bot_id", id, "error", err)
		return nil
	}
	s.logger.DebugContext(ctx, "Deleted bot", "bot_id", id, "rows_affected", rows)
	return nil
}

// RunSQLMaintenance runs VACUUM and refreshes the query planner statistics.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance")

	// VACUUM must run outside a transaction in SQLite
	for _, stmt := range []string{"VACUUM;", "ANALYZE;"} {
		_, err := s.db.ExecContext(ctx, stmt)
		switch {
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
			s.logger.WarnContext(ctx, "Database maintenance timed out or was cancelled", "statement", stmt, "error", err)
			return fmt.Errorf("database maintenance (%s) timed out: %w", stmt, err)
		case err != nil:
			s.logger.ErrorContext(ctx, "Database maintenance failed", "statement", stmt, "error", err)
			return fmt.Errorf("failed to execute %s: %w", stmt, err)
		}
	}

	s.logger.InfoContext(ctx, "Database maintenance completed successfully")
	return nil
}

// queryBots runs query and builds one BotConfig per returned row.
func (s *sqlxStore) queryBots(ctx context.Context, query string, args ...any) ([]*botdata.BotConfig, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bots []*botdata.BotConfig
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		bot, err := botdata.FromRow(MapRow(row))
		if err != nil {
			return nil, err
		}
		bots = append(bots, bot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bots, nil
}
