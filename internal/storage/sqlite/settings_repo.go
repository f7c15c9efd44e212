package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"uptimebar/internal/domain"
)

// settingsRowID pins the settings table to a single row.
const settingsRowID = 1

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) domain.SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Load(ctx context.Context) (domain.DisplaySettings, bool, error) {
	query := `SELECT show_system, show_process, compact, compact_interval_seconds,
		display_format, poll_interval_seconds, debug, debug_throttle_seconds
		FROM settings WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, settingsRowID)

	var s domain.DisplaySettings
	var displayFormat string
	err := row.Scan(
		&s.ShowSystem, &s.ShowProcess, &s.Compact, &s.CompactIntervalSeconds,
		&displayFormat, &s.PollIntervalSeconds, &s.Debug, &s.DebugThrottleSeconds,
	)
	if err == sql.ErrNoRows {
		return domain.DisplaySettings{}, false, nil
	}
	if err != nil {
		return domain.DisplaySettings{}, false, fmt.Errorf("failed to load settings: %w", err)
	}

	s.DisplayFormat = domain.DisplayFormat(displayFormat)
	return s, true, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s domain.DisplaySettings) error {
	query := `INSERT INTO settings (id, show_system, show_process, compact, compact_interval_seconds,
		display_format, poll_interval_seconds, debug, debug_throttle_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			show_system = excluded.show_system,
			show_process = excluded.show_process,
			compact = excluded.compact,
			compact_interval_seconds = excluded.compact_interval_seconds,
			display_format = excluded.display_format,
			poll_interval_seconds = excluded.poll_interval_seconds,
			debug = excluded.debug,
			debug_throttle_seconds = excluded.debug_throttle_seconds`

	_, err := r.db.ExecContext(ctx, query,
		settingsRowID, s.ShowSystem, s.ShowProcess, s.Compact, s.CompactIntervalSeconds,
		string(s.DisplayFormat), s.PollIntervalSeconds, s.Debug, s.DebugThrottleSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
