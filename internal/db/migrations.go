package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS pillars (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS activities (
			id        TEXT PRIMARY KEY,
			pillar_id TEXT NOT NULL REFERENCES pillars(id) ON DELETE CASCADE,
			name      TEXT NOT NULL,
			color     TEXT NOT NULL,
			position  INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS weeks (
			id         TEXT PRIMARY KEY,
			start_date DATE NOT NULL,
			position   INTEGER NOT NULL
		);

		-- no foreign key on activity_id: slots keep ids of deleted activities
		CREATE TABLE IF NOT EXISTS slots (
			week_id     TEXT NOT NULL REFERENCES weeks(id) ON DELETE CASCADE,
			day         TEXT NOT NULL CHECK(day IN ('Monday', 'Tuesday', 'Wednesday', 'Thursday', 'Friday', 'Saturday', 'Sunday')),
			slot_time   TEXT NOT NULL,
			activity_id TEXT NOT NULL DEFAULT '',
			end_time    TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (week_id, day, slot_time)
		);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_activities_pillar ON activities(pillar_id);
		CREATE INDEX IF NOT EXISTS idx_slots_activity ON slots(activity_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
