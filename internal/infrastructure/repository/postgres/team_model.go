package postgres

import "time"

type teamTableModel struct {
	ID        int64      `db:"id"`
	TeamID    int64      `db:"team_id"`
	Name      string     `db:"name"`
	Country   string     `db:"country"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type aliasTableModel struct {
	ID        int64      `db:"id"`
	Alias     string     `db:"alias"`
	Canonical string     `db:"canonical"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type markerTableModel struct {
	ID      int64  `db:"id"`
	Country string `db:"country"`
	Marker  string `db:"marker"`
}

type conflictTableModel struct {
	ID      int64  `db:"id"`
	Stem    string `db:"stem"`
	TeamID  int64  `db:"team_id"`
	Name    string `db:"name"`
	Country string `db:"country"`
}
