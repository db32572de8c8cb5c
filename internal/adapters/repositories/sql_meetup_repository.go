package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/platform/obs"
	"meetup-point-service/internal/ports"
)

const defaultListLimit = 20

// SQL-backed implementation of the MeetupRepository port. The full meetup is
// stored as a JSON payload; the indexed columns only serve lookups and ordering.
type SQLMeetupRepository struct {
	DB     *sql.DB
	Driver string
}

var _ ports.MeetupRepository = (*SQLMeetupRepository)(nil)

func NewSQLMeetupRepository(db *sql.DB, driver string) *SQLMeetupRepository {
	return &SQLMeetupRepository{DB: db, Driver: driver}
}

func (s *SQLMeetupRepository) Save(ctx context.Context, m *domain.Meetup) (err error) {
	defer obs.Time(ctx, "meetups.Save")(&err)

	if s.DB == nil {
		return errors.New("sql meetup repository: DB is nil")
	}
	if m == nil || m.ID == "" {
		return errors.New("save meetup: meetup id is required")
	}

	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("save meetup %s: encode: %w", m.ID, err)
	}

	query := rebind(s.Driver, `
	INSERT INTO meetups (
		meetup_id,
		session_id,
		keyword,
		created_at_ns,
		payload
	)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (meetup_id) DO UPDATE
	SET payload = EXCLUDED.payload;
	`)

	_, err = s.DB.ExecContext(ctx, query, m.ID, m.SessionID, m.Request.Keyword, m.CreatedAt.UnixNano(), string(payload))
	if err != nil {
		return fmt.Errorf("save meetup %s: %w", m.ID, err)
	}

	return nil
}

func (s *SQLMeetupRepository) Get(ctx context.Context, id string) (_ *domain.Meetup, err error) {
	defer obs.Time(ctx, "meetups.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("sql meetup repository: DB is nil")
	}

	var payload string
	err = s.DB.QueryRowContext(ctx, rebind(s.Driver, `SELECT payload FROM meetups WHERE meetup_id = ?;`), id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get meetup %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get meetup %s: %w", id, err)
	}

	return decodeMeetup(payload)
}

func (s *SQLMeetupRepository) List(ctx context.Context, limit int) (_ []*domain.Meetup, err error) {
	defer obs.Time(ctx, "meetups.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql meetup repository: DB is nil")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := rebind(s.Driver, `
	SELECT payload
	FROM meetups
	ORDER BY created_at_ns DESC, meetup_id DESC
	LIMIT ?;
	`)
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list meetups: query meetups table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Meetup, 0, limit)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("list meetups: scan row: %w", err)
		}
		m, err := decodeMeetup(payload)
		if err != nil {
			return nil, fmt.Errorf("list meetups: %w", err)
		}
		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list meetups: row iteration: %w", err)
	}

	return out, nil
}

func decodeMeetup(payload string) (*domain.Meetup, error) {
	var m domain.Meetup
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return nil, fmt.Errorf("decode meetup: %w", err)
	}
	return &m, nil
}
