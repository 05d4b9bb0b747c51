package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dining-calendar/internal/domain/dining"
)

const eventColumns = `
	id, title, date, end_datetime,
	location, category,
	participants, cost_total, rating, tags,
	notes, image_path`

type DiningRepo struct {
	db *sql.DB
}

func NewDiningRepo(db *sql.DB) *DiningRepo {
	return &DiningRepo{db: db}
}

func (r *DiningRepo) List(ctx context.Context) ([]dining.DiningEvent, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+eventColumns+`
		FROM dining_events
		ORDER BY date ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list dining events: %w", err)
	}
	defer rows.Close()

	out := make([]dining.DiningEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *DiningRepo) GetByID(ctx context.Context, id int64) (dining.DiningEvent, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+eventColumns+`
		FROM dining_events
		WHERE id = $1
	`, id)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return dining.DiningEvent{}, dining.ErrNotFound
	}
	if err != nil {
		return dining.DiningEvent{}, err
	}
	return e, nil
}

func (r *DiningRepo) Create(ctx context.Context, e dining.DiningEvent) (dining.DiningEvent, error) {
	participants, tags, err := encodeLists(e)
	if err != nil {
		return dining.DiningEvent{}, err
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO dining_events (
			title, date, end_datetime,
			location, category,
			participants, cost_total, rating, tags,
			notes, image_path
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`,
		e.Title,
		e.Date,
		toNullTime(e.EndDatetime),
		e.Location,
		toNullString(e.Category),
		participants,
		e.CostTotal,
		e.Rating,
		tags,
		e.Notes,
		toNullString(e.ImagePath),
	).Scan(&e.ID)
	if err != nil {
		return dining.DiningEvent{}, fmt.Errorf("insert dining event: %w", err)
	}
	return e, nil
}

// ReplaceFields bloquea la fila, aplica el update en dominio y la reescribe,
// todo dentro de una misma transacción.
func (r *DiningRepo) ReplaceFields(ctx context.Context, id int64, u dining.Update) (dining.DiningEvent, error) {
	var out dining.DiningEvent

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		current, err := scanEvent(tx.QueryRowContext(ctx, `SELECT`+eventColumns+`
			FROM dining_events
			WHERE id = $1
			FOR UPDATE
		`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return dining.ErrNotFound
		}
		if err != nil {
			return err
		}

		next, err := u.ApplyTo(current)
		if err != nil {
			return err
		}

		participants, tags, err := encodeLists(next)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE dining_events
			SET
				title = $2,
				date = $3,
				end_datetime = $4,
				location = $5,
				category = $6,
				participants = $7,
				cost_total = $8,
				rating = $9,
				tags = $10,
				notes = $11,
				image_path = $12
			WHERE id = $1
		`,
			id,
			next.Title,
			next.Date,
			toNullTime(next.EndDatetime),
			next.Location,
			toNullString(next.Category),
			participants,
			next.CostTotal,
			next.Rating,
			tags,
			next.Notes,
			toNullString(next.ImagePath),
		)
		if err != nil {
			return fmt.Errorf("update dining event: %w", err)
		}

		out = next
		return nil
	})
	if err != nil {
		return dining.DiningEvent{}, err
	}
	return out, nil
}

func (r *DiningRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dining_events WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete dining event: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (dining.DiningEvent, error) {
	var (
		e            dining.DiningEvent
		end          sql.NullTime
		category     sql.NullString
		imagePath    sql.NullString
		participants []byte
		tags         []byte
	)

	if err := s.Scan(
		&e.ID,
		&e.Title,
		&e.Date,
		&end,
		&e.Location,
		&category,
		&participants,
		&e.CostTotal,
		&e.Rating,
		&tags,
		&e.Notes,
		&imagePath,
	); err != nil {
		return dining.DiningEvent{}, err
	}

	e.EndDatetime = fromNullTime(end)
	e.Category = fromNullString(category)
	e.ImagePath = fromNullString(imagePath)

	var err error
	if e.Participants, err = decodeList(participants); err != nil {
		return dining.DiningEvent{}, fmt.Errorf("decode participants of event %d: %w", e.ID, err)
	}
	if e.Tags, err = decodeList(tags); err != nil {
		return dining.DiningEvent{}, fmt.Errorf("decode tags of event %d: %w", e.ID, err)
	}

	e.NormalizeCollections()
	return e, nil
}

func encodeLists(e dining.DiningEvent) (string, string, error) {
	e.NormalizeCollections()
	p, err := json.Marshal(e.Participants)
	if err != nil {
		return "", "", fmt.Errorf("encode participants: %w", err)
	}
	t, err := json.Marshal(e.Tags)
	if err != nil {
		return "", "", fmt.Errorf("encode tags: %w", err)
	}
	return string(p), string(t), nil
}

// decodeList tolera NULL (filas creadas antes de que las listas fueran obligatorias).
func decodeList(raw []byte) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
