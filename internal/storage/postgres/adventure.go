package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eamon-archive/eamon-import/internal/adventure"
)

// ErrAdventureNotFound is returned when an adventure lookup yields no results.
var ErrAdventureNotFound = errors.New("adventure not found")

// AdventureRepository provides adventure persistence operations.
type AdventureRepository struct {
	db *pgxpool.Pool
}

// NewAdventureRepository creates an AdventureRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewAdventureRepository(db *pgxpool.Pool) *AdventureRepository {
	return &AdventureRepository{db: db}
}

const adventureColumns = `id, name, slug, description, edx,
	room_offset, artifact_offset, effect_offset, monster_offset,
	program_file, first_hint, last_hint, dead_body_id`

func scanAdventure(row pgx.Row) (*adventure.Adventure, error) {
	var a adventure.Adventure
	err := row.Scan(
		&a.ID, &a.Name, &a.Slug, &a.Description, &a.EDX,
		&a.RoomOffset, &a.ArtifactOffset, &a.EffectOffset, &a.MonsterOffset,
		&a.ProgramFile, &a.FirstHint, &a.LastHint, &a.DeadBodyID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdventureNotFound
		}
		return nil, fmt.Errorf("scanning adventure row: %w", err)
	}
	return &a, nil
}

// Create inserts a new adventure and returns it with its ID set.
//
// Precondition: a.Slug must be unique and non-empty.
func (r *AdventureRepository) Create(ctx context.Context, a *adventure.Adventure) (*adventure.Adventure, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO adventures
			(name, slug, description, edx,
			 room_offset, artifact_offset, effect_offset, monster_offset,
			 program_file, first_hint, last_hint, dead_body_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id`,
		a.Name, a.Slug, a.Description, a.EDX,
		a.RoomOffset, a.ArtifactOffset, a.EffectOffset, a.MonsterOffset,
		a.ProgramFile, a.FirstHint, a.LastHint, a.DeadBodyID,
	).Scan(&a.ID)
	if err != nil {
		return nil, fmt.Errorf("inserting adventure: %w", err)
	}
	return a, nil
}

// GetByID retrieves an adventure by its primary key.
//
// Postcondition: Returns the Adventure or ErrAdventureNotFound.
func (r *AdventureRepository) GetByID(ctx context.Context, id int64) (*adventure.Adventure, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+adventureColumns+` FROM adventures WHERE id = $1`, id)
	return scanAdventure(row)
}

// ListByEDX returns all adventures distributed in the given EDX file set,
// ordered by room offset so the list lines up with the combined source files.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *AdventureRepository) ListByEDX(ctx context.Context, edx int) ([]*adventure.Adventure, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+adventureColumns+` FROM adventures WHERE edx = $1 ORDER BY room_offset ASC`, edx)
	if err != nil {
		return nil, fmt.Errorf("listing adventures: %w", err)
	}
	defer rows.Close()

	advs := make([]*adventure.Adventure, 0)
	for rows.Next() {
		a, err := scanAdventure(rows)
		if err != nil {
			return nil, err
		}
		advs = append(advs, a)
	}
	return advs, rows.Err()
}
