package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eamon-archive/eamon-import/internal/adventure"
)

// HintRepository persists the shared EDX hint pool and the per-adventure
// index ranges that claim slices of it.
type HintRepository struct {
	db *pgxpool.Pool
}

// NewHintRepository creates a HintRepository backed by the given pool.
func NewHintRepository(db *pgxpool.Pool) *HintRepository {
	return &HintRepository{db: db}
}

// Save upserts a hint and its answers, keyed by (edx, index). Answers are
// reconciled the same way room exits are: upsert each, delete indexes no
// longer present.
func (r *HintRepository) Save(ctx context.Context, h *adventure.Hint) error {
	var adventureID *int64
	if h.AdventureID != 0 {
		adventureID = &h.AdventureID
	}
	var hintPK int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO hints (edx, index, question, adventure_id)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (edx, index) DO UPDATE SET
			question = EXCLUDED.question,
			adventure_id = COALESCE(EXCLUDED.adventure_id, hints.adventure_id)
		RETURNING id`,
		h.EDX, h.Index, h.Question, adventureID,
	).Scan(&hintPK)
	if err != nil {
		return fmt.Errorf("upserting hint: %w", err)
	}

	indexes := make([]int, 0, len(h.Answers))
	for _, a := range h.Answers {
		indexes = append(indexes, a.Index)
	}
	if _, err := r.db.Exec(ctx, `
		DELETE FROM hint_answers WHERE hint_id = $1 AND index != ALL($2::int[])`,
		hintPK, indexes,
	); err != nil {
		return fmt.Errorf("pruning hint answers: %w", err)
	}
	for _, a := range h.Answers {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO hint_answers (hint_id, index, answer, spoiler)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (hint_id, index) DO UPDATE SET
				answer = EXCLUDED.answer,
				spoiler = EXCLUDED.spoiler`,
			hintPK, a.Index, a.Answer, a.Spoiler,
		); err != nil {
			return fmt.Errorf("upserting hint answer %d: %w", a.Index, err)
		}
	}
	return nil
}

// AssignRange claims the hint index range [first, last] of an EDX volume for
// an adventure and records the range on the adventure row.
func (r *HintRepository) AssignRange(ctx context.Context, edx int, first, last int, adventureID int64) error {
	if _, err := r.db.Exec(ctx, `
		UPDATE hints SET adventure_id = $1
		WHERE edx = $2 AND index BETWEEN $3 AND $4`,
		adventureID, edx, first, last,
	); err != nil {
		return fmt.Errorf("assigning hint range: %w", err)
	}
	if _, err := r.db.Exec(ctx, `
		UPDATE adventures SET first_hint = $1, last_hint = $2, updated_at = NOW()
		WHERE id = $3`,
		first, last, adventureID,
	); err != nil {
		return fmt.Errorf("recording hint range: %w", err)
	}
	return nil
}

// ByEDX returns the hints of one EDX volume in index order, answers attached.
func (r *HintRepository) ByEDX(ctx context.Context, edx int) ([]*adventure.Hint, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, edx, index, question, COALESCE(adventure_id, 0)
		FROM hints WHERE edx = $1 ORDER BY index`,
		edx)
	if err != nil {
		return nil, fmt.Errorf("querying hints: %w", err)
	}
	defer rows.Close()

	var result []*adventure.Hint
	byPK := make(map[int64]*adventure.Hint)
	for rows.Next() {
		h := &adventure.Hint{}
		if err := rows.Scan(&h.ID, &h.EDX, &h.Index, &h.Question, &h.AdventureID); err != nil {
			return nil, fmt.Errorf("scanning hint: %w", err)
		}
		byPK[h.ID] = h
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hints: %w", err)
	}

	answerRows, err := r.db.Query(ctx, `
		SELECT a.hint_id, a.index, a.answer, a.spoiler
		FROM hint_answers a
		JOIN hints h ON h.id = a.hint_id
		WHERE h.edx = $1
		ORDER BY a.hint_id, a.index`,
		edx)
	if err != nil {
		return nil, fmt.Errorf("querying hint answers: %w", err)
	}
	defer answerRows.Close()

	for answerRows.Next() {
		var pk int64
		var a adventure.HintAnswer
		if err := answerRows.Scan(&pk, &a.Index, &a.Answer, &a.Spoiler); err != nil {
			return nil, fmt.Errorf("scanning hint answer: %w", err)
		}
		if h, ok := byPK[pk]; ok {
			h.Answers = append(h.Answers, a)
		}
	}
	if err := answerRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hint answers: %w", err)
	}
	return result, nil
}
