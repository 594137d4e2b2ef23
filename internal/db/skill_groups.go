package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/skillboard/internal/types"
)

// -----------------------------------------------------------------------------
// Dataset Methods
// -----------------------------------------------------------------------------

// ListSkillGroups loads the stored dataset for a character in import order.
// A character with nothing stored gets an empty dataset.
func (db *DB) ListSkillGroups(ctx context.Context, characterID int64) (types.Dataset, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT group_id, position, name, total_group_sp
		 FROM skill_groups WHERE character_id = $1
		 ORDER BY position`,
		characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skill groups: %w", err)
	}
	groups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (groupRecord, error) {
		var g groupRecord
		err := row.Scan(&g.GroupID, &g.Position, &g.Name, &g.TotalGroupSP)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan skill groups: %w", err)
	}

	rows, err = db.pool.Query(ctx,
		`SELECT s.group_id, s.position, s.name, s.rank, s.trained_skill_level, s.skillpoints_in_skill
		 FROM group_skills s
		 JOIN skill_groups g ON g.character_id = s.character_id AND g.group_id = s.group_id
		 WHERE s.character_id = $1
		 ORDER BY g.position, s.position`,
		characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group skills: %w", err)
	}
	skills, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (skillRecord, error) {
		var s skillRecord
		err := row.Scan(&s.GroupID, &s.Position, &s.Name, &s.Rank, &s.Level, &s.Points)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan group skills: %w", err)
	}

	return assembleDataset(groups, skills), nil
}

// SaveDataset replaces the stored dataset for a character and records the import.
func (db *DB) SaveDataset(ctx context.Context, input *ImportInput) (*ImportBatch, error) {
	if err := input.Dataset.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to save invalid dataset: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	groups, skills := flattenDataset(input.Dataset)

	batch := ImportBatch{
		ID:          uuid.New(),
		CharacterID: input.CharacterID,
		Source:      input.Source,
		ContentHash: input.ContentHash,
		GroupCount:  len(groups),
		SkillCount:  len(skills),
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO import_batches (id, character_id, source, content_hash, group_count, skill_count)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		batch.ID, batch.CharacterID, batch.Source, batch.ContentHash, batch.GroupCount, batch.SkillCount,
	).Scan(&batch.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record import: %w", err)
	}

	// group_skills rows go with their groups
	if _, err := tx.Exec(ctx, "DELETE FROM skill_groups WHERE character_id = $1", input.CharacterID); err != nil {
		return nil, fmt.Errorf("failed to clear skill groups: %w", err)
	}

	groupRows := make([][]any, 0, len(groups))
	for _, g := range groups {
		groupRows = append(groupRows, []any{input.CharacterID, g.GroupID, g.Position, g.Name, g.TotalGroupSP, batch.ID})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"skill_groups"},
		[]string{"character_id", "group_id", "position", "name", "total_group_sp", "batch_id"},
		pgx.CopyFromRows(groupRows),
	); err != nil {
		return nil, fmt.Errorf("failed to insert skill groups: %w", err)
	}

	skillRows := make([][]any, 0, len(skills))
	for _, s := range skills {
		skillRows = append(skillRows, []any{input.CharacterID, s.GroupID, s.Position, s.Name, s.Rank, s.Level, s.Points})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"group_skills"},
		[]string{"character_id", "group_id", "position", "name", "rank", "trained_skill_level", "skillpoints_in_skill"},
		pgx.CopyFromRows(skillRows),
	); err != nil {
		return nil, fmt.Errorf("failed to insert group skills: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	return &batch, nil
}

// LatestImport returns the most recent import for a character, or nil if there is none.
func (db *DB) LatestImport(ctx context.Context, characterID int64) (*ImportBatch, error) {
	var batch ImportBatch
	err := db.pool.QueryRow(ctx,
		`SELECT id, character_id, source, content_hash, group_count, skill_count, created_at
		 FROM import_batches WHERE character_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		characterID,
	).Scan(&batch.ID, &batch.CharacterID, &batch.Source, &batch.ContentHash,
		&batch.GroupCount, &batch.SkillCount, &batch.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest import: %w", err)
	}
	return &batch, nil
}

// CharacterSource serves one character's stored dataset.
type CharacterSource struct {
	db          *DB
	characterID int64
}

// Source returns a dataset source bound to a character.
func (db *DB) Source(characterID int64) *CharacterSource {
	return &CharacterSource{db: db, characterID: characterID}
}

// Dataset loads the character's current dataset.
func (s *CharacterSource) Dataset(ctx context.Context) (types.Dataset, error) {
	return s.db.ListSkillGroups(ctx, s.characterID)
}

// Ping checks that the backing database is reachable.
func (s *CharacterSource) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
