package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/delta/codecharacter/api/internal/database"
)

// Tables with integer ids drawn from a sequence
const (
	TableNotification = "notification"
	TableMatch        = "match"
	TableGame         = "game"
	TableUser         = "user"
)

const maxSequenceAttempts = 5

// SequenceRepository hands out integer record ids.
//
// Each table has a `sequence:<table>` counter record. Next bumps the counter
// and reads the table's current max id in one statement, so the new id is
// always greater than both. Concurrent callers serialize on the counter record
// and never receive the same id. The counter never goes down, so ids freed
// by a delete are not reused: after creating 1, 2, 3 and deleting 3 the next
// id is 4.
type SequenceRepository struct {
	db database.Database
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db database.Database) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next allocates the next id for table
func (r *SequenceRepository) Next(ctx context.Context, table string) (int, error) {
	query := `
		UPSERT ONLY type::thing('sequence', $table) SET
			counter = math::max([
				counter OR 0,
				math::max((SELECT VALUE record::id(id) FROM type::table($table))) OR 0
			]) + 1
		RETURN VALUE counter
	`
	vars := map[string]interface{}{"table": table}

	var lastErr error
	for attempt := 0; attempt < maxSequenceAttempts; attempt++ {
		result, err := r.db.QueryOne(ctx, query, vars)
		if err == nil {
			id := toInt(result)
			if id <= 0 {
				return 0, fmt.Errorf("sequence %s returned %v", table, result)
			}
			return id, nil
		}
		if !errors.Is(err, database.ErrConflict) {
			return 0, fmt.Errorf("failed to allocate %s id: %w", table, err)
		}
		lastErr = err
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
	}

	return 0, fmt.Errorf("failed to allocate %s id after %d attempts: %w", table, maxSequenceAttempts, lastErr)
}
