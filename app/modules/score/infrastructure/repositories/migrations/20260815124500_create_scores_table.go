package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	scoredb "github.com/hack-arena/hackarena-judging/app/modules/score/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating scores table...")
			if _, err := db.NewCreateTable().Model((*scoredb.Score)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			// One score per (submission, judge, criterion). The index is the
			// arbiter under concurrency; duplicate inserts lose here.
			if _, err := db.ExecContext(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS idx_scores_submission_judge_criterion ON scores (submission_id, judge_id, criterion_id);`); err != nil {
				return fmt.Errorf("failed to create score uniqueness index: %w", err)
			}
			if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_scores_judge ON scores (judge_id);`); err != nil {
				return fmt.Errorf("failed to create score judge index: %w", err)
			}
			fmt.Println("scores table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping scores table...")
			if _, err := db.NewDropTable().Model((*scoredb.Score)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("scores table dropped successfully!")
			return nil
		},
	)
}
