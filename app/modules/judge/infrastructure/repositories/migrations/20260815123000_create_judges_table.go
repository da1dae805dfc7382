package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	judgedb "github.com/hack-arena/hackarena-judging/app/modules/judge/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating judges table...")
			if _, err := db.NewCreateTable().Model((*judgedb.Judge)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			// Uniqueness of the (competition, person) pairing is enforced here,
			// not in application code, so concurrent assigns cannot both win.
			if _, err := db.ExecContext(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS idx_judges_competition_person ON judges (competition_id, person_id);`); err != nil {
				return fmt.Errorf("failed to create judge uniqueness index: %w", err)
			}
			fmt.Println("judges table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping judges table...")
			if _, err := db.NewDropTable().Model((*judgedb.Judge)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("judges table dropped successfully!")
			return nil
		},
	)
}
