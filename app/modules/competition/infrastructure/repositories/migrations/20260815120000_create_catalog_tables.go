package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating catalog tables...")
			models := []any{
				(*competitiondb.Competition)(nil),
				(*competitiondb.Person)(nil),
				(*competitiondb.Team)(nil),
				(*competitiondb.TeamMember)(nil),
				(*competitiondb.Criterion)(nil),
				(*competitiondb.Submission)(nil),
			}
			for _, model := range models {
				if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
					return err
				}
			}

			if _, err := db.ExecContext(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS idx_team_members_team_person ON team_members (team_id, person_id);`); err != nil {
				return fmt.Errorf("failed to create team member index: %w", err)
			}
			if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_criteria_competition ON criteria (competition_id, display_order);`); err != nil {
				return fmt.Errorf("failed to create criteria index: %w", err)
			}
			// Ranking reads finalized submissions ordered by aggregate.
			if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_submissions_ranking ON submissions (competition_id, status, aggregate_score DESC NULLS LAST, created_at ASC);`); err != nil {
				return fmt.Errorf("failed to create submissions ranking index: %w", err)
			}
			fmt.Println("Catalog tables created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping catalog tables...")
			models := []any{
				(*competitiondb.Submission)(nil),
				(*competitiondb.Criterion)(nil),
				(*competitiondb.TeamMember)(nil),
				(*competitiondb.Team)(nil),
				(*competitiondb.Person)(nil),
				(*competitiondb.Competition)(nil),
			}
			for _, model := range models {
				if _, err := db.NewDropTable().Model(model).IfExists().Cascade().Exec(ctx); err != nil {
					return err
				}
			}
			fmt.Println("Catalog tables dropped successfully!")
			return nil
		},
	)
}
