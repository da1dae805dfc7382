// Package bundb wires the Postgres connection and every module repository.
package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	competitiondb "github.com/hack-arena/hackarena-judging/app/modules/competition/infrastructure/repositories"
	judgedb "github.com/hack-arena/hackarena-judging/app/modules/judge/infrastructure/repositories"
	rankingdb "github.com/hack-arena/hackarena-judging/app/modules/ranking/infrastructure/repositories"
	scoredb "github.com/hack-arena/hackarena-judging/app/modules/score/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/config"
)

// DBService bundles the shared bun.DB with each module's repository.
type DBService struct {
	CatalogDB *competitiondb.CatalogDBImpl
	JudgeDB   *judgedb.JudgeDBImpl
	ScoreDB   *scoredb.ScoreDBImpl
	RankingDB *rankingdb.RankingDBImpl

	db *bun.DB
}

// GetDB returns the underlying database connection pool.
func (s *DBService) GetDB() *bun.DB {
	return s.db
}

// NewBunDBService opens the Postgres pool and builds all repositories on it.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewTestDBService(BunDB(sqldb)), nil
}

// BunDB wraps an open connection in a bun.DB with every module model
// registered. Relation metadata is needed for join queries.
func BunDB(sqldb *sql.DB) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel(
		(*competitiondb.Competition)(nil),
		(*competitiondb.Criterion)(nil),
		(*competitiondb.Team)(nil),
		(*competitiondb.TeamMember)(nil),
		(*competitiondb.Person)(nil),
		(*competitiondb.Submission)(nil),
		(*judgedb.Judge)(nil),
		(*scoredb.Score)(nil),
	)
	return db
}

// NewTestDBService builds the repository bundle on an existing connection,
// skipping the ping. Integration tests hand it a container-backed bun.DB.
func NewTestDBService(db *bun.DB) *DBService {
	return &DBService{
		CatalogDB: &competitiondb.CatalogDBImpl{DB: db},
		JudgeDB:   &judgedb.JudgeDBImpl{DB: db},
		ScoreDB:   &scoredb.ScoreDBImpl{DB: db},
		RankingDB: &rankingdb.RankingDBImpl{DB: db},
		db:        db,
	}
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
