package rankingservice

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/hack-arena/hackarena-judging/app/observability/metrics"
)

type testDeps struct {
	repo      *FakeRankingRepo
	catalog   *FakeCatalogRepo
	eventBus  *FakeEventBus
	scheduler *FakeScheduler
}

// newTestService wires a RankingService against fakes. The nil *bun.DB makes
// runInTx pass through without a real transaction.
func newTestService() (*RankingService, *testDeps) {
	deps := &testDeps{
		repo:      NewFakeRankingRepo(),
		catalog:   &FakeCatalogRepo{},
		eventBus:  &FakeEventBus{},
		scheduler: &FakeScheduler{},
	}

	svc := NewRankingService(
		deps.repo,
		deps.catalog,
		deps.eventBus,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.NoopOperations{},
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
	svc.SetScheduler(deps.scheduler)
	return svc, deps
}
