package scoreservice

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/hack-arena/hackarena-judging/app/observability/metrics"
)

type testDeps struct {
	repo     *FakeScoreRepo
	catalog  *FakeCatalogRepo
	judges   *FakeJudgeLookup
	eventBus *FakeEventBus
}

// newTestService wires a ScoreService against fakes. The nil *bun.DB makes
// runInTx pass through without a real transaction.
func newTestService() (*ScoreService, *testDeps) {
	deps := &testDeps{
		repo:     NewFakeScoreRepo(),
		catalog:  &FakeCatalogRepo{},
		judges:   &FakeJudgeLookup{},
		eventBus: &FakeEventBus{},
	}

	svc := NewScoreService(
		deps.repo,
		deps.catalog,
		deps.judges,
		deps.eventBus,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.NoopOperations{},
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
	return svc, deps
}
