package judgeservice

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/hack-arena/hackarena-judging/app/observability/metrics"
)

type testDeps struct {
	repo     *FakeJudgeRepo
	catalog  *FakeCatalogRepo
	scores   *FakeScoreCounter
	eventBus *FakeEventBus
}

// newTestService wires a JudgeService against fakes. The nil *bun.DB makes
// runInTx pass through without a real transaction.
func newTestService() (*JudgeService, *testDeps) {
	deps := &testDeps{
		repo:     NewFakeJudgeRepo(),
		catalog:  &FakeCatalogRepo{},
		scores:   &FakeScoreCounter{},
		eventBus: &FakeEventBus{},
	}

	svc := NewJudgeService(
		deps.repo,
		deps.catalog,
		deps.scores,
		deps.eventBus,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.NoopOperations{},
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
	return svc, deps
}
