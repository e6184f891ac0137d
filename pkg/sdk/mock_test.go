package huematch

import (
	"context"

	"github.com/kailas-cloud/huematch/internal/domain/facet"
	"github.com/kailas-cloud/huematch/internal/domain/recommendation"
	healthuc "github.com/kailas-cloud/huematch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/huematch/internal/usecase/recommend"
)

// --- recommendUseCase mock ---

type mockRecommendUC struct {
	recommendFn func(ctx context.Context, sel facet.Selection, q recommenduc.Query) (recommendation.Result, error)
	boundsFn    func(ctx context.Context, sel facet.Selection) (recommendation.Bounds, int, error)
}

func (m *mockRecommendUC) Recommend(
	ctx context.Context, sel facet.Selection, q recommenduc.Query,
) (recommendation.Result, error) {
	return m.recommendFn(ctx, sel, q)
}

func (m *mockRecommendUC) Bounds(ctx context.Context, sel facet.Selection) (recommendation.Bounds, int, error) {
	return m.boundsFn(ctx, sel)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(svc recommendUseCase, health healthUseCase) *Client {
	return &Client{recommendSvc: svc, healthSvc: health}
}
