package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/huematch/internal/domain"
	"github.com/kailas-cloud/huematch/internal/domain/facet"
	"github.com/kailas-cloud/huematch/internal/domain/recommendation"
	logpkg "github.com/kailas-cloud/huematch/internal/logger"
	healthuc "github.com/kailas-cloud/huematch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/huematch/internal/usecase/recommend"
	"github.com/kailas-cloud/huematch/internal/version"
)

// Recommender is the recommendation use case as seen by the transport.
type Recommender interface {
	Recommend(ctx context.Context, sel facet.Selection, q recommenduc.Query) (recommendation.Result, error)
	Bounds(ctx context.Context, sel facet.Selection) (recommendation.Bounds, int, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the huematch HTTP API.
type Server struct {
	recommend     Recommender
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(recommend Recommender, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		recommend: recommend,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		invalidTargetHandler,
		sentinelHandler(domain.ErrUnknownFacet, http.StatusBadRequest, ErrorCodeUnknownFacet),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, ErrorCodeCatalogUnavailable),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/recommendations", s.GetRecommendations)
		r.Get("/bounds", s.GetBounds)
		r.Get("/facets", s.GetFacets)
	})
}

// GetRecommendations handles GET /api/v1/recommendations.
func (s *Server) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	sel, err := bindSelection(r)
	if err != nil {
		s.handleBindError(w, err)
		return
	}
	q, err := bindQuery(r)
	if err != nil {
		s.handleBindError(w, err)
		return
	}

	ctx := logpkg.With(r.Context(),
		zap.String("personal_color", string(sel.PersonalColor)),
		zap.String("product_type", string(sel.ProductType)),
	)
	res, err := s.recommend.Recommend(ctx, sel, q)
	if errors.Is(err, domain.ErrNoMatch) {
		writeJSON(w, http.StatusOK, RecommendationsResponse{
			Items:   []RecommendationItem{},
			Dropped: res.Dropped,
			Warning: noMatchWarning(sel),
		})
		return
	}
	if err != nil {
		s.handleDomainError(ctx, w, err)
		return
	}

	items := make([]RecommendationItem, len(res.Items))
	for i := range res.Items {
		items[i] = itemFromScored(i+1, &res.Items[i])
	}

	writeJSON(w, http.StatusOK, RecommendationsResponse{
		Items:   items,
		Plot:    plotToDTO(&res.Plot),
		Total:   res.Total,
		Dropped: res.Dropped,
	})
}

// GetBounds handles GET /api/v1/bounds.
func (s *Server) GetBounds(w http.ResponseWriter, r *http.Request) {
	sel, err := bindSelection(r)
	if err != nil {
		s.handleBindError(w, err)
		return
	}

	bounds, count, err := s.recommend.Bounds(r.Context(), sel)
	if errors.Is(err, domain.ErrNoMatch) {
		writeJSON(w, http.StatusOK, BoundsResponse{Warning: noMatchWarning(sel)})
		return
	}
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, boundsToDTO(bounds, count))
}

// GetFacets handles GET /api/v1/facets.
func (s *Server) GetFacets(w http.ResponseWriter, _ *http.Request) {
	resp := FacetsResponse{}
	for _, p := range facet.PersonalColors() {
		resp.PersonalColors = append(resp.PersonalColors, FacetOption{Name: string(p), Slug: p.Slug()})
	}
	for _, t := range facet.ProductTypes() {
		resp.ProductTypes = append(resp.ProductTypes, FacetOption{
			Name:       string(t),
			Slug:       t.Slug(),
			StoreLabel: t.StoreLabel(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// bindSelection reads the facet query parameters.
func bindSelection(r *http.Request) (facet.Selection, error) {
	var personalColor string
	var productType *string

	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "personal_color", query, &personalColor); err != nil {
		return facet.Selection{}, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "product_type", query, &productType); err != nil {
		return facet.Selection{}, err
	}

	pt := ""
	if productType != nil {
		pt = *productType
	}
	return facet.NewSelection(personalColor, pt)
}

// bindQuery reads the optional target color in source units.
func bindQuery(r *http.Request) (recommenduc.Query, error) {
	var q recommenduc.Query
	query := r.URL.Query()
	for _, p := range []struct {
		name string
		dest **float64
	}{
		{"hue", &q.Hue},
		{"saturation", &q.Saturation},
		{"value", &q.Value},
	} {
		if err := runtime.BindQueryParameter("form", true, false, p.name, query, p.dest); err != nil {
			return recommenduc.Query{}, err
		}
	}
	return q, nil
}

func noMatchWarning(sel facet.Selection) string {
	return fmt.Sprintf("no products match %s / %s", sel.PersonalColor, sel.ProductType)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message without exposing internals.
func safeDomainMessage(err error) string {
	var ite *domain.InvalidTargetError
	if errors.As(err, &ite) {
		return ite.Error()
	}
	if errors.Is(err, domain.ErrUnknownFacet) {
		return err.Error()
	}
	if errors.Is(err, domain.ErrCatalogUnavailable) {
		return domain.ErrCatalogUnavailable.Error()
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// invalidTargetHandler reports the offending component and its allowed range.
func invalidTargetHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidTarget) {
		return false
	}
	resp := ErrorResponse{Code: ErrorCodeInvalidTarget, Message: msg}
	var ite *domain.InvalidTargetError
	if errors.As(err, &ite) {
		lo, hi := ite.Min, ite.Max
		resp.Field, resp.Min, resp.Max = ite.Field, &lo, &hi
	}
	writeJSON(w, http.StatusBadRequest, resp)
	return true
}

func (s *Server) handleBindError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrUnknownFacet) {
		writeError(w, http.StatusBadRequest, ErrorCodeUnknownFacet, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
}

func (s *Server) handleDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	log := logpkg.FromContext(ctx)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
