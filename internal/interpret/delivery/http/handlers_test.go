package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-intent/internal/interpret"
	"task-intent/internal/model"
	"task-intent/pkg/log"
)

type mockUseCase struct {
	outcome model.ParseOutcome
	err     error
	inputs  []string
}

func (m *mockUseCase) Parse(ctx context.Context, input interpret.ParseInput) (model.ParseOutcome, error) {
	m.inputs = append(m.inputs, input.Text)
	return m.outcome, m.err
}

func (m *mockUseCase) Stats(ctx context.Context) interpret.StatsOutput {
	return interpret.StatsOutput{CacheLen: 3, CacheCapacity: 1000, InferenceAvailable: true}
}

func (m *mockUseCase) Warm(ctx context.Context, input interpret.WarmInput) (interpret.WarmOutput, error) {
	return interpret.WarmOutput{}, nil
}

func newRouter(uc interpret.UseCase, perMin int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1/interpret"), New(log.NewNop(), uc, perMin))
	return r
}

func postParse(r *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/interpret/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      struct {
		RequestID string             `json:"request_id"`
		Outcome   model.ParseOutcome `json:"outcome"`
	} `json:"data"`
}

func TestParse_Success(t *testing.T) {
	uc := &mockUseCase{outcome: model.ParseOutcome{
		Intent:     model.NewFallbackTask("Buy milk"),
		Strategy:   model.StrategyFallback,
		Confidence: model.ConfidenceFallback,
	}}
	r := newRouter(uc, 0)

	w := postParse(r, `{"text":"Buy milk"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.ErrorCode)
	assert.Equal(t, model.StrategyFallback, resp.Data.Outcome.Strategy)
	assert.Equal(t, model.NewFallbackTask("Buy milk"), resp.Data.Outcome.Intent)

	_, err := uuid.Parse(resp.Data.RequestID)
	assert.NoError(t, err)
	assert.Equal(t, resp.Data.RequestID, w.Header().Get(RequestIDHeader))
	assert.Equal(t, []string{"Buy milk"}, uc.inputs)
}

func TestParse_PropagatesRequestID(t *testing.T) {
	r := newRouter(&mockUseCase{outcome: model.ParseOutcome{Intent: model.NewFallbackTask("x"), Strategy: model.StrategyFallback}}, 0)
	id := uuid.NewString()

	w := postParse(r, `{"text":"x"}`, map[string]string{RequestIDHeader: id})
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))

	w = postParse(r, `{"text":"x"}`, map[string]string{RequestIDHeader: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		ucErr  error
		status int
	}{
		{name: "missing text", body: `{}`, status: http.StatusBadRequest},
		{name: "malformed body", body: `{"text":`, status: http.StatusBadRequest},
		{name: "blank text", body: `{"text":"   "}`, ucErr: interpret.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", body: `{"text":"x"}`, ucErr: interpret.ErrInternal, status: http.StatusInternalServerError},
		{name: "unexpected", body: `{"text":"x"}`, ucErr: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&mockUseCase{err: tt.ucErr}, 0)

			w := postParse(r, tt.body, nil)
			assert.Equal(t, tt.status, w.Code)

			var resp envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotZero(t, resp.ErrorCode)
		})
	}
}

func TestParse_RateLimited(t *testing.T) {
	r := newRouter(&mockUseCase{outcome: model.ParseOutcome{Intent: model.NewFallbackTask("x"), Strategy: model.StrategyFallback}}, 10)

	first := postParse(r, `{"text":"x"}`, nil)
	assert.Equal(t, http.StatusOK, first.Code)

	second := postParse(r, `{"text":"x"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestStats(t *testing.T) {
	r := newRouter(&mockUseCase{}, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/interpret/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data statsResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, statsResp{CacheLen: 3, CacheCapacity: 1000, InferenceAvailable: true}, resp.Data)
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := newRateLimiter(10)

	assert.NoError(t, rl.Allow("a"))
	assert.Error(t, rl.Allow("a"))
	assert.NoError(t, rl.Allow("b"))
}
