package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kodjobs/talent-matcher/internal/handlers"
	"kodjobs/talent-matcher/internal/models"
	"kodjobs/talent-matcher/internal/repositories"
	"kodjobs/talent-matcher/internal/services"
)

type MockMatcher struct {
	mock.Mock
}

func (m *MockMatcher) RunMatch(ctx context.Context, employerID int, requirement string) (*models.MatchSummary, error) {
	args := m.Called(ctx, employerID, requirement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MatchSummary), args.Error(1)
}

type MockMatchRepo struct {
	mock.Mock
}

func (m *MockMatchRepo) CreateEvaluation(ctx context.Context, candidateID, employerID int, requirement string, score int) (*models.Match, error) {
	args := m.Called(ctx, candidateID, employerID, requirement, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepo) FindByEmployerID(ctx context.Context, employerID int) ([]models.Match, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Match), args.Error(1)
}

func newTestApp(matcher *MockMatcher, repo *MockMatchRepo) *fiber.App {
	handler := handlers.NewMatchHandler(matcher, repo, 30*time.Second)

	app := fiber.New()
	app.Post("/trymatch", handler.HandleTryMatch)
	app.Get("/matches/:employerId", handler.HandleGetMatches)
	return app
}

func postJSON(app *fiber.App, path, body string) (int, map[string]any, error) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	var decoded map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return 0, nil, err
		}
	}
	return resp.StatusCode, decoded, nil
}

func TestTryMatchMissingFields(t *testing.T) {
	app := newTestApp(new(MockMatcher), new(MockMatchRepo))

	tests := []struct {
		name string
		body string
	}{
		{name: "missing requirement", body: `{"employerId": 7}`},
		{name: "empty requirement", body: `{"employerId": 7, "requirement": ""}`},
		{name: "missing employerId", body: `{"requirement": "Go engineer"}`},
		{name: "empty body", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, err := postJSON(app, "/trymatch", tt.body)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, status)
		})
	}
}

func TestTryMatchUnknownEmployer(t *testing.T) {
	matcher := new(MockMatcher)
	matcher.On("RunMatch", mock.Anything, 99, "Go engineer").
		Return(nil, repositories.ErrEmployerNotFound)

	app := newTestApp(matcher, new(MockMatchRepo))

	status, _, err := postJSON(app, "/trymatch", `{"employerId": 99, "requirement": "Go engineer"}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, status)
	matcher.AssertExpectations(t)
}

func TestTryMatchStorageUnavailable(t *testing.T) {
	matcher := new(MockMatcher)
	matcher.On("RunMatch", mock.Anything, 7, "Go engineer").
		Return(nil, fmt.Errorf("%w: connection refused", services.ErrStorageUnavailable))

	app := newTestApp(matcher, new(MockMatchRepo))

	status, body, err := postJSON(app, "/trymatch", `{"employerId": 7, "requirement": "Go engineer"}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Contains(t, body, "details")
}

func TestTryMatchDone(t *testing.T) {
	matcher := new(MockMatcher)
	matcher.On("RunMatch", mock.Anything, 7, "Go engineer").
		Return(&models.MatchSummary{
			RunID:          "run-1",
			TotalProcessed: 2,
			Matches: []models.Match{
				{ID: 1, UserID: 1, EmployerID: 7, Requirement: "Go engineer", Score: 8, IsMatch: true},
				{ID: 2, UserID: 3, EmployerID: 7, Requirement: "Go engineer", Score: 0, IsMatch: false},
			},
		}, nil)

	app := newTestApp(matcher, new(MockMatchRepo))

	status, body, err := postJSON(app, "/trymatch", `{"employerId": 7, "requirement": "Go engineer"}`)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Done", body["msg"])
	assert.Equal(t, float64(2), body["totalProcessed"])
	matches, ok := body["matches"].([]any)
	require.True(t, ok)
	assert.Len(t, matches, 2)
}

func TestGetMatches(t *testing.T) {
	repo := new(MockMatchRepo)
	repo.On("FindByEmployerID", mock.Anything, 7).
		Return([]models.Match{
			{ID: 1, UserID: 1, EmployerID: 7, Requirement: "Go engineer", Score: 8, IsMatch: true},
		}, nil)

	app := newTestApp(new(MockMatcher), repo)

	req := httptest.NewRequest("GET", "/matches/7", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body models.MatchListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Matches, 1)
	assert.Equal(t, 8, body.Matches[0].Score)
}

func TestGetMatchesInvalidID(t *testing.T) {
	app := newTestApp(new(MockMatcher), new(MockMatchRepo))

	req := httptest.NewRequest("GET", "/matches/abc", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
