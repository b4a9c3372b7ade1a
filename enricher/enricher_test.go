package enricher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"githubreport/logger"
	"githubreport/models"
)

func init() {
	// Initialize logger for tests
	_ = logger.Initialize("debug")
}

// MockCommitAPI is a mock implementation of the GitHub commit operations
type MockCommitAPI struct {
	mock.Mock
}

func (m *MockCommitAPI) DefaultBranch(ctx context.Context, owner, name string) (string, error) {
	args := m.Called(ctx, owner, name)
	return args.String(0), args.Error(1)
}

func (m *MockCommitAPI) LatestCommit(ctx context.Context, owner, name, branch string) (*time.Time, error) {
	args := m.Called(ctx, owner, name, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockCommitAPI) CountCommits(ctx context.Context, owner, name, branch string) (int, error) {
	args := m.Called(ctx, owner, name, branch)
	return args.Int(0), args.Error(1)
}

func TestEnrich(t *testing.T) {
	commitDate := time.Date(2024, 3, 14, 9, 26, 53, 0, time.UTC)

	testCases := []struct {
		name         string
		countCommits bool
		setupMocks   func(*MockCommitAPI)
		expected     models.Enrichment
	}{
		{
			name: "successful enrichment without counting",
			setupMocks: func(m *MockCommitAPI) {
				m.On("DefaultBranch", mock.Anything, "octocat", "hello-world").
					Return("main", nil)
				m.On("LatestCommit", mock.Anything, "octocat", "hello-world", "main").
					Return(&commitDate, nil)
			},
			expected: models.Enrichment{
				CommitCount:    models.CommitCountUnknown,
				LastCommitDate: &commitDate,
			},
		},
		{
			name:         "successful enrichment with counting",
			countCommits: true,
			setupMocks: func(m *MockCommitAPI) {
				m.On("DefaultBranch", mock.Anything, "octocat", "hello-world").
					Return("main", nil)
				m.On("LatestCommit", mock.Anything, "octocat", "hello-world", "main").
					Return(&commitDate, nil)
				m.On("CountCommits", mock.Anything, "octocat", "hello-world", "main").
					Return(42, nil)
			},
			expected: models.Enrichment{
				CommitCount:    42,
				LastCommitDate: &commitDate,
			},
		},
		{
			name: "empty branch yields nil last commit",
			setupMocks: func(m *MockCommitAPI) {
				m.On("DefaultBranch", mock.Anything, "octocat", "hello-world").
					Return("main", nil)
				m.On("LatestCommit", mock.Anything, "octocat", "hello-world", "main").
					Return(nil, nil)
			},
			expected: models.Enrichment{
				CommitCount:    models.CommitCountUnknown,
				LastCommitDate: nil,
			},
		},
		{
			name: "default branch lookup fails",
			setupMocks: func(m *MockCommitAPI) {
				m.On("DefaultBranch", mock.Anything, "octocat", "hello-world").
					Return("", assert.AnError)
			},
			expected: models.Enrichment{CommitCount: 0, LastCommitDate: nil},
		},
		{
			name: "latest commit lookup fails",
			setupMocks: func(m *MockCommitAPI) {
				m.On("DefaultBranch", mock.Anything, "octocat", "hello-world").
					Return("main", nil)
				m.On("LatestCommit", mock.Anything, "octocat", "hello-world", "main").
					Return(nil, assert.AnError)
			},
			expected: models.Enrichment{CommitCount: 0, LastCommitDate: nil},
		},
		{
			name:         "commit counting fails",
			countCommits: true,
			setupMocks: func(m *MockCommitAPI) {
				m.On("DefaultBranch", mock.Anything, "octocat", "hello-world").
					Return("main", nil)
				m.On("LatestCommit", mock.Anything, "octocat", "hello-world", "main").
					Return(&commitDate, nil)
				m.On("CountCommits", mock.Anything, "octocat", "hello-world", "main").
					Return(0, assert.AnError)
			},
			expected: models.Enrichment{CommitCount: 0, LastCommitDate: nil},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockAPI := &MockCommitAPI{}
			tc.setupMocks(mockAPI)

			e := New(mockAPI, tc.countCommits)
			result := e.Enrich(context.Background(), "octocat", "hello-world")

			assert.Equal(t, tc.expected, result)
			mockAPI.AssertExpectations(t)
		})
	}
}
