package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"githubreport/models"
)

func sampleRecords() []models.ReportRecord {
	desc := "Test repository"
	lang := "Go"
	date := time.Date(2024, 3, 14, 9, 26, 53, 0, time.UTC)

	return []models.ReportRecord{
		{
			Repository: models.Repository{
				Name:        "hello-world",
				FullName:    "octocat/hello-world",
				Owner:       "octocat",
				Private:     true,
				Description: &desc,
				URL:         "https://github.com/octocat/hello-world",
				Stars:       42,
				Forks:       7,
				Language:    &lang,
				SizeKB:      108,
				CreatedAt:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				UpdatedAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			},
			CommitCount:    15,
			LastCommitDate: &date,
		},
		{
			Repository: models.Repository{
				Name:       "fork-of-things",
				FullName:   "octocat/fork-of-things",
				Owner:      "octocat",
				Fork:       true,
				ForkedFrom: "upstream/things",
			},
			CommitCount:    models.CommitCountUnknown,
			LastCommitDate: nil,
		},
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Header, rows[0])

	first := rows[1]
	assert.Equal(t, "hello-world", first[0])
	assert.Equal(t, "octocat/hello-world", first[1])
	assert.Equal(t, "true", first[2])
	assert.Equal(t, "Test repository", first[6])
	assert.Equal(t, "42", first[8])
	assert.Equal(t, "15", first[11])
	assert.Equal(t, "2024-03-14T09:26:53Z", first[12])
	assert.Equal(t, "108", first[15])

	second := rows[2]
	assert.Equal(t, "true", second[4], "is fork")
	assert.Equal(t, "upstream/things", second[5])
	assert.Empty(t, second[6], "nil description renders empty")
	assert.Empty(t, second[10], "nil language renders empty")
	assert.Empty(t, second[11], "uncounted commits render empty, not -1")
	assert.Empty(t, second[12], "nil last commit date renders empty")
}

func TestWriteEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteFile(path, sampleRecords()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2024, 3, 14, 9, 26, 53, 123000000, time.UTC)

	name := DefaultFilename("octocat", now)

	assert.Equal(t, "octocat-repositories-2024-03-14T09-26-53-123Z.csv", name)
	assert.Regexp(t, regexp.MustCompile(`^octocat-repositories-[0-9T\-Z]+\.csv$`), name)
}
