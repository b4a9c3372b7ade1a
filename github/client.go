// Package github wraps the go-github client behind the small surface the
// report pipeline needs: identity resolution, the two repository listing
// modes, and the per-repository commit lookups.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"githubreport/logger"
	"githubreport/models"
)

// Listing errors, classified from the remote response so the caller can
// produce a useful diagnostic.
var (
	ErrUserNotFound = fmt.Errorf("user not found")
	ErrUnauthorized = fmt.Errorf("bad credentials")
)

const perPage = 100

// Client is an authenticated GitHub API client. It is safe for concurrent
// use: every call is an independent stateless request.
type Client struct {
	gh *github.Client
}

// NewClient creates a Client authenticated with the given bearer token.
func NewClient(token string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return &Client{gh: github.NewClient(tc)}
}

// AuthenticatedLogin returns the login of the token's owner.
func (c *Client) AuthenticatedLogin(ctx context.Context) (string, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to resolve authenticated user: %w", classify(err))
	}
	return user.GetLogin(), nil
}

// ListOwnRepositories lists every repository owned by the authenticated user,
// private ones included. Pagination is exhausted before returning.
func (c *Client) ListOwnRepositories(ctx context.Context) ([]models.Repository, error) {
	var all []models.Repository

	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Visibility:  "all",
		Affiliation: "owner",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	for {
		repos, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", classify(err))
		}
		for _, r := range repos {
			all = append(all, toRepository(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logger.Info("Listed own repositories", zap.Int("count", len(all)))
	return all, nil
}

// ListUserRepositories lists the public repositories owned by an arbitrary
// account. Pagination is exhausted before returning.
func (c *Client) ListUserRepositories(ctx context.Context, username string) ([]models.Repository, error) {
	var all []models.Repository

	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	for {
		repos, resp, err := c.gh.Repositories.ListByUser(ctx, username, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories for %s: %w", username, classify(err))
		}
		for _, r := range repos {
			all = append(all, toRepository(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logger.Info("Listed public repositories",
		zap.String("username", username),
		zap.Int("count", len(all)))
	return all, nil
}

// DefaultBranch fetches the repository detail and returns its default branch.
func (c *Client) DefaultBranch(ctx context.Context, owner, name string) (string, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", fmt.Errorf("failed to fetch repository %s/%s: %w", owner, name, err)
	}
	return repo.GetDefaultBranch(), nil
}

// LatestCommit returns the committer timestamp of the most recent commit on
// the given branch, or nil when the branch has no commits.
func (c *Client) LatestCommit(ctx context.Context, owner, name, branch string) (*time.Time, error) {
	opts := &github.CommitsListOptions{
		SHA:         branch,
		ListOptions: github.ListOptions{PerPage: 1},
	}

	commits, _, err := c.gh.Repositories.ListCommits(ctx, owner, name, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest commit for %s/%s: %w", owner, name, err)
	}
	if len(commits) == 0 {
		return nil, nil
	}

	date := commits[0].GetCommit().GetCommitter().GetDate().Time
	return &date, nil
}

// CountCommits walks the full commit history of the branch and returns the
// total number of commits. One round trip per page of history.
func (c *Client) CountCommits(ctx context.Context, owner, name, branch string) (int, error) {
	count := 0

	opts := &github.CommitsListOptions{
		SHA:         branch,
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	for {
		commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			return 0, fmt.Errorf("failed to count commits for %s/%s: %w", owner, name, err)
		}
		count += len(commits)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return count, nil
}

// classify maps remote status codes onto the listing error sentinels.
func classify(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrUserNotFound, err)
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
	}
	return err
}

// toRepository translates a go-github repository into the internal snapshot.
func toRepository(r *github.Repository) models.Repository {
	repo := models.Repository{
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Owner:       r.GetOwner().GetLogin(),
		Private:     r.GetPrivate(),
		Archived:    r.GetArchived(),
		Fork:        r.GetFork(),
		Description: r.Description,
		URL:         r.GetHTMLURL(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Language:    r.Language,
		SizeKB:      r.GetSize(),
		CreatedAt:   r.GetCreatedAt().Time,
		UpdatedAt:   r.GetUpdatedAt().Time,
	}
	if r.GetFork() {
		// The listing API omits the parent for most responses; keep
		// whatever it did send.
		repo.ForkedFrom = r.GetParent().GetFullName()
	}
	return repo
}
