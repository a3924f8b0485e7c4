package api

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/charmbracelet/log"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/thesavant42/gitfolio/internal/models"
)

const (
	perPage   = 100 // Max allowed by GitHub API
	userAgent = "gitfolio/1.0"
	timeout   = 30 * time.Second

	// ReadmeCandidates is how many recently updated repositories the README
	// search inspects after the profile repository misses.
	ReadmeCandidates = 10
)

// Client is a GitHub REST client scoped to the calls a portfolio needs.
type Client struct {
	gh     *github.Client
	logger *log.Logger
}

// NewClient creates a client with a 30 second timeout. An empty token means
// anonymous requests (60 requests/hour).
func NewClient(token string) *Client {
	return newClient(token, nil)
}

// NewClientWithLogging creates a client that writes every request to logger.
func NewClientWithLogging(token string, logger *log.Logger) *Client {
	return newClient(token, logger)
}

func newClient(token string, logger *log.Logger) *Client {
	var transport http.RoundTripper = &loggingTransport{next: http.DefaultTransport, logger: logger}
	if token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   transport,
		}
	}

	gh := github.NewClient(&http.Client{Timeout: timeout, Transport: transport})
	gh.UserAgent = userAgent

	return &Client{gh: gh, logger: logger}
}

// NewFileLogger opens api.log next to the database. It returns nil when the
// file cannot be opened; a nil logger disables request logging.
func NewFileLogger(dbPath string, level log.Level) *log.Logger {
	logFile := filepath.Join(filepath.Dir(dbPath), "api.log")

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil
	}

	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "API",
		Level:           level,
	})
}

// SetBaseURL points the client at a GitHub Enterprise host or a test server.
func (c *Client) SetBaseURL(raw string) error {
	if raw == "" {
		return nil
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrapf(err, "invalid GitHub API URL %q", raw)
	}
	c.gh.BaseURL = u
	return nil
}

// FetchRepos returns up to 100 public repositories owned by username,
// most recently updated first.
func (c *Client) FetchRepos(ctx context.Context, username string) ([]models.Repository, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}

	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	repos, resp, err := c.gh.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, c.fetchError("list repositories", resp, err)
	}

	out := make([]models.Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, toRepository(r))
	}

	if c.logger != nil {
		c.logger.Debug("Fetched repositories", "user", username, "count", len(out))
	}
	return out, nil
}

// FetchRecentRepoNames returns the names of the n most recently updated
// repositories owned by username.
func (c *Client) FetchRecentRepoNames(ctx context.Context, username string, n int) ([]string, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n > perPage {
		n = perPage
	}

	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: n},
	}
	repos, resp, err := c.gh.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, c.fetchError("list recent repositories", resp, err)
	}

	names := make([]string, 0, len(repos))
	for _, r := range repos {
		names = append(names, r.GetName())
	}
	return names, nil
}

// FetchUser returns the public profile for username.
func (c *Client) FetchUser(ctx context.Context, username string) (*models.UserProfile, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}

	u, resp, err := c.gh.Users.Get(ctx, username)
	if err != nil {
		return nil, c.fetchError("get user", resp, err)
	}

	return &models.UserProfile{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		Bio:         u.GetBio(),
		AvatarURL:   u.GetAvatarURL(),
		HTMLURL:     u.GetHTMLURL(),
		Location:    u.GetLocation(),
		Company:     u.GetCompany(),
		Blog:        u.GetBlog(),
		Twitter:     u.GetTwitterUsername(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   u.GetCreatedAt().Time,
	}, nil
}

// FetchReadme returns the decoded README of owner/repo.
func (c *Client) FetchReadme(ctx context.Context, owner, repo string) (models.Readme, error) {
	rc, resp, err := c.gh.Repositories.GetReadme(ctx, owner, repo, nil)
	if err != nil {
		return models.Readme{}, c.fetchError("get readme "+owner+"/"+repo, resp, err)
	}

	content, err := rc.GetContent()
	if err != nil {
		return models.Readme{}, errors.Wrapf(err, "failed to decode readme for %s/%s", owner, repo)
	}

	return models.Readme{Owner: owner, Repo: repo, Content: content, Found: true}, nil
}

func (c *Client) fetchError(op string, resp *github.Response, err error) error {
	fe := &FetchError{Op: op, Kind: KindNetwork, Err: err}
	if resp != nil && resp.Response != nil {
		fe.Status = resp.StatusCode
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		fe.Status = ghErr.Response.StatusCode
	}
	if fe.Status == http.StatusNotFound {
		fe.Kind = KindNotFound
	}

	if c.logger != nil {
		c.logger.Error("Request failed", "op", op, "status", fe.Status, "error", err)
	}
	return fe
}

func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(username), "@"))
	if username == "" {
		return "", ErrEmptyUsername
	}
	return username, nil
}

func toRepository(r *github.Repository) models.Repository {
	return models.Repository{
		Name:            r.GetName(),
		Description:     r.GetDescription(),
		Language:        r.GetLanguage(),
		StargazersCount: r.GetStargazersCount(),
		ForksCount:      r.GetForksCount(),
		CreatedAt:       r.GetCreatedAt().Time,
		UpdatedAt:       r.GetUpdatedAt().Time,
		HTMLURL:         r.GetHTMLURL(),
		HomepageURL:     r.GetHomepage(),
		Fork:            r.GetFork(),
	}
}

// loggingTransport records each request and the rate limit headers of its response.
type loggingTransport struct {
	next   http.RoundTripper
	logger *log.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if t.logger != nil {
		t.logger.Info("GET", "endpoint", req.URL.String())
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		if t.logger != nil {
			t.logger.Error("Request failed", "url", req.URL.String(), "error", err)
		}
		return nil, err
	}

	if t.logger != nil {
		remaining := resp.Header.Get("X-RateLimit-Remaining")
		reset := resp.Header.Get("X-RateLimit-Reset")
		t.logger.Debug("Rate limit", "remaining", remaining, "reset", reset, "status", resp.StatusCode)
	}
	return resp, nil
}
