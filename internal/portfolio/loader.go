package portfolio

import (
	"context"
	"fmt"

	"emperror.dev/errors"
	"github.com/charmbracelet/log"

	"github.com/thesavant42/gitfolio/internal/api"
	"github.com/thesavant42/gitfolio/internal/models"
)

// Fetcher is everything the Loader needs from GitHub. *api.Client satisfies it.
type Fetcher interface {
	ReadmeFetcher
	FetchUser(ctx context.Context, username string) (*models.UserProfile, error)
	FetchRepos(ctx context.Context, username string) ([]models.Repository, error)
}

// LoadResult is the outcome of one Load. Generation ties it to State.Begin.
type LoadResult struct {
	Generation uint64
	Username   string
	Repos      []models.Repository
	Profile    *models.UserProfile
	Readme     models.Readme

	// Fallback is set when the sample dataset replaced live data.
	Fallback bool
	// Notice is the message for the status toast.
	Notice string
	// Err is the underlying failure when Fallback is set, ErrEmptyResult for
	// users without repositories, or api.ErrEmptyUsername.
	Err error
}

// Loader fetches and normalizes a full portfolio.
type Loader struct {
	fetcher Fetcher
	opts    NormalizeOptions
	logger  *log.Logger
}

// NewLoader creates a Loader. logger may be nil.
func NewLoader(f Fetcher, opts NormalizeOptions, logger *log.Logger) *Loader {
	return &Loader{fetcher: f, opts: opts, logger: logger}
}

// Load fetches the profile, repositories and README for username. Network
// failures never surface as an empty screen: the sample dataset is returned
// with Fallback set and a warning in Notice.
func (l *Loader) Load(ctx context.Context, generation uint64, username string) LoadResult {
	res := LoadResult{Generation: generation, Username: username}

	profile, err := l.fetcher.FetchUser(ctx, username)
	if err != nil {
		if errors.Is(err, api.ErrEmptyUsername) {
			res.Err = err
			res.Notice = "Please enter a GitHub username"
			return res
		}
		if api.IsNotFound(err) {
			return l.fallback(res, err, fmt.Sprintf("User %q not found. Showing sample data.", username))
		}
		return l.fallback(res, err, "Error loading profile. Showing sample data.")
	}
	res.Profile = profile
	if profile.Login != "" {
		res.Username = profile.Login
	}

	repos, err := l.fetcher.FetchRepos(ctx, res.Username)
	switch {
	case api.IsNotFound(err):
		res.Notice = "User has no public repositories"
		res.Err = ErrEmptyResult
		res.Readme = models.Readme{Owner: res.Username}
		return res
	case err != nil:
		return l.fallback(res, err, "Error loading repositories. Showing sample data.")
	}

	res.Repos = Normalize(res.Username, repos, l.opts)
	if len(res.Repos) == 0 {
		res.Notice = "No public repositories found"
		res.Err = ErrEmptyResult
		res.Readme = models.Readme{Owner: res.Username}
		return res
	}

	res.Readme = FindReadme(ctx, l.fetcher, res.Username, l.logger)
	res.Notice = fmt.Sprintf("Loaded %d repositories", len(res.Repos))
	if l.logger != nil {
		l.logger.Info("Loaded portfolio", "user", res.Username, "repos", len(res.Repos), "readme", res.Readme.Found)
	}
	return res
}

func (l *Loader) fallback(res LoadResult, err error, notice string) LoadResult {
	if l.logger != nil {
		l.logger.Warn("Falling back to sample data", "user", res.Username, "error", err)
	}
	res.Username = FallbackUser
	res.Profile = FallbackProfile()
	res.Repos = Normalize(FallbackUser, FallbackRepos(), NormalizeOptions{Cover: l.opts.Cover})
	res.Readme = FallbackReadme()
	res.Fallback = true
	res.Notice = notice
	res.Err = err
	return res
}
