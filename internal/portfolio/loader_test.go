package portfolio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesavant42/gitfolio/internal/api"
	"github.com/thesavant42/gitfolio/internal/models"
)

// fakeFetcher serves canned responses and records README lookups in order.
type fakeFetcher struct {
	userErr   error
	repos     []models.Repository
	reposErr  error
	recent    []string
	readmes   map[string]string
	readmeLog []string
	requested int
}

func (f *fakeFetcher) FetchUser(ctx context.Context, username string) (*models.UserProfile, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return &models.UserProfile{Login: username, Name: "Test User"}, nil
}

func (f *fakeFetcher) FetchRepos(ctx context.Context, username string) ([]models.Repository, error) {
	return f.repos, f.reposErr
}

func (f *fakeFetcher) FetchRecentRepoNames(ctx context.Context, username string, n int) ([]string, error) {
	f.requested = n
	if len(f.recent) > n {
		return f.recent[:n], nil
	}
	return f.recent, nil
}

func (f *fakeFetcher) FetchReadme(ctx context.Context, owner, repo string) (models.Readme, error) {
	f.readmeLog = append(f.readmeLog, repo)
	content, ok := f.readmes[repo]
	if !ok {
		return models.Readme{}, &api.FetchError{Op: "get readme", Kind: api.KindNotFound, Status: 404}
	}
	return models.Readme{Owner: owner, Repo: repo, Content: content, Found: true}, nil
}

func TestLoadNotFoundFallsBack(t *testing.T) {
	f := &fakeFetcher{userErr: &api.FetchError{Op: "get user", Kind: api.KindNotFound, Status: 404}}
	l := NewLoader(f, NormalizeOptions{}, nil)

	res := l.Load(context.Background(), 1, "nobody-here")

	assert.True(t, res.Fallback)
	assert.Len(t, res.Repos, 3)
	assert.Contains(t, res.Notice, "not found")
	assert.True(t, api.IsNotFound(res.Err))
	assert.Equal(t, FallbackUser, res.Profile.Login)
	assert.True(t, res.Readme.Found)
}

func TestLoadNetworkErrorFallsBack(t *testing.T) {
	f := &fakeFetcher{reposErr: &api.FetchError{Op: "list repositories", Kind: api.KindNetwork, Status: 500}}
	l := NewLoader(f, NormalizeOptions{}, nil)

	res := l.Load(context.Background(), 1, "octocat")

	assert.True(t, res.Fallback)
	assert.Len(t, res.Repos, 3)
	assert.ErrorIs(t, res.Err, api.ErrNetwork)
}

func TestLoadZeroRepositories(t *testing.T) {
	l := NewLoader(&fakeFetcher{}, NormalizeOptions{}, nil)

	res := l.Load(context.Background(), 1, "empty")

	assert.False(t, res.Fallback)
	assert.Empty(t, res.Repos)
	assert.ErrorIs(t, res.Err, ErrEmptyResult)
	assert.Equal(t, "No public repositories found", res.Notice)

	s := NewState(models.DefaultViewState(), false)
	s.Begin()
	res.Generation = s.Generation()
	require.True(t, s.Replace(res))
	assert.Equal(t, models.Stats{}, s.Stats)
	assert.ErrorIs(t, s.Err(), ErrEmptyResult)
}

func TestLoadReposNotFound(t *testing.T) {
	f := &fakeFetcher{reposErr: &api.FetchError{Op: "list repositories", Kind: api.KindNotFound, Status: 404}}
	res := NewLoader(f, NormalizeOptions{}, nil).Load(context.Background(), 1, "octocat")

	assert.False(t, res.Fallback)
	assert.Empty(t, res.Repos)
	assert.Equal(t, "User has no public repositories", res.Notice)
}

func TestLoadEmptyUsername(t *testing.T) {
	f := &fakeFetcher{userErr: api.ErrEmptyUsername}
	res := NewLoader(f, NormalizeOptions{}, nil).Load(context.Background(), 1, "")

	assert.False(t, res.Fallback)
	assert.ErrorIs(t, res.Err, api.ErrEmptyUsername)
}

func TestLoadSuccess(t *testing.T) {
	f := &fakeFetcher{
		repos:   []models.Repository{{Name: "octocat", Description: "profile"}, {Name: "tool", Description: "x", Fork: true}},
		recent:  []string{"tool"},
		readmes: map[string]string{"octocat": "# Hi"},
	}
	l := NewLoader(f, NormalizeOptions{HideForksAndUndescribed: true}, nil)

	res := l.Load(context.Background(), 7, "octocat")

	assert.Equal(t, uint64(7), res.Generation)
	assert.False(t, res.Fallback)
	assert.NoError(t, res.Err)
	assert.Equal(t, []string{"octocat"}, names(res.Repos))
	assert.True(t, res.Readme.Found)
	assert.Equal(t, "# Hi", res.Readme.Content)
}

func TestFindReadmeOrder(t *testing.T) {
	f := &fakeFetcher{
		recent:  []string{"a", "octocat", "b", "c"},
		readmes: map[string]string{"c": "found in c", "d": "never reached"},
	}

	r := FindReadme(context.Background(), f, "octocat", nil)

	assert.True(t, r.Found)
	assert.Equal(t, "c", r.Repo)
	assert.Equal(t, []string{"octocat", "a", "b", "c"}, f.readmeLog)
}

func TestFindReadmeGivesUp(t *testing.T) {
	recent := []string{"r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8", "r9", "r10", "r11"}
	f := &fakeFetcher{recent: recent}

	r := FindReadme(context.Background(), f, "octocat", nil)

	assert.False(t, r.Found)
	// profile repo plus the ten most recent
	assert.Equal(t, api.ReadmeCandidates, f.requested)
	assert.Len(t, f.readmeLog, 11)
	assert.NotContains(t, f.readmeLog, "r11")
}

func TestFindReadmeStopsOnCancel(t *testing.T) {
	f := &fakeFetcher{recent: []string{"a", "b"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := FindReadme(ctx, f, "octocat", nil)

	assert.False(t, r.Found)
	assert.Equal(t, []string{"octocat"}, f.readmeLog)
}
