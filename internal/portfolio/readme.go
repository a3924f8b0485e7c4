package portfolio

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/thesavant42/gitfolio/internal/api"
	"github.com/thesavant42/gitfolio/internal/models"
)

// ReadmeFetcher is the subset of the GitHub client the README search needs.
type ReadmeFetcher interface {
	FetchReadme(ctx context.Context, owner, repo string) (models.Readme, error)
	FetchRecentRepoNames(ctx context.Context, username string, n int) ([]string, error)
}

// FindReadme looks for a README in the profile repository (named like the
// user), then in the user's ten most recently updated repositories. Failures
// are logged and skipped; a miss returns Found=false.
func FindReadme(ctx context.Context, f ReadmeFetcher, username string, logger *log.Logger) models.Readme {
	if r, ok := tryReadme(ctx, f, username, username, logger); ok {
		return r
	}

	names, err := f.FetchRecentRepoNames(ctx, username, api.ReadmeCandidates)
	if err != nil {
		if logger != nil {
			logger.Debug("README candidates unavailable", "user", username, "error", err)
		}
		return models.Readme{Owner: username}
	}

	for _, name := range names {
		if ctx.Err() != nil {
			break
		}
		if strings.EqualFold(name, username) {
			continue
		}
		if r, ok := tryReadme(ctx, f, username, name, logger); ok {
			return r
		}
	}
	return models.Readme{Owner: username}
}

func tryReadme(ctx context.Context, f ReadmeFetcher, owner, repo string, logger *log.Logger) (models.Readme, bool) {
	r, err := f.FetchReadme(ctx, owner, repo)
	if err != nil {
		if logger != nil {
			logger.Debug("No README", "repo", owner+"/"+repo, "error", err)
		}
		return models.Readme{}, false
	}
	if strings.TrimSpace(r.Content) == "" {
		return models.Readme{}, false
	}
	r.Found = true
	return r, true
}
