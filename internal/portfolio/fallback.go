package portfolio

import (
	"time"

	"github.com/thesavant42/gitfolio/internal/models"
)

// FallbackUser is the login shown with the sample dataset.
const FallbackUser = "sampleuser"

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// FallbackRepos returns the sample repositories shown when live data cannot
// be fetched. Each call returns a fresh slice.
func FallbackRepos() []models.Repository {
	return []models.Repository{
		{
			Name:            "awesome-project",
			Description:     "An awesome project that does amazing things with modern web technologies",
			HTMLURL:         "https://github.com/sample/awesome-project",
			HomepageURL:     "https://awesome-project.com",
			Language:        "JavaScript",
			StargazersCount: 1234,
			ForksCount:      456,
			CreatedAt:       day(2021, time.March, 2),
			UpdatedAt:       day(2024, time.January, 15),
		},
		{
			Name:            "machine-learning-toolkit",
			Description:     "A comprehensive toolkit for machine learning applications",
			HTMLURL:         "https://github.com/sample/ml-toolkit",
			Language:        "Python",
			StargazersCount: 5678,
			ForksCount:      890,
			CreatedAt:       day(2020, time.June, 18),
			UpdatedAt:       day(2024, time.January, 14),
		},
		{
			Name:            "react-components",
			Description:     "Reusable React components for modern web applications",
			HTMLURL:         "https://github.com/sample/react-components",
			HomepageURL:     "https://react-components.dev",
			Language:        "TypeScript",
			StargazersCount: 2345,
			ForksCount:      234,
			CreatedAt:       day(2022, time.September, 9),
			UpdatedAt:       day(2024, time.January, 13),
		},
	}
}

// FallbackProfile is the sample profile paired with FallbackRepos.
func FallbackProfile() *models.UserProfile {
	return &models.UserProfile{
		Login:       FallbackUser,
		Name:        "Sample User",
		Bio:         "This is a sample user profile with demo data",
		AvatarURL:   "https://via.placeholder.com/150/6366f1/ffffff?text=Sample+User",
		HTMLURL:     "https://github.com/" + FallbackUser,
		Location:    "Internet",
		Blog:        "https://sampleuser.dev",
		Twitter:     "sampleuser",
		PublicRepos: 3,
		Followers:   100,
		Following:   50,
		CreatedAt:   day(2020, time.January, 1),
	}
}

const fallbackReadme = `# Sample User

## About Me

I'm a sample user demonstrating the GitHub portfolio viewer.

## Technologies & Tools

- JavaScript
- React
- Node.js
- Python
- Machine Learning

## How to reach me

- Website: https://sampleuser.dev
- Twitter: @sampleuser
- Email: sample@user.com
`

// FallbackReadme is the sample profile README.
func FallbackReadme() models.Readme {
	return models.Readme{Owner: FallbackUser, Repo: FallbackUser, Content: fallbackReadme, Found: true}
}
