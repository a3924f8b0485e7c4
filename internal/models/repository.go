package models

import "time"

// Repository is a single public project as shown on a portfolio card.
// Timestamps are kept as parsed instants; formatting happens at render time.
type Repository struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	HTMLURL         string    `json:"html_url"`
	HomepageURL     string    `json:"homepage"`
	ImageURL        string    `json:"image_url,omitempty"`
	Fork            bool      `json:"fork"`
}

// DemoURL returns the homepage when one is set, otherwise the repository page.
func (r Repository) DemoURL() string {
	if r.HomepageURL != "" {
		return r.HomepageURL
	}
	return r.HTMLURL
}

// HasDemo reports whether the project advertises a live homepage.
func (r Repository) HasDemo() bool {
	return r.HomepageURL != ""
}

// Stats summarizes the full (unfiltered) repository list.
type Stats struct {
	Repositories int `json:"repositories"`
	Stars        int `json:"stars"`
	Forks        int `json:"forks"`
	Languages    int `json:"languages"`
}
