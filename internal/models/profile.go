package models

import (
	"strings"
	"time"
)

// UserProfile holds the public account details rendered in the profile panel.
type UserProfile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	Location    string    `json:"location"`
	Company     string    `json:"company"`
	Blog        string    `json:"blog"`
	Twitter     string    `json:"twitter_username"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayName falls back to the login when the account has no name set.
func (p UserProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

// TwitterURL returns an empty string when no handle is set.
func (p UserProfile) TwitterURL() string {
	if p.Twitter == "" {
		return ""
	}
	return "https://twitter.com/" + p.Twitter
}

// BlogURL adds a scheme to bare hostnames like "example.dev".
func (p UserProfile) BlogURL() string {
	if p.Blog == "" {
		return ""
	}
	if strings.HasPrefix(p.Blog, "http://") || strings.HasPrefix(p.Blog, "https://") {
		return p.Blog
	}
	return "https://" + p.Blog
}

// Readme is the profile README located by the README search chain.
type Readme struct {
	Owner   string `json:"owner"`
	Repo    string `json:"repo"`
	Content string `json:"content"`
	Found   bool   `json:"found"`
}

// RecentUser is a previously loaded username persisted in the local database.
type RecentUser struct {
	Login    string
	LoadedAt time.Time
}
