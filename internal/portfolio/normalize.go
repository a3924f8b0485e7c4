package portfolio

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/thesavant42/gitfolio/internal/models"
)

// CoverStyle picks how card cover images are chosen.
type CoverStyle string

const (
	// CoverSocial uses GitHub's generated social preview for each repository.
	CoverSocial CoverStyle = "social"
	// CoverPalette cycles a fixed set of stock images by list position.
	CoverPalette CoverStyle = "palette"
)

// ParseCoverStyle defaults to CoverSocial for an empty string.
func ParseCoverStyle(s string) (CoverStyle, error) {
	switch CoverStyle(s) {
	case "", CoverSocial:
		return CoverSocial, nil
	case CoverPalette:
		return CoverPalette, nil
	}
	return "", fmt.Errorf("unknown cover style %q (want social or palette)", s)
}

var coverPalette = []string{
	"https://images.unsplash.com/photo-1555066931-4365d14bab8c?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1554224155-6726b3ff858f?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1607082350899-7e105aa886ae?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?auto=format&fit=crop&w=800&q=80",
}

// NormalizeOptions controls Normalize.
type NormalizeOptions struct {
	// HideForksAndUndescribed drops forks and repositories without a description.
	HideForksAndUndescribed bool
	Cover                   CoverStyle
}

// Normalize turns a raw repository list into the display list. The input is
// not modified.
func Normalize(username string, repos []models.Repository, opts NormalizeOptions) []models.Repository {
	out := make([]models.Repository, 0, len(repos))
	for _, r := range repos {
		if opts.HideForksAndUndescribed && (r.Fork || r.Description == "") {
			continue
		}
		r.ImageURL = coverImage(username, r.Name, len(out), opts.Cover)
		out = append(out, r)
	}
	return out
}

func coverImage(username, repo string, index int, style CoverStyle) string {
	if style == CoverPalette {
		return coverPalette[index%len(coverPalette)]
	}
	return SocialPreviewURL(username, repo)
}

// SocialPreviewURL is GitHub's generated Open Graph image for owner/repo.
func SocialPreviewURL(owner, repo string) string {
	return fmt.Sprintf("https://opengraph.githubassets.com/1/%s/%s", url.PathEscape(owner), url.PathEscape(repo))
}

// FormatDate renders a card date such as "Jan 15, 2024".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format("Jan 2, 2006")
}

// FormatJoinDate renders the profile "Joined" line, e.g. "January 2020".
func FormatJoinDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format("January 2006")
}

// FormatRelative renders t relative to now, e.g. "3 days ago".
func FormatRelative(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// FormatCount renders counters with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
