package export

import (
	"net/url"
	"strings"

	"emperror.dev/errors"
)

// ErrNoUser is returned by ParseShareURL when the link names no user.
const ErrNoUser = errors.Sentinel("share link does not name a user")

// ShareURL returns base with the user query parameter set, e.g.
// https://gitfolio.dev/?user=octocat. Other query parameters are kept.
func ShareURL(base, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrNoUser
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrapf(err, "invalid share base URL %q", base)
	}
	q := u.Query()
	q.Set("user", username)
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String(), nil
}

// ParseShareURL extracts the username from a share link. Plain GitHub
// profile URLs (https://github.com/octocat) are accepted too.
func ParseShareURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", errors.Wrapf(err, "invalid share link %q", raw)
	}

	if user := strings.TrimSpace(u.Query().Get("user")); user != "" {
		return user, nil
	}

	if strings.EqualFold(u.Hostname(), "github.com") {
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 1 && parts[0] != "" {
			return parts[0], nil
		}
	}
	return "", ErrNoUser
}
