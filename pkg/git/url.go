package git

import (
	"fmt"
	"regexp"
	"strings"

	"thoreinstein.com/tend/pkg/errors"
)

// RemoteURL is a parsed remote in either HTTPS or SSH-shorthand form.
type RemoteURL struct {
	Host  string // e.g., "github.com"
	Owner string // org or user
	Repo  string // repository name, without .git
}

// Remote URL patterns. The SSH form is the scp-like shorthand
// (git@host:owner/repo), not a full ssh:// URL.
var (
	httpsURLRegex = regexp.MustCompile(`^(?:https?|git)://([a-zA-Z0-9._-]+)/([a-zA-Z0-9._-]+)/([a-zA-Z0-9._-]+?)(?:\.git)?$`)
	sshURLRegex   = regexp.MustCompile(`^git@([a-zA-Z0-9._-]+):([a-zA-Z0-9._-]+)/([a-zA-Z0-9._-]+?)(?:\.git)?$`)
)

// ParseRemoteURL parses an HTTPS (or http/git scheme) URL or an SSH
// shorthand into its host, owner and repo components.
func ParseRemoteURL(input string) (*RemoteURL, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New("empty remote URL")
	}

	if matches := httpsURLRegex.FindStringSubmatch(input); len(matches) == 4 {
		return &RemoteURL{Host: matches[1], Owner: matches[2], Repo: matches[3]}, nil
	}
	if matches := sshURLRegex.FindStringSubmatch(input); len(matches) == 4 {
		return &RemoteURL{Host: matches[1], Owner: matches[2], Repo: matches[3]}, nil
	}

	return nil, errors.Newf("unrecognized remote URL format: %q", input)
}

// InScheme renders the URL in the requested transport scheme. Only "https"
// and "ssh" are valid.
func (u *RemoteURL) InScheme(scheme string) (string, error) {
	switch scheme {
	case "https":
		return fmt.Sprintf("https://%s/%s/%s.git", u.Host, u.Owner, u.Repo), nil
	case "ssh":
		return fmt.Sprintf("git@%s:%s/%s.git", u.Host, u.Owner, u.Repo), nil
	default:
		return "", errors.NewConfigError("scheme", fmt.Sprintf("invalid scheme %q: must be https or ssh", scheme))
	}
}

// Insecure reports whether a remote URL uses a transport without
// authentication or encryption.
func Insecure(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "git://")
}
