// Package hosting talks to the remote code-hosting service.
package hosting

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrNoCredential is returned when no hosting token is configured
var ErrNoCredential = errors.New("hosting token not set")

// Repository is a remote repository created for a project
type Repository struct {
	Owner    string
	Name     string
	URL      string // web URL
	CloneURL string // https clone URL, without credentials
}

// Host is the hosting API used during publish and upload.
// Errors carry the service's message verbatim.
type Host interface {
	CreateRepository(ctx context.Context, name, description string, private bool) (*Repository, error)
	UploadFile(ctx context.Context, repo *Repository, path string, content []byte) error
	Username(ctx context.Context) (string, error)
}

// AuthenticatedCloneURL embeds user and token into an https clone URL for git push
func AuthenticatedCloneURL(cloneURL, user, token string) (string, error) {
	u, err := url.Parse(cloneURL)
	if err != nil {
		return "", fmt.Errorf("invalid clone url %q: %w", cloneURL, err)
	}
	if u.Scheme != "https" {
		return "", fmt.Errorf("clone url %q is not https", cloneURL)
	}
	u.User = url.UserPassword(user, token)
	return u.String(), nil
}

// NoReplyEmail is the commit email used for a hosting user
func NoReplyEmail(user string) string {
	return user + "@users.noreply.github.com"
}
