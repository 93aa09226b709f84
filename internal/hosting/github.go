package hosting

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/daydemir/herbie/internal/config"
	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// GitHub implements Host with the GitHub REST API
type GitHub struct {
	client *github.Client
	logger *zap.Logger

	mu    sync.Mutex
	login string
}

// GitHubOption configures a GitHub host
type GitHubOption func(*GitHub)

// WithBaseURL points the client at another API endpoint (GitHub Enterprise, tests)
func WithBaseURL(rawURL string) GitHubOption {
	return func(g *GitHub) {
		if !strings.HasSuffix(rawURL, "/") {
			rawURL += "/"
		}
		if u, err := url.Parse(rawURL); err == nil {
			g.client.BaseURL = u
		}
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) GitHubOption {
	return func(g *GitHub) {
		g.logger = logger
	}
}

// NewGitHub creates a GitHub host authenticated with token
func NewGitHub(ctx context.Context, token config.Secret, opts ...GitHubOption) (*GitHub, error) {
	if !token.IsSet() {
		return nil, ErrNoCredential
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token.Value()})
	tc := oauth2.NewClient(ctx, ts)

	g := &GitHub{
		client: github.NewClient(tc),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Username returns the login the token belongs to. The result is cached.
func (g *GitHub) Username(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.login != "" {
		return g.login, nil
	}

	user, _, err := g.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	g.login = user.GetLogin()
	return g.login, nil
}

// CreateRepository creates a repository under the authenticated user
func (g *GitHub) CreateRepository(ctx context.Context, name, description string, private bool) (*Repository, error) {
	req := &github.Repository{
		Name:        github.String(name),
		Description: github.String(description),
		Private:     github.Bool(private),
		AutoInit:    github.Bool(false),
	}

	repo, _, err := g.client.Repositories.Create(ctx, "", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository %s: %w", name, err)
	}

	g.logger.Info("repository created",
		zap.String("repo", repo.GetFullName()),
		zap.Bool("private", repo.GetPrivate()),
	)

	return &Repository{
		Owner:    repo.GetOwner().GetLogin(),
		Name:     repo.GetName(),
		URL:      repo.GetHTMLURL(),
		CloneURL: repo.GetCloneURL(),
	}, nil
}

// UploadFile creates a file on the default branch through the contents API.
// On an empty repository the first upload creates the branch.
func (g *GitHub) UploadFile(ctx context.Context, repo *Repository, path string, content []byte) error {
	if repo == nil {
		return fmt.Errorf("no repository to upload %s to", path)
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String("Add " + path),
		Content: content,
	}
	if _, _, err := g.client.Repositories.CreateFile(ctx, repo.Owner, repo.Name, path, opts); err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return nil
}
