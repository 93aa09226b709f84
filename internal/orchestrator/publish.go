package orchestrator

import (
	"context"
	"fmt"

	"github.com/daydemir/herbie/internal/hosting"
	"github.com/daydemir/herbie/internal/registry"
	"go.uber.org/zap"
)

// publish creates the remote repository. Failure is noted, never fatal.
func (o *Orchestrator) publish(ctx context.Context, ec *ExecutionContext, req Request) (*hosting.Repository, bool) {
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("%s project generated by herbie", req.Framework)
	}

	var repo *hosting.Repository
	rec := o.track(ctx, ec, "create repository "+req.ProjectName, func(ctx context.Context) error {
		r, err := o.host.CreateRepository(ctx, req.ProjectName, description, req.Private)
		repo = r
		return err
	})
	if !rec.Success {
		ec.Degraded = true
		ec.note("The remote repository was not created: %s", rec.Stderr)
		o.logger.Warn("repository creation failed", zap.String("run_id", ec.RunID), zap.String("error", rec.Stderr))
		return nil, false
	}

	if repo == nil {
		// dry-run executors skip the API call
		repo = &hosting.Repository{
			Owner:    "simulated",
			Name:     req.ProjectName,
			URL:      "https://github.com/simulated/" + req.ProjectName,
			CloneURL: "https://github.com/simulated/" + req.ProjectName + ".git",
		}
	}
	ec.RemoteURL = repo.URL
	return repo, true
}

// upload pushes the scaffolded project with git, falling back to per-file
// API uploads. Every failure here leaves the run successful but degraded.
func (o *Orchestrator) upload(ctx context.Context, ec *ExecutionContext, repo *hosting.Repository, user string, req Request, desc registry.FrameworkDescriptor) {
	if o.pushWithGit(ctx, ec, repo, user, req, desc) {
		return
	}

	if !o.policy.Fallback {
		ec.Degraded = true
		ec.note("git push failed and fallback upload is disabled; the remote repository %s is empty.", repo.URL)
		return
	}

	uploaded, failed := o.uploadFiles(ctx, ec, repo)
	switch {
	case failed == 0 && uploaded > 0:
		ec.note("git push failed; uploaded %d files through the hosting API instead.", uploaded)
	case uploaded == 0 && failed == 0:
		ec.Degraded = true
		ec.note("git push failed and there were no files to upload through the hosting API.")
	default:
		ec.Degraded = true
		ec.note("Code upload is incomplete: git push failed and %d of %d files could not be uploaded through the hosting API.",
			failed, uploaded+failed)
	}
}

// pushWithGit runs the git sequence in the project directory. It returns true once pushed.
func (o *Orchestrator) pushWithGit(ctx context.Context, ec *ExecutionContext, repo *hosting.Repository, user string, req Request, desc registry.FrameworkDescriptor) bool {
	pushURL := repo.CloneURL
	if o.token != "" {
		if u, err := hosting.AuthenticatedCloneURL(repo.CloneURL, user, o.token); err == nil {
			pushURL = u
		} else {
			o.logger.Warn("using unauthenticated push url", zap.Error(err))
		}
	}

	q := func(s string) string { return quote(o.goos, s) }
	message := fmt.Sprintf("Initial commit: %s %s project", req.ProjectName, desc.Name)

	sequence := []string{
		"git init",
		"git config user.name " + q(user),
		"git config user.email " + q(hosting.NoReplyEmail(user)),
		"git remote add origin " + q(pushURL) + " || git remote set-url origin " + q(pushURL),
		"git add .",
		// scaffold tools such as create-react-app already commit
		"git diff --cached --quiet || git commit -m " + q(message),
		"git branch -M main",
	}
	for _, cmd := range sequence {
		rec := o.run(ctx, ec, cmd, o.policy.Timeouts.VCS, ec.LocalPath)
		if !rec.Success {
			ec.note("git step %q failed: %s", rec.Command, rec.Output())
			return false
		}
	}

	var last string
	for attempt := 1; attempt <= o.policy.PushAttempts; attempt++ {
		rec := o.run(ctx, ec, "git push -u origin main", o.policy.Timeouts.VCS, ec.LocalPath)
		if rec.Success {
			return true
		}
		last = rec.Output()
		o.logger.Warn("git push failed",
			zap.String("run_id", ec.RunID),
			zap.Int("attempt", attempt),
			zap.Int("exit_code", rec.ExitCode),
		)
	}
	ec.note("git push failed after %d attempts: %s", o.policy.PushAttempts, last)
	return false
}

// commitAuthor picks the git identity: configured author, then host login, then
// repo owner. The login lookup is tracked so dry runs skip the API call.
func (o *Orchestrator) commitAuthor(ctx context.Context, ec *ExecutionContext, repo *hosting.Repository) string {
	if o.author != "" {
		return o.author
	}
	var login string
	rec := o.track(ctx, ec, "look up hosting account", func(ctx context.Context) error {
		name, err := o.host.Username(ctx)
		login = name
		return err
	})
	if rec.Success && login != "" {
		return login
	}
	if repo.Owner != "" {
		return repo.Owner
	}
	return "herbie"
}
