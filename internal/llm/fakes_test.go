package llm

import (
	"context"
	"errors"
)

// fakeBackend returns canned replies and records prompts
type fakeBackend struct {
	replies []string
	err     error
	prompts []string
}

func (f *fakeBackend) Name() string {
	return "fake"
}

func (f *fakeBackend) Infer(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("no reply configured")
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}
