// Package vcs derives a version descriptor from the git work tree of a sketch.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/thirukguru/make-git-version/model"
	"golang.org/x/sync/errgroup"
)

const dirtySuffix = "-dirty"

var (
	describeArgs = []string{"describe", "--tags", "--always", "--dirty"}
	commitArgs   = []string{"rev-parse", "HEAD"}
	branchArgs   = []string{"rev-parse", "--abbrev-ref", "HEAD"}
)

// NewService creates a git service backed by the git binary on PATH.
func NewService(timeout time.Duration) Service {
	return NewServiceWithClient(&execClient{binary: "git"}, timeout)
}

// NewServiceWithClient creates a git service using the given client.
func NewServiceWithClient(client GitClientAPI, timeout time.Duration) Service {
	return &service{
		client:  client,
		timeout: timeout,
	}
}

// Describe returns the descriptor printed by `git describe --tags --always --dirty`
// for dir. The commit and branch are collected alongside on a best-effort basis.
func (s *service) Describe(ctx context.Context, dir string) (model.Descriptor, error) {
	var (
		g                      errgroup.Group
		describe, commit, head string
	)

	g.Go(func() error {
		out, err := s.run(ctx, dir, describeArgs...)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if out == "" {
			return fmt.Errorf("%w: empty describe output", ErrUnavailable)
		}
		describe = out
		return nil
	})
	g.Go(func() error {
		out, err := s.run(ctx, dir, commitArgs...)
		if err != nil {
			log.WithError(err).Debug("git rev-parse HEAD failed")
			return nil
		}
		commit = out
		return nil
	})
	g.Go(func() error {
		out, err := s.run(ctx, dir, branchArgs...)
		if err != nil {
			log.WithError(err).Debug("git branch lookup failed")
			return nil
		}
		head = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.Descriptor{}, err
	}

	// Detached checkouts report the literal "HEAD".
	if head == "HEAD" {
		head = ""
	}

	return model.Descriptor{
		Value:  describe,
		Source: model.SourceGit,
		Commit: commit,
		Branch: head,
		Dirty:  strings.HasSuffix(describe, dirtySuffix),
	}, nil
}

func (s *service) run(ctx context.Context, dir string, args ...string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	out, err := s.client.Run(ctx, dir, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

type execClient struct {
	binary string
}

func (c *execClient) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}
