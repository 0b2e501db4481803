// Package linter evaluates a repository checkout against the checklist and
// assembles the Report.
//
// Each checklist item is resolved from independent evidence sources consulted
// in priority order: the first source that finds evidence settles the item and
// later sources are never invoked. The documentation, best practices, security
// and legal sections run concurrently; the license section runs once they are
// done.
package linter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"golang.org/x/sync/errgroup"

	"repolint/internal/check"
	"repolint/internal/data/models"
	"repolint/internal/metadata"
)

// Gateway answers the remote questions about the repository being linted.
type Gateway interface {
	FetchRepositoryMetadata(ctx context.Context) (*models.RepositoryMetadata, error)
	HasDefaultCommunityHealthFile(ctx context.Context, md *models.RepositoryMetadata, name string) (bool, error)
	LastReleaseBodyMatches(ctx context.Context, re *regexp.Regexp) (bool, error)
	HasRecentRelease(ctx context.Context) (bool, error)
	LastPullRequestHasCheck(ctx context.Context, name string) (bool, error)
}

type Options struct {
	// Root is the local checkout of the repository.
	Root string
	// URL is the repository URL the Gateway was built for.
	URL string

	Gateway Gateway

	// Optional. Defaults: local git binary, http.DefaultClient, DefaultPatterns.
	Git        check.GitRunner
	HTTPClient *http.Client
	Patterns   *Patterns

	// Metadata overrides loading metadata.File from Root.
	Metadata *metadata.Metadata

	// Progress receives human-readable progress lines. Nil discards them.
	Progress io.Writer
}

func (o Options) withDefaults() (Options, error) {
	if o.Root == "" {
		return o, fmt.Errorf("lint: root path is required")
	}
	if o.Gateway == nil {
		return o, fmt.Errorf("lint: gateway is required")
	}
	if o.Git == nil {
		o.Git = check.NewLocalGitClient()
	}
	if o.HTTPClient == nil {
		o.HTTPClient = http.DefaultClient
	}
	if o.Patterns == nil {
		o.Patterns = DefaultPatterns()
	}
	if o.Progress == nil {
		o.Progress = io.Discard
	}
	return o, nil
}

// run carries the inputs shared by all sections of one lint run.
type run struct {
	opts Options
	p    *Patterns
	md   *metadata.Metadata
	ghMD *models.RepositoryMetadata
}

// Lint lints the repository checked out at opts.Root. It returns either a
// complete report or the first error encountered; never a partial report.
func Lint(ctx context.Context, opts Options) (*Report, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	md := opts.Metadata
	if md == nil {
		md, err = metadata.Load(opts.Root)
		if err != nil {
			return nil, err
		}
	}

	fmt.Fprintln(opts.Progress, "Fetching repository metadata...")
	ghMD, err := opts.Gateway.FetchRepositoryMetadata(ctx)
	if err != nil {
		return nil, err
	}

	r := &run{opts: opts, p: opts.Patterns, md: md, ghMD: ghMD}
	report := &Report{}

	fmt.Fprintln(opts.Progress, "Running checks...")
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := r.lintDocumentation(gctx)
		if err != nil {
			return fmt.Errorf("documentation: %w", err)
		}
		report.Documentation = s
		return nil
	})
	g.Go(func() error {
		s, err := r.lintBestPractices(gctx)
		if err != nil {
			return fmt.Errorf("best practices: %w", err)
		}
		report.BestPractices = s
		return nil
	})
	g.Go(func() error {
		s, err := r.lintSecurity(gctx)
		if err != nil {
			return fmt.Errorf("security: %w", err)
		}
		report.Security = s
		return nil
	})
	g.Go(func() error {
		s, err := r.lintLegal(gctx)
		if err != nil {
			return fmt.Errorf("legal: %w", err)
		}
		report.Legal = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lic, err := r.lintLicense()
	if err != nil {
		return nil, fmt.Errorf("license: %w", err)
	}
	report.License = lic

	return report, nil
}

// insensitive globs patterns under the root ignoring case.
func (r *run) insensitive(patterns []string) check.Globs {
	return check.Globs{Root: r.opts.Root, Patterns: patterns}
}

func (r *run) readme() check.Globs {
	return check.Globs{Root: r.opts.Root, Patterns: r.p.ReadmeFiles, CaseSensitive: true}
}

// communityHealthFile is the Source form of Gateway.HasDefaultCommunityHealthFile.
func (r *run) communityHealthFile(name string) check.Source {
	return func(ctx context.Context) (bool, error) {
		return r.opts.Gateway.HasDefaultCommunityHealthFile(ctx, r.ghMD, name)
	}
}
