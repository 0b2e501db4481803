package linter

import (
	"context"

	"repolint/internal/check"
)

func (r *run) lintBestPractices(ctx context.Context) (BestPractices, error) {
	var (
		bp  BestPractices
		err error
	)
	readme := r.readme()

	bp.ArtifactHubBadge, err = check.ContentMatches(readme, r.p.ArtifactHubBadge)
	if err != nil {
		return BestPractices{}, err
	}

	bp.CommunityMeeting, err = check.ContentMatches(readme, r.p.CommunityMeeting)
	if err != nil {
		return BestPractices{}, err
	}

	// A local history that cannot be read falls through to the pull request
	// check; a pull request check that cannot be read is an error.
	bp.DCO, err = check.Any(ctx,
		check.BestEffort(func(ctx context.Context) (bool, error) {
			return check.CommitsHaveDCOSignature(ctx, r.opts.Git, r.opts.Root)
		}),
		func(ctx context.Context) (bool, error) {
			return r.opts.Gateway.LastPullRequestHasCheck(ctx, DCOCheckName)
		},
	)
	if err != nil {
		return BestPractices{}, err
	}

	bp.OpenSSFBadge, err = check.ContentMatches(readme, r.p.OpenSSFBadge)
	if err != nil {
		return BestPractices{}, err
	}

	bp.RecentRelease, err = r.opts.Gateway.HasRecentRelease(ctx)
	if err != nil {
		return BestPractices{}, err
	}

	return bp, nil
}
