package linter

import (
	"context"

	"repolint/internal/check"
)

// lintLegal looks for the trademark footer on the project website. Without a
// homepage there is nothing to fetch.
func (r *run) lintLegal(ctx context.Context) (Legal, error) {
	if r.ghMD == nil || r.ghMD.Homepage == "" {
		return Legal{}, nil
	}
	found, err := check.RemoteMatches(ctx, r.opts.HTTPClient, r.ghMD.Homepage, r.p.TrademarkFooter)
	if err != nil {
		return Legal{}, err
	}
	return Legal{TrademarkFooter: found}, nil
}
