package linter

import (
	"context"

	"repolint/internal/check"
)

func (r *run) lintSecurity(ctx context.Context) (Security, error) {
	policy, err := check.Any(ctx,
		check.Exists(r.insensitive(r.p.SecurityFiles)),
		check.Matches(r.readme(), r.p.SecurityHeader),
		r.communityHealthFile(SecurityHealthFile),
	)
	if err != nil {
		return Security{}, err
	}
	return Security{SecurityPolicy: policy}, nil
}
