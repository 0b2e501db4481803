package linter

import (
	"context"

	"repolint/internal/check"
)

func (r *run) lintDocumentation(ctx context.Context) (Documentation, error) {
	var (
		doc Documentation
		err error
	)
	readme := r.readme()

	doc.Adopters, err = check.Any(ctx,
		check.Exists(r.insensitive(r.p.AdoptersFiles)),
		check.Matches(readme, r.p.AdoptersHeader),
	)
	if err != nil {
		return Documentation{}, err
	}

	doc.CodeOfConduct, err = check.Any(ctx,
		check.Exists(r.insensitive(r.p.CodeOfConductFiles)),
		check.Matches(readme, r.p.CodeOfConductHeader),
		r.communityHealthFile(CodeOfConductHealthFile),
	)
	if err != nil {
		return Documentation{}, err
	}

	doc.Contributing, err = check.Any(ctx,
		check.Exists(r.insensitive(r.p.ContributingFiles)),
		check.Matches(readme, r.p.ContributingHeader),
		r.communityHealthFile(ContributingHealthFile),
	)
	if err != nil {
		return Documentation{}, err
	}

	doc.Changelog, err = check.Any(ctx,
		check.Exists(r.insensitive(r.p.ChangelogFiles)),
		check.Matches(readme, r.p.ChangelogHeader),
		func(ctx context.Context) (bool, error) {
			return r.opts.Gateway.LastReleaseBodyMatches(ctx, r.p.ChangelogRelease)
		},
	)
	if err != nil {
		return Documentation{}, err
	}

	doc.Governance, err = check.Any(ctx,
		check.Exists(r.insensitive(r.p.GovernanceFiles)),
		check.Matches(readme, r.p.GovernanceHeader),
	)
	if err != nil {
		return Documentation{}, err
	}

	doc.Maintainers, err = check.PathExists(r.insensitive(r.p.MaintainersFiles))
	if err != nil {
		return Documentation{}, err
	}

	doc.Readme, err = check.PathExists(readme)
	if err != nil {
		return Documentation{}, err
	}

	doc.Roadmap, err = check.Any(ctx,
		check.Exists(r.insensitive(r.p.RoadmapFiles)),
		check.Matches(readme, r.p.RoadmapHeader),
	)
	if err != nil {
		return Documentation{}, err
	}

	doc.Website = r.ghMD != nil && r.ghMD.Homepage != ""

	return doc, nil
}
