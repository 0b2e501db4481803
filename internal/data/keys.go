package data

const (
	// DepRepoMetadata represents the repository metadata (homepage, declared
	// license, default branch).
	DepRepoMetadata DependencyKey = "repo.metadata"

	// DepOrgCommunityHealthFile represents the presence of a default community
	// health file in the owner's ".github" repository.
	//
	// Params: ParamPath names the file, e.g. "SECURITY.md".
	DepOrgCommunityHealthFile DependencyKey = "org.community_health_file"

	// DepRepoLastRelease represents the most recent release, or nil when the
	// repository has none.
	DepRepoLastRelease DependencyKey = "repo.last_release"

	// DepRepoLastPullRequestChecks represents the checks reported on the head
	// commit of the most recent pull request.
	DepRepoLastPullRequestChecks DependencyKey = "repo.last_pull_request_checks"
)

// ParamPath is the file path parameter of DepOrgCommunityHealthFile.
const ParamPath = "path"
