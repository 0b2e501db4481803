package github

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

// AuthTokenSource names where a token came from, e.g. "env:GITHUB_TOKEN".
// It is safe to print.
type AuthTokenSource string

const AuthTokenSourceGitHubCLI AuthTokenSource = "gh"

// tokenEnvVars are consulted in order before falling back to the GitHub CLI.
var tokenEnvVars = []string{"REPOLINT_GITHUB_TOKEN", "GITHUB_TOKEN", "GH_TOKEN"}

const ghAuthTimeout = 5 * time.Second

// AuthToken is a resolved GitHub credential. The zero value means anonymous.
type AuthToken struct {
	Value  string
	Source AuthTokenSource
}

func (t AuthToken) Anonymous() bool {
	return t.Value == ""
}

// ResolveAuthToken looks for a token in REPOLINT_GITHUB_TOKEN, GITHUB_TOKEN,
// GH_TOKEN and finally `gh auth token`. Finding none is not an error.
func ResolveAuthToken(ctx context.Context) (AuthToken, error) {
	for _, name := range tokenEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return AuthToken{Value: v, Source: AuthTokenSource("env:" + name)}, nil
		}
	}

	tok, err := tokenFromGitHubCLI(ctx)
	if err != nil || tok == "" {
		return AuthToken{}, err
	}
	return AuthToken{Value: tok, Source: AuthTokenSourceGitHubCLI}, nil
}

func tokenFromGitHubCLI(ctx context.Context) (string, error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return "", nil
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ghAuthTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "gh", "auth", "token", "-h", "github.com")
	cmd.Env = withEnv(os.Environ(), "GH_PAGER", "cat")
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// Not logged in. gh's stderr is not surfaced.
		return "", nil
	}

	tok := strings.TrimSpace(string(out))
	if strings.ContainsAny(tok, " \t\n\r") {
		return "", errors.New("invalid token returned by gh: contains whitespace")
	}
	return tok, nil
}

// withEnv returns env with key set to value, dropping earlier entries for key.
func withEnv(env []string, key, value string) []string {
	prefix := key + "="
	out := make([]string, 0, len(env)+1)
	for _, entry := range env {
		if !strings.HasPrefix(entry, prefix) {
			out = append(out, entry)
		}
	}
	return append(out, prefix+value)
}
