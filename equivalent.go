package gitable

import "strings"

// Equivalent reports whether a and b locate the same repository. b may be
// anything Parse accepts; if it can't be parsed, Equivalent returns false.
//
// Hosts must match exactly (after normalization). For GitHub, where the same
// repository is served over several protocols and scp-style paths may be
// given with or without a leading "/", the paths are compared without a
// leading "/" or ".git" extension, and users are ignored.
//
// Otherwise paths are compared without a trailing "/", and users must match
// unless a's path is absolute. A relative path is usually relative to the
// user's home directory, so the user is part of the repository's identity.
//
// Note that an absolute path is assumed to be the same repository for every
// user, which may not hold on multi-tenant hosts where distinct accounts can
// see distinct repositories at the same absolute path.
func Equivalent(a Locator, b any) bool {
	if a == nil {
		return false
	}

	other := ParseWhenValid(b)
	if other == nil {
		return false
	}

	if a.NormalizedHost() != other.NormalizedHost() {
		return false
	}

	if a.IsGitHub() && other.IsGitHub() {
		return githubPath(a.NormalizedPath()) == githubPath(other.NormalizedPath())
	}

	samePath := strings.TrimSuffix(a.NormalizedPath(), "/") == strings.TrimSuffix(other.NormalizedPath(), "/")
	absolute := strings.HasPrefix(a.Path(), "/")
	sameUser := a.NormalizedUser() == other.NormalizedUser()

	return samePath && (absolute || sameUser)
}

func githubPath(p string) string {
	return strings.TrimPrefix(trimGitSuffix(p), "/")
}
