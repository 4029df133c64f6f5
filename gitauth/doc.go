// Package gitauth chooses go-git authentication methods for git repository
// locators.
//
// Use with gitable.Endpoint to clone or fetch a repository with go-git:
//
//	l, _ := gitable.Parse("git@github.com:hairyhenderson/go-gitable.git")
//	auth, err := gitauth.AutoAuthenticator().Authenticate(l)
//	if err != nil {
//		return err
//	}
//
//	ep, _ := gitable.Endpoint(l)
//	repo, err := git.Clone(storer, nil, &git.CloneOptions{URL: ep.String(), Auth: auth})
//
// Scp-style locators are authenticated like ssh:// locators. Credentials can
// be given in the locator itself, as arguments to the Authenticator
// constructors, or in the environment (GIT_HTTP_PASSWORD, GIT_HTTP_TOKEN,
// GIT_SSH_KEY, or their _FILE variants).
package gitauth
