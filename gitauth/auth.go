package gitauth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	gitable "github.com/hairyhenderson/go-gitable"
	"github.com/hairyhenderson/go-gitable/internal/env"
)

// ErrInteractiveAuth is returned when a locator names a user but no password
// is available, so git would prompt for one.
var ErrInteractiveAuth = errors.New("interactive authentication required")

// Authenticator provides an AuthMethod for a given Locator. If the Locator is
// not appropriate for the given AuthMethod, an error will be returned.
type Authenticator interface {
	Authenticate(l gitable.Locator) (AuthMethod, error)
}

// AuthenticatorFunc adapts a function to an Authenticator.
type AuthenticatorFunc func(l gitable.Locator) (AuthMethod, error)

func (f AuthenticatorFunc) Authenticate(l gitable.Locator) (AuthMethod, error) {
	return f(l)
}

// AuthMethod is an HTTP or SSH authentication method that can be used to
// authenticate to a git repository.
// See the github.com/go-git/go-git module for details.
type AuthMethod interface {
	fmt.Stringer
	Name() string
}

var (
	_ Authenticator = AuthenticatorFunc(nil)
	_ Authenticator = (*autoAuthenticator)(nil)
	_ Authenticator = (*basicAuthenticator)(nil)
	_ Authenticator = (*tokenAuthenticator)(nil)
	_ Authenticator = (*publicKeyAuthenticator)(nil)
	_ Authenticator = (*sshAgentAuthenticator)(nil)
)

// scheme returns the transport scheme git would use for l, with any "git+"
// prefix removed. Scp-style locators use "ssh".
func scheme(l gitable.Locator) string {
	return strings.TrimPrefix(l.InferredScheme(), "git+")
}

func isHTTP(l gitable.Locator) bool {
	s := scheme(l)

	return s == "http" || s == "https"
}

// credentials returns the unescaped user and password from l
func credentials(l gitable.Locator) (user, password string) {
	return unescape(l.User()), unescape(l.Password())
}

func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}

	return s
}

// AutoAuthenticator is an Authenticator that chooses the first available
// authenticator for the given Locator and the environment variables, in this
// order of precedence:
//
//	BasicAuthenticator
//	TokenAuthenticator
//	PublicKeyAuthenticator
//	SSHAgentAuthenticator
//	NoopAuthenticator
//
// When the Locator names a user with no password and none is available from
// the environment, ErrInteractiveAuth is returned rather than falling back to
// a later authenticator.
func AutoAuthenticator() Authenticator {
	return newAutoAuthenticator(env.OS())
}

func newAutoAuthenticator(src env.Source) *autoAuthenticator {
	return &autoAuthenticator{
		authenticators: []Authenticator{
			&basicAuthenticator{env: src},
			&tokenAuthenticator{env: src},
			&publicKeyAuthenticator{env: src},
			&sshAgentAuthenticator{},
			NoopAuthenticator(),
		},
	}
}

type autoAuthenticator struct {
	authenticators []Authenticator
}

func (a *autoAuthenticator) Authenticate(l gitable.Locator) (AuthMethod, error) {
	if l == nil {
		return nil, errors.New("no locator given")
	}

	for _, auth := range a.authenticators {
		method, err := auth.Authenticate(l)
		if err == nil {
			return method, nil
		}

		if errors.Is(err, ErrInteractiveAuth) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("no authentication method available for %s", l)
}

// NoopAuthenticator is an Authenticator that will not attempt any
// authentication methods. Can only be used with 'git', 'file', 'http', and
// 'https' locators.
//
// Useful when desiring no authentication at all (e.g. for local repositories,
// or to ensure that target repositories are public).
func NoopAuthenticator() Authenticator {
	return AuthenticatorFunc(func(l gitable.Locator) (AuthMethod, error) {
		switch s := scheme(l); s {
		case "git", "file", "http", "https":
			return nil, nil
		default:
			return nil, fmt.Errorf("no-op authentication not supported for scheme %q", s)
		}
	})
}

// BasicAuthenticator is an Authenticator that provides HTTP Basic
// Authentication. Use only with HTTP/HTTPS locators.
//
// A username or password provided in the locator will override the
// credentials provided here.
// If password is omitted, the environment variable GIT_HTTP_PASSWORD will be
// used.
// If GIT_HTTP_PASSWORD_FILE is set, the password will be read from the
// referenced file on the local filesystem.
//
// If the locator names a user but no password can be found,
// ErrInteractiveAuth is returned.
//
// For authenticating with GitHub, Bitbucket, GitLab, and other popular git
// hosts, use this with a personal access token, with username 'git'.
func BasicAuthenticator(username, password string) Authenticator {
	return &basicAuthenticator{env: env.OS(), username: username, password: password}
}

type basicAuthenticator struct {
	env                env.Source
	username, password string
}

func (a *basicAuthenticator) Authenticate(l gitable.Locator) (AuthMethod, error) {
	if !isHTTP(l) {
		return nil, fmt.Errorf("basic authentication not supported for scheme %q", scheme(l))
	}

	username, password := credentials(l)
	if username == "" {
		username = a.username
	}

	// password can come from the locator, the one provided, or the environment
	if password == "" {
		password = a.password
	}

	if password == "" {
		password = a.env.Get("GIT_HTTP_PASSWORD")
	}

	if password == "" && l.IsInteractiveAuthenticated() {
		return nil, fmt.Errorf("%w: no password for %q at %s", ErrInteractiveAuth, username, l.NormalizedHost())
	}

	if username == "" && password == "" {
		return nil, nil
	}

	return &githttp.BasicAuth{Username: username, Password: password}, nil
}

// TokenAuthenticator is an Authenticator that uses HTTP token authentication
// (also known as bearer authentication).
//
// If token is omitted, the environment variable GIT_HTTP_TOKEN will be used.
// If GIT_HTTP_TOKEN_FILE is set, the token will be read from the referenced
// file on the local filesystem.
//
// Note: If you are looking to use OAuth tokens with popular servers (e.g.
// GitHub, Bitbucket, GitLab), use BasicAuthenticator instead. These servers
// use HTTP Basic Authentication, with the OAuth token as user or password.
func TokenAuthenticator(token string) Authenticator {
	return &tokenAuthenticator{env: env.OS(), token: token}
}

type tokenAuthenticator struct {
	env   env.Source
	token string
}

func (a *tokenAuthenticator) Authenticate(l gitable.Locator) (AuthMethod, error) {
	if !isHTTP(l) {
		return nil, fmt.Errorf("token authentication not supported for scheme %q", scheme(l))
	}

	token := a.token
	if token == "" {
		token = a.env.Get("GIT_HTTP_TOKEN")
	}

	if token == "" {
		return nil, errors.New("token may not be empty for token authentication")
	}

	return &githttp.TokenAuth{Token: token}, nil
}

// PublicKeyAuthenticator provides an Authenticator that uses SSH public key
// authentication. Use only with SSH locators, including scp-style ones.
//
// The privKey is a PEM-encoded private key. Set keyPass if privKey is a
// password-encrypted PEM block, otherwise leave it empty.
//
// If privKey is omitted, the GIT_SSH_KEY environment variable will be used. For
// ease of use, the variable may optionally be base64-encoded. If
// GIT_SSH_KEY_FILE is set, the key will be read from the referenced file on the
// local filesystem.
func PublicKeyAuthenticator(username string, privKey []byte, keyPass string) Authenticator {
	return &publicKeyAuthenticator{
		env: env.OS(), username: username, privKey: privKey, keyPass: keyPass,
	}
}

type publicKeyAuthenticator struct {
	env      env.Source
	username string
	keyPass  string
	privKey  []byte
}

func (a *publicKeyAuthenticator) Authenticate(l gitable.Locator) (AuthMethod, error) {
	if !l.IsSSH() {
		return nil, fmt.Errorf("public key authentication not supported for scheme %q", scheme(l))
	}

	username, _ := credentials(l)
	if username == "" {
		username = a.username
	}

	k := a.privKey
	if len(k) == 0 {
		envKey := a.env.Get("GIT_SSH_KEY")

		var err error

		k, err = base64.StdEncoding.DecodeString(envKey)
		if err != nil {
			// not base64, so probably a PEM block read from a file
			k = []byte(envKey)
		}
	}

	if len(k) == 0 {
		return nil, errors.New("private key may not be empty for public key authentication")
	}

	return ssh.NewPublicKeys(username, k, a.keyPass)
}

// SSHAgentAuthenticator is an Authenticator that uses the ssh-agent protocol.
// Use only with SSH locators, including scp-style ones.
//
// If username is not provided or present in the locator, the user will be
// the same as the current user.
//
// This method depends on the SSH_AUTH_SOCK environment variable being correctly
// configured by the SSH agent. See ssh-agent(1) for details.
func SSHAgentAuthenticator(username string) Authenticator {
	return &sshAgentAuthenticator{username: username}
}

type sshAgentAuthenticator struct {
	username string
}

func (a *sshAgentAuthenticator) Authenticate(l gitable.Locator) (AuthMethod, error) {
	if !l.IsSSH() {
		return nil, fmt.Errorf("ssh-agent authentication not supported for scheme %q", scheme(l))
	}

	username, _ := credentials(l)
	if username == "" {
		username = a.username
	}

	return ssh.NewSSHAgentAuth(username)
}
