// Package gitable parses, normalizes, modifies and compares git repository
// locators: the strings given to "git clone" and "git remote add" to say where
// a repository can be fetched from.
//
// # Locator Format
//
// Two families of locators are supported. Standard locators are URIs, or
// local paths:
//
//	https://github.com/hairyhenderson/go-gitable.git
//	ssh://git@example.com:2222/srv/repos/project.git
//	git+ssh://git@example.com/project.git
//	git://example.com/project.git
//	file:///srv/repos/project.git
//	/srv/repos/project.git
//
// Scp-style locators have no scheme, and separate the host from the path with
// a ":" instead of a "/":
//
//	git@github.com:hairyhenderson/go-gitable.git
//	example.com:project.git
//	git@example.com:/srv/repos/project.git
//
// The path of an scp-style locator may be relative (to the user's home
// directory, usually) or absolute. The distinction is kept when parsing and
// rendering, so "host:repo.git" is never turned into "host:/repo.git".
//
// Windows drive paths such as "C:\repos\project" are never treated as
// scp-style locators.
//
// # Equivalence
//
// Two locators are equivalent when they refer to the same repository. See
// Equivalent for the exact rules. In particular, locators with absolute paths
// are considered equivalent regardless of user, which can give false
// positives on hosts where different accounts see different repositories at
// the same absolute path.
package gitable
