// Package tests contains helpers shared by tests in this module.
package tests

import (
	"fmt"
	"strings"
)

// Remote describes a remote section for GitConfig.
type Remote struct {
	Name string
	URLs []string
}

// GitConfig renders the text of a git config file declaring the given
// remotes, each with the default fetch refspec.
func GitConfig(remotes ...Remote) string {
	var b strings.Builder

	b.WriteString("[core]\n\trepositoryformatversion = 0\n\tbare = false\n")

	for _, r := range remotes {
		fmt.Fprintf(&b, "[remote %q]\n", r.Name)

		for _, u := range r.URLs {
			fmt.Fprintf(&b, "\turl = %s\n", u)
		}

		fmt.Fprintf(&b, "\tfetch = +refs/heads/*:refs/remotes/%s/*\n", r.Name)
	}

	return b.String()
}
