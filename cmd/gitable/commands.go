package main

import (
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5/osfs"
	gitable "github.com/hairyhenderson/go-gitable"
	"github.com/hairyhenderson/go-gitable/remotes"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func parseArg(cmd *cobra.Command, s string) (gitable.Locator, error) {
	l, err := gitable.Parse(s)
	if err != nil {
		return nil, err
	}

	if l == nil {
		return nil, errors.New("empty locator")
	}

	trace.SpanFromContext(cmd.Context()).AddEvent("parsed", trace.WithAttributes(
		attribute.String("gitable.locator", l.String()),
		attribute.String("gitable.kind", l.Kind().String()),
	))

	return l, nil
}

func (a *app) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse LOCATOR...",
		Short: "Show the components of each locator",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}

			for _, arg := range args {
				l, err := parseArg(cmd, arg)
				if err != nil {
					return err
				}

				if err := p.print(newLocatorInfo(l)); err != nil {
					return err
				}
			}

			return p.close()
		},
	}
}

func (a *app) equivalentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equivalent A B",
		Short: "Report whether two locators refer to the same repository",
		Long: `Prints "true" and exits 0 when A and B refer to the same repository,
otherwise prints "false" and exits 1.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := parseArg(cmd, args[0])
			if err != nil {
				return err
			}

			eq := l.Equivalent(args[1])

			logrus.WithFields(logrus.Fields{
				"a": l.String(), "b": args[1], "equivalent": eq,
			}).Debug("compared locators")

			p, err := a.printer(cmd)
			if err != nil {
				return err
			}

			if err := p.print(eq); err != nil {
				return err
			}

			if err := p.close(); err != nil {
				return err
			}

			if !eq {
				return &exitError{code: 1}
			}

			return nil
		},
	}
}

func (a *app) webCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web LOCATOR",
		Short: "Print the URL of the repository's web page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := parseArg(cmd, args[0])
			if err != nil {
				return err
			}

			u := l.WebURL(a.v.GetString("scheme"))
			if u == nil {
				return fmt.Errorf("no web page for %s: locator has no host", l)
			}

			p, err := a.printer(cmd)
			if err != nil {
				return err
			}

			if err := p.print(u.String()); err != nil {
				return err
			}

			return p.close()
		},
	}

	cmd.Flags().String("scheme", "https", "Scheme of the web URL")
	_ = a.v.BindPFlag("scheme", cmd.Flags().Lookup("scheme"))

	return cmd
}

func (a *app) heuristicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heuristic LOCATOR...",
		Short: "Fix up mistyped or copy-pasted locators",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}

			for _, arg := range args {
				l, err := gitable.HeuristicParse(arg)
				if err != nil {
					return err
				}

				if l == nil {
					return errors.New("empty locator")
				}

				logrus.WithFields(logrus.Fields{"in": arg, "out": l.String()}).Debug("heuristic parse")

				if err := p.print(l.String()); err != nil {
					return err
				}
			}

			return p.close()
		},
	}
}

func (a *app) remotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remotes [DIR]",
		Short: "List the remotes of a local repository",
		Long: `Lists the remotes of the repository in DIR (the current directory by
default). With --match, prints only the name of the first remote equivalent
to the given locator, and exits 1 when there is none.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			rs, err := remotes.Open(osfs.New(dir))
			if err != nil {
				return err
			}

			p, err := a.printer(cmd)
			if err != nil {
				return err
			}

			if match := a.v.GetString("match"); match != "" {
				r, ok := rs.Find(match)
				if !ok {
					return &exitError{code: 1}
				}

				if err := p.print(r.Name); err != nil {
					return err
				}

				return p.close()
			}

			list := make(remoteList, 0, len(rs))
			for _, r := range rs {
				info := remoteInfo{Name: r.Name, URLs: r.URLs}
				if len(r.Locators) > 0 {
					info.Kind = r.Locators[0].Kind().String()
				}

				list = append(list, info)
			}

			if err := p.print(list); err != nil {
				return err
			}

			return p.close()
		},
	}

	cmd.Flags().String("match", "", "Only print the remote equivalent to this locator")
	_ = a.v.BindPFlag("match", cmd.Flags().Lookup("match"))

	return cmd
}
