package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	gitable "github.com/hairyhenderson/go-gitable"
	"gopkg.in/yaml.v3"
)

// textWriter is implemented by values with a custom text rendering
type textWriter interface {
	writeText(w io.Writer) error
}

// printer writes values in one of the supported output formats. Multiple
// values are written as a stream: one JSON document per line, or YAML
// documents separated by "---".
type printer struct {
	w    io.Writer
	jenc *json.Encoder
	yenc *yaml.Encoder
}

func newPrinter(format string, w io.Writer) (*printer, error) {
	p := &printer{w: w}

	switch format {
	case "text", "":
	case "json":
		p.jenc = json.NewEncoder(w)
	case "yaml":
		p.yenc = yaml.NewEncoder(w)
		p.yenc.SetIndent(2)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	return p, nil
}

func (p *printer) print(v any) error {
	switch {
	case p.jenc != nil:
		return p.jenc.Encode(v)
	case p.yenc != nil:
		return p.yenc.Encode(v)
	}

	if tw, ok := v.(textWriter); ok {
		return tw.writeText(p.w)
	}

	_, err := fmt.Fprintln(p.w, v)

	return err
}

func (p *printer) close() error {
	if p.yenc != nil {
		return p.yenc.Close()
	}

	return nil
}

type locatorInfo struct {
	Locator        string `json:"locator" yaml:"locator"`
	Kind           string `json:"kind" yaml:"kind"`
	Scheme         string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	InferredScheme string `json:"inferredScheme,omitempty" yaml:"inferredScheme,omitempty"`
	User           string `json:"user,omitempty" yaml:"user,omitempty"`
	Host           string `json:"host,omitempty" yaml:"host,omitempty"`
	Port           string `json:"port,omitempty" yaml:"port,omitempty"`
	Path           string `json:"path" yaml:"path"`
	ProjectName    string `json:"projectName,omitempty" yaml:"projectName,omitempty"`
	WebURL         string `json:"webURL,omitempty" yaml:"webURL,omitempty"`
	GitHub         bool   `json:"github" yaml:"github"`
	SSH            bool   `json:"ssh" yaml:"ssh"`
	Authenticated  bool   `json:"authenticated" yaml:"authenticated"`
	Interactive    bool   `json:"interactiveAuthenticated" yaml:"interactiveAuthenticated"`
}

func newLocatorInfo(l gitable.Locator) locatorInfo {
	info := locatorInfo{
		Locator:        l.String(),
		Kind:           l.Kind().String(),
		Scheme:         l.NormalizedScheme(),
		InferredScheme: l.InferredScheme(),
		User:           l.NormalizedUser(),
		Host:           l.NormalizedHost(),
		Port:           l.NormalizedPort(),
		Path:           l.NormalizedPath(),
		ProjectName:    l.ProjectName(),
		GitHub:         l.IsGitHub(),
		SSH:            l.IsSSH(),
		Authenticated:  l.IsAuthenticated(),
		Interactive:    l.IsInteractiveAuthenticated(),
	}

	if u := l.WebURL(""); u != nil {
		info.WebURL = u.String()
	}

	return info
}

func (i locatorInfo) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", name, value)
		}
	}

	field("locator", i.Locator)
	field("kind", i.Kind)
	field("scheme", i.Scheme)
	field("inferred scheme", i.InferredScheme)
	field("user", i.User)
	field("host", i.Host)
	field("port", i.Port)
	field("path", i.Path)
	field("project name", i.ProjectName)
	field("web URL", i.WebURL)
	fmt.Fprintf(tw, "github:\t%t\n", i.GitHub)
	fmt.Fprintf(tw, "ssh:\t%t\n", i.SSH)
	fmt.Fprintf(tw, "authenticated:\t%t\n", i.Authenticated)
	fmt.Fprintf(tw, "interactive:\t%t\n", i.Interactive)

	return tw.Flush()
}

type remoteInfo struct {
	Name string   `json:"name" yaml:"name"`
	URLs []string `json:"urls" yaml:"urls"`
	Kind string   `json:"kind,omitempty" yaml:"kind,omitempty"`
}

type remoteList []remoteInfo

func (rs remoteList) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	for _, r := range rs {
		for _, u := range r.URLs {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, u, r.Kind)
		}
	}

	return tw.Flush()
}
