// Command wrappers-cli resolves the effective wrapper for a handler action
// against a template tree and prints the template identifier. Handlers come
// from a declaration document; undeclared names resolve by convention alone.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	wrappers "github.com/goliatone/go-wrappers"
	"github.com/goliatone/go-wrappers/pkg/config"
	"github.com/goliatone/go-wrappers/pkg/handler"
	"github.com/goliatone/go-wrappers/pkg/wrapper"
)

func main() {
	cfg := settings{}
	flag.StringVar(&cfg.configPath, "config", "", "declaration file or directory")
	flag.StringVar(&cfg.templates, "templates", ".", "template root directory")
	flag.StringVar(&cfg.handler, "handler", "", "qualified handler name; prompts when omitted on a terminal")
	flag.StringVar(&cfg.action, "action", "", "action to resolve (default index)")
	flag.StringVar(&cfg.override, "wrapper", "", "call-site override: a template name, or false/none to suppress")
	flag.BoolVar(&cfg.require, "require", false, "fail when resolution produces no wrapper")
	flag.BoolVar(&cfg.trace, "trace", false, "print resolution provenance")
	flag.Parse()

	if isatty.IsTerminal(os.Stdin.Fd()) {
		cfg.prompts = surveyDriver{}
	}

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

type settings struct {
	configPath string
	templates  string
	handler    string
	action     string
	override   string
	require    bool
	trace      bool
	prompts    promptDriver
}

func run(ctx context.Context, cfg settings, out io.Writer) error {
	reg, err := loadRegistry(cfg.configPath)
	if err != nil {
		return err
	}

	res, err := wrappers.New(wrappers.WithTemplateDir(cfg.templates))
	if err != nil {
		return err
	}

	desc, err := pickHandler(ctx, cfg, reg)
	if err != nil {
		return err
	}
	action, err := pickAction(ctx, cfg)
	if err != nil {
		return err
	}

	resolution, err := res.ResolveWith(ctx, handler.NewBase(desc, action), parseOverride(cfg.override, cfg.require))
	if err != nil {
		return err
	}

	if resolution.None() {
		fmt.Fprintln(out, "(no wrapper)")
	} else {
		fmt.Fprintln(out, resolution.Path)
	}

	if cfg.trace {
		fmt.Fprintf(out, "source: %s\n", resolution.Source)
		if resolution.Origin != "" {
			fmt.Fprintf(out, "origin: %s\n", resolution.Origin)
		}
		if len(resolution.Searched) > 0 {
			fmt.Fprintf(out, "searched: %s\n", strings.Join(resolution.Searched, ", "))
		}
	}

	return nil
}

func loadRegistry(path string) (*wrappers.Registry, error) {
	reg := wrappers.NewRegistry()
	if path == "" {
		return reg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("wrappers-cli: config: %w", err)
	}

	var doc *config.Document
	if info.IsDir() {
		doc, err = config.LoadFS(os.DirFS(path))
	} else {
		doc, err = config.LoadFile(path)
	}
	if err != nil {
		return nil, err
	}

	if err := doc.Apply(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// pickHandler returns the descriptor to resolve. A name missing from the
// declarations is only accepted when none were loaded at all; in that mode
// the tool answers pure convention lookups.
func pickHandler(ctx context.Context, cfg settings, reg *wrappers.Registry) (*wrappers.Descriptor, error) {
	name := strings.TrimSpace(cfg.handler)
	declared := reg.List()

	if name == "" {
		if cfg.prompts == nil {
			return nil, fmt.Errorf("wrappers-cli: -handler is required")
		}
		if len(declared) == 0 {
			return nil, fmt.Errorf("wrappers-cli: no handlers declared; pass -handler")
		}
		picked, err := cfg.prompts.Select(ctx, "Handler", declared)
		if err != nil {
			return nil, err
		}
		name = picked
	}

	if reg.Has(name) {
		return reg.MustGet(name), nil
	}
	if len(declared) == 0 {
		return wrappers.NewDescriptor(name), nil
	}
	return nil, fmt.Errorf("wrappers-cli: handler %q is not declared in %s", name, cfg.configPath)
}

func pickAction(ctx context.Context, cfg settings) (string, error) {
	action := strings.TrimSpace(cfg.action)
	if action != "" {
		return action, nil
	}
	if cfg.prompts == nil {
		return "index", nil
	}
	return cfg.prompts.Input(ctx, "Action", "index")
}

// parseOverride maps the -wrapper flag onto a call-site override. An explicit
// template name or suppression wins over -require, matching how overrides
// bypass default resolution.
func parseOverride(raw string, require bool) wrapper.Override {
	switch value := strings.TrimSpace(raw); value {
	case "":
		if require {
			return wrapper.UseRequired()
		}
		return wrapper.UseDefault()
	case "false", "none":
		return wrapper.UseNone()
	default:
		return wrapper.Use(value)
	}
}
