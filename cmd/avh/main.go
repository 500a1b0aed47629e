// ABOUTME: CLI entrypoint for the avh site with serve, build, and monogram subcommands.
// ABOUTME: Reads AVH_* settings from the environment, lets flags override them, and handles signals.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/allardvh/avh/config"
	"github.com/allardvh/avh/export"
	"github.com/allardvh/avh/monogram"
	"github.com/allardvh/avh/web"
)

var version = "dev"

// siteConfig holds the settings shared by serve and build.
type siteConfig struct {
	env         config.Env
	showVersion bool
}

func main() {
	loadDotEnvAuto()
	log.SetPrefix("[avh] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches to a subcommand and returns the process exit code.
// Without a subcommand the site is served.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		return runServe(ctx, args, stdout, stderr)
	case "build":
		return runBuild(ctx, args, stdout, stderr)
	case "monogram":
		return runMonogram(args, stdout, stderr)
	case "help":
		printHelp(stdout, version)
		return 0
	case "version":
		fmt.Fprintf(stdout, "avh %s\n", version)
		return 0
	default:
		fmt.Fprintf(stderr, "error: unknown command %q\n", cmd)
		fmt.Fprintln(stderr, "Run 'avh -help' for usage.")
		return 2
	}
}

// parseSiteArgs loads the environment and applies flag overrides. When it
// returns false the caller should exit with the returned code.
func parseSiteArgs(name string, args []string, stdout, stderr io.Writer) (siteConfig, int, bool) {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return siteConfig{}, 1, false
	}

	cfg := siteConfig{env: env}
	fs := flag.NewFlagSet("avh "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Run 'avh -help' for usage.")
	}
	fs.StringVar(&cfg.env.Addr, "addr", env.Addr, "Listen address")
	fs.StringVar(&cfg.env.ContentFile, "content", env.ContentFile, "Site content YAML")
	fs.StringVar(&cfg.env.Timezone, "tz", env.Timezone, "Time zone for displayed dates")
	fs.DurationVar(&cfg.env.Revalidate, "revalidate", env.Revalidate, "Re-render cached pages after this long")
	fs.StringVar(&cfg.env.OutDir, "out", env.OutDir, "Output directory for build")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printHelp(stdout, version)
			return cfg, 0, false
		}
		return cfg, 2, false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "error: unexpected argument %q\n", fs.Arg(0))
		return cfg, 2, false
	}
	if cfg.showVersion {
		fmt.Fprintf(stdout, "avh %s\n", version)
		return cfg, 0, false
	}
	return cfg, 0, true
}

// newServer builds the site server from cfg.
func newServer(cfg siteConfig) (*web.Server, web.ServerConfig, error) {
	srvCfg, err := cfg.env.ServerConfig()
	if err != nil {
		return nil, web.ServerConfig{}, err
	}
	srv, err := web.NewServer(srvCfg)
	if err != nil {
		return nil, web.ServerConfig{}, err
	}
	return srv, srvCfg, nil
}

// runServe serves the site until ctx is cancelled.
func runServe(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, code, ok := parseSiteArgs("serve", args, stdout, stderr)
	if !ok {
		return code
	}

	srv, srvCfg, err := newServer(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	log.Printf("component=cli action=serve addr=%s tz=%s revalidate=%s", srv.Addr(), srvCfg.Location, srvCfg.Revalidate)
	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	log.Printf("component=cli action=shutdown addr=%s", srv.Addr())
	return 0
}

// runBuild exports the site into the output directory.
func runBuild(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, code, ok := parseSiteArgs("build", args, stdout, stderr)
	if !ok {
		return code
	}

	srv, srvCfg, err := newServer(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	manifest, err := export.Build(ctx, srv, export.Options{
		OutDir:   cfg.env.OutDir,
		Location: srvCfg.Location,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	log.Printf("component=cli action=build build_id=%s out=%s files=%d", manifest.BuildID, cfg.env.OutDir, len(manifest.Files))
	fmt.Fprintf(stdout, "Built %d files into %s\n", len(manifest.Files), cfg.env.OutDir)
	fmt.Fprintf(stdout, "Build %s on %s\n", manifest.BuildID, manifest.BuiltDisplay)
	return 0
}

// runMonogram prints the monogram SVG to stdout.
func runMonogram(args []string, stdout, stderr io.Writer) int {
	var (
		size    float64
		title   string
		class   string
		inherit bool
	)
	fs := flag.NewFlagSet("avh monogram", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Run 'avh -help' for usage.")
	}
	fs.Float64Var(&size, "size", monogram.DefaultSize, "Width and height")
	fs.StringVar(&title, "title", monogram.DefaultTitle, "Accessible label; empty is decorative")
	fs.StringVar(&class, "class", "", "CSS class names")
	fs.BoolVar(&inherit, "inherit-color", monogram.DefaultConfig().InheritColor, "Accepted for compatibility; colors are fixed")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printHelp(stdout, version)
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "error: unexpected argument %q\n", fs.Arg(0))
		return 2
	}

	svg, err := monogram.Render(monogram.New(
		monogram.WithSize(size),
		monogram.WithTitle(title),
		monogram.WithClassName(class),
		monogram.WithInheritColor(inherit),
	))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, svg)
	return 0
}
