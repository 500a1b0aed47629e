// ABOUTME: Help display for the avh CLI: ASCII monogram, usage, grouped flags, examples, and env status.
// ABOUTME: Headings and the banner are styled with lipgloss; styles degrade to plain text off a terminal.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

const monogramASCII = `
       .-'''''''-.
     .'  .-----.  '.
    /   /       \   \
   |   |  A V H  |   |
    \   \       /   /
     '.  '-----'  .'
       '-.......-'
`

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	setStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	unsetStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, headingStyle.Render(title))
}

// printHelp writes the help message to w.
func printHelp(w io.Writer, ver string) {
	fmt.Fprint(w, monogramASCII)
	fmt.Fprintln(w, bannerStyle.Render(fmt.Sprintf("avh %s - personal site and portfolio", ver)))
	fmt.Fprintln(w)

	heading(w, "Usage:")
	fmt.Fprintln(w, "  avh [serve] [flags]                 Serve the site over HTTP")
	fmt.Fprintln(w, "  avh build [-out dir] [flags]        Export the site as static files")
	fmt.Fprintln(w, "  avh monogram [flags]                Print the monogram SVG to stdout")
	fmt.Fprintln(w)

	heading(w, "Site Flags (serve, build):")
	fmt.Fprintln(w, "  -addr <host:port>     Listen address (default: 127.0.0.1:3000)")
	fmt.Fprintln(w, "  -content <file>       Site content YAML (default: embedded content)")
	fmt.Fprintln(w, "  -tz <zone>            Time zone for displayed dates (default: UTC)")
	fmt.Fprintln(w, "  -revalidate <dur>     Re-render cached pages after this long (default: never)")
	fmt.Fprintln(w, "  -out <dir>            Output directory for build (default: dist)")
	fmt.Fprintln(w)

	heading(w, "Monogram Flags:")
	fmt.Fprintln(w, "  -size <px>            Width and height (default: 112)")
	fmt.Fprintln(w, "  -title <text>         Accessible label; empty makes it decorative (default: AVH monogram)")
	fmt.Fprintln(w, "  -class <names>        CSS class names")
	fmt.Fprintln(w, "  -inherit-color        Accepted for compatibility; colors are fixed")
	fmt.Fprintln(w)

	heading(w, "Other:")
	fmt.Fprintln(w, "  -version              Print version and exit")
	fmt.Fprintln(w, "  -help                 Show this help")
	fmt.Fprintln(w)

	heading(w, "Examples:")
	fmt.Fprintln(w, "  avh")
	fmt.Fprintln(w, "  avh serve -addr :8080 -tz Europe/Amsterdam")
	fmt.Fprintln(w, "  avh build -out public")
	fmt.Fprintln(w, "  avh monogram -size 32 -title '' > favicon.svg")
	fmt.Fprintln(w)

	heading(w, "Environment:")
	for _, key := range []string{"AVH_HTTP_ADDR", "AVH_CONTENT_FILE", "AVH_TIMEZONE", "AVH_REVALIDATE", "AVH_OUT_DIR"} {
		fmt.Fprintf(w, "  %-21s %s\n", key, envStatus(key))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Flags override environment variables. .env files are loaded automatically.")
}

// envStatus reports whether the named environment variable is non-empty.
func envStatus(key string) string {
	if os.Getenv(key) != "" {
		return setStyle.Render("[set]")
	}
	return unsetStyle.Render("[not set]")
}
