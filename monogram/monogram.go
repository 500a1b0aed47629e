// ABOUTME: Renders the AVH logomark as SVG markup: two concentric rings and three glyph paths.
// ABOUTME: Pure and deterministic; the only branch is the image/presentation accessibility role.
package monogram

import (
	"errors"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
)

// Defaults applied by DefaultConfig.
const (
	DefaultSize  = 112
	DefaultTitle = "AVH monogram"
)

// ViewBox is the fixed internal coordinate system; output is scaled to Size.
const ViewBox = "0 0 512 512"

// Accessibility roles emitted on the root element.
const (
	RoleImage        = "img"
	RolePresentation = "presentation"
)

const (
	strokeColor = "black"
	fillColor   = "white"
)

// Glyph outlines spelling the initials. Literal data, reproduced exactly.
const (
	glyphA = "M215.768 355.432L200.792 305.608H125.624L110.648 355.432H83L146.648 157H181.208L244.568 355.432H215.768ZM132.248 283.432H194.168L163.352 179.752L132.248 283.432Z"
	glyphV = "M299.87 220.932L294.16 258.544L252.88 355.432H220.912L173.366 203.656H192.866L237.04 331.816L292 203.656L299.87 220.932Z"
	glyphH = "M384.296 355.432V262.408H300.776V355.432H273.416V157H300.776V239.944H384.296V157H411.656V355.432H384.296Z"
)

// ErrInvalidArgument is returned when a Config cannot be rendered.
var ErrInvalidArgument = errors.New("invalid monogram argument")

// InvalidSizeError reports a non-positive or non-finite size.
type InvalidSizeError struct {
	Size float64
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("monogram size must be a positive finite number, got %v", e.Size)
}

func (e *InvalidSizeError) Unwrap() error {
	return ErrInvalidArgument
}

// Config controls how the monogram is rendered. Start from DefaultConfig (or
// New) rather than the zero value: a zero Size is rejected and an empty Title
// renders a decorative image.
type Config struct {
	// Size is used for both width and height, in pixels.
	Size float64
	// Title becomes the accessible name. Empty marks the graphic decorative.
	Title string
	// ClassName is attached to the root element verbatim.
	ClassName string
	// InheritColor is accepted for forward compatibility with theme-driven
	// coloring. It currently has no effect: colors stay black on white.
	InheritColor bool
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Size:         DefaultSize,
		Title:        DefaultTitle,
		ClassName:    "",
		InheritColor: true,
	}
}

// Option mutates a Config.
type Option func(*Config)

// WithSize sets the rendered width and height.
func WithSize(size float64) Option {
	return func(c *Config) { c.Size = size }
}

// WithTitle sets the accessible name. Pass "" for a decorative monogram.
func WithTitle(title string) Option {
	return func(c *Config) { c.Title = title }
}

// WithClassName sets the style class attached to the root element.
func WithClassName(className string) Option {
	return func(c *Config) { c.ClassName = className }
}

// WithInheritColor sets the InheritColor flag.
func WithInheritColor(inherit bool) Option {
	return func(c *Config) { c.InheritColor = inherit }
}

// New returns DefaultConfig with opts applied in order.
func New(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate reports whether the config can be rendered.
func (c Config) Validate() error {
	if math.IsNaN(c.Size) || math.IsInf(c.Size, 0) || c.Size <= 0 {
		return &InvalidSizeError{Size: c.Size}
	}
	return nil
}

// Decorative reports whether the monogram carries no accessible name.
func (c Config) Decorative() bool {
	return c.Title == ""
}

// Role returns the accessibility role for the root element.
func (c Config) Role() string {
	if c.Decorative() {
		return RolePresentation
	}
	return RoleImage
}

// Render returns the SVG markup for cfg.
func Render(cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	size := formatSize(cfg.Size)

	var b strings.Builder
	b.Grow(1024)
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	writeAttr(&b, "role", cfg.Role())
	if !cfg.Decorative() {
		writeAttr(&b, "aria-label", cfg.Title)
	}
	writeAttr(&b, "width", size)
	writeAttr(&b, "height", size)
	writeAttr(&b, "viewBox", ViewBox)
	if cfg.ClassName != "" {
		writeAttr(&b, "class", cfg.ClassName)
	}
	b.WriteString(">")

	stroke, fill := palette(cfg)
	fmt.Fprintf(&b, `<circle cx="256" cy="256" r="250" fill="%s" stroke="%s" stroke-width="12"/>`, fill, stroke)
	fmt.Fprintf(&b, `<circle cx="256" cy="256" r="234" fill="%s" stroke="%s" stroke-width="8"/>`, fill, stroke)
	for _, d := range [...]string{glyphA, glyphV, glyphH} {
		fmt.Fprintf(&b, `<path d="%s" fill="%s"/>`, d, stroke)
	}
	b.WriteString("</svg>")

	return b.String(), nil
}

// palette resolves stroke and fill colors. InheritColor does not change them
// yet; the page theme would have to supply a currentColor pair first.
func palette(Config) (stroke, fill string) {
	return strokeColor, fillColor
}

// formatSize prints whole numbers without a decimal point ("64", not "64.0").
func formatSize(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64)
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteByte('"')
}
