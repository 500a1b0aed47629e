// ABOUTME: Embeds web/static/ CSS for serving and for static export.
// ABOUTME: Uses explicit subdirectory globs because //go:embed static/* does not recurse.
package web

import "embed"

//go:embed static/css/*.css
var StaticFS embed.FS
