package domain

import (
	"path/filepath"
	"strings"
)

// Fingerprint is the lowercase hex digest summarizing a build's inputs.
type Fingerprint string

// String returns the hex digest.
func (f Fingerprint) String() string {
	return string(f)
}

// MarkerPrefix is the text preceding the fingerprint on an artifact's first line.
const MarkerPrefix = "Build fingerprint: "

// MarkerLine returns the first line written to an artifact with extension ext,
// including the trailing newline. The comment syntax follows the artifact type.
func MarkerLine(ext string, fp Fingerprint) string {
	body := MarkerPrefix + string(fp)
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext("x"+ext), ".")) {
	case "html", "htm", "xml", "svg":
		return "<!-- " + body + " -->\n"
	case "sh", "yml", "yaml", "toml", "txt":
		return "# " + body + "\n"
	default:
		return "/* " + body + " */\n"
	}
}
