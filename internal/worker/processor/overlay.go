package processor

import (
	"fmt"
	"strings"
)

const (
	drawTextStyle = "expansion=none:fontsize=24:fontcolor=white@0.7:x=10:y=10:box=1:boxcolor=black@0.5:boxborderw=5"
	logoOffset    = "overlay=10:10"
)

// optionEscaper escapes a value for the filter option parser.
var optionEscaper = strings.NewReplacer(`\`, `\\`, "'", `\'`, ":", `\:`)

// drawTextValue quotes s so ffmpeg renders it literally. The filtergraph
// parser strips the outer quotes, then the option parser strips the
// backslashes. expansion=none keeps '%' literal.
func drawTextValue(s string) string {
	escaped := optionEscaper.Replace(s)
	return "'" + strings.ReplaceAll(escaped, "'", `'\''`) + "'"
}

// BuildArgs returns the ffmpeg arguments for one job. Audio is always stream
// copied; only video is re-encoded. logo is ignored for TextOverlay.
func BuildArgs(input, logo, output string, o Overlay) ([]string, error) {
	switch ov := o.(type) {
	case TextOverlay:
		return []string{
			"-i", input,
			"-vf", "drawtext=text=" + drawTextValue(ov.Text) + ":" + drawTextStyle,
			"-codec:a", "copy",
			"-y", output,
		}, nil

	case LogoOverlay:
		if logo == "" {
			return nil, fmt.Errorf("logo overlay needs a local logo file")
		}
		return []string{
			"-i", input,
			"-i", logo,
			"-filter_complex", fmt.Sprintf("[1:v]scale=%d:-1[wm];[0:v][wm]%s", ov.Width, logoOffset),
			"-codec:a", "copy",
			"-y", output,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported overlay %T", o)
	}
}
