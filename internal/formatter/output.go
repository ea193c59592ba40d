package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/nayakiniki/Flickd/pkg/types"
)

// Report is one analyzed file as shown by the CLI
type Report struct {
	File   string                `json:"file" yaml:"file"`
	Size   string                `json:"size,omitempty" yaml:"size,omitempty"`
	Result *types.AnalysisResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string                `json:"error,omitempty" yaml:"error,omitempty"`
}

// DisplayResults formats and writes the reports
func DisplayResults(w io.Writer, reports []Report, format string) error {
	switch format {
	case "json":
		return displayJSON(w, reports)
	case "yaml":
		return displayYAML(w, reports)
	case "human", "":
		displayHuman(w, reports)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use human, json or yaml)", format)
	}
}

func displayJSON(w io.Writer, reports []Report) error {
	output, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func displayYAML(w io.Writer, reports []Report) error {
	output, err := yaml.Marshal(reports)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(output))
	return err
}

func displayHuman(w io.Writer, reports []Report) {
	red := color.New(color.FgRed, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	for _, r := range reports {
		fmt.Fprintln(w)
		white.Fprintf(w, "🖼  %s", r.File)
		if r.Size != "" {
			fmt.Fprintf(w, " (%s)", r.Size)
		}
		fmt.Fprintln(w)

		if r.Error != "" {
			red.Fprintf(w, "   ❌ %s\n", r.Error)
			continue
		}

		info := r.Result.ImageInfo
		cyan.Fprintln(w, "   IMAGE:")
		fmt.Fprintf(w, "   %dx%d %s, aspect ratio %.2f\n", info.Width, info.Height, info.Format, info.AspectRatio)
		if info.Fingerprint != "" {
			fmt.Fprintf(w, "   fingerprint %s\n", info.Fingerprint)
		}

		cyan.Fprintln(w, "   TAGS:")
		for _, tag := range r.Result.Tags {
			confidenceColor(tag.Confidence).Fprintf(w, "   %-18s %.2f ", tag.Label, tag.Confidence)
			fmt.Fprintf(w, "%s %s\n", bar(tag.Confidence), tag.Category)
		}
	}
	fmt.Fprintln(w)
}

func confidenceColor(c float64) *color.Color {
	switch {
	case c >= 0.8:
		return color.New(color.FgGreen)
	case c >= 0.6:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// bar renders a confidence as a 10 cell bar
func bar(c float64) string {
	n := int(c*10 + 0.5)
	return strings.Repeat("█", n) + strings.Repeat("░", 10-n)
}
