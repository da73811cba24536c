package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/grindlemire/floatui"
)

func (c *cli) newPlaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place <scenario.toml|->",
		Short: "Solve a placement scenario and print the layout",
		Long: `place reads a TOML scenario describing a viewport, an anchor rect and a
floating size, positions the floating element the way an open popup would
and prints the result.

Flags, FLOATUI_PLACE_* variables and the [place] table of the config file
override the scenario's placement settings.`,
		Example: `  floatui place scenario.toml
  floatui place -p left-start --side-offset 8 scenario.toml
  floatui place -o toml - < scenario.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringP("placement", "p", "bottom", "preferred placement, e.g. top or bottom-start")
	flags.Float64("side-offset", 0, "gap between anchor and floating element")
	flags.Float64("align-offset", 0, "shift along the alignment axis")
	flags.Float64("padding", 0, "collision padding on every edge")
	flags.String("strategy", "absolute", "coordinate strategy: absolute or fixed")
	flags.StringP("output", "o", "text", "output format: text or toml")
	for _, name := range []string{"placement", "side-offset", "align-offset", "padding", "strategy", "output"} {
		_ = c.v.BindPFlag("place."+name, flags.Lookup(name))
	}
	return cmd
}

func (c *cli) runPlace(cmd *cobra.Command, path string) error {
	logger := loggerFromContext(cmd.Context())

	sc, err := readScenario(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	c.applyOverrides(&sc)
	logger.Debug("solving scenario", "file", path, "placement", sc.Placement, "strategy", sc.Strategy)

	l, err := solve(sc)
	if err != nil {
		return err
	}
	if l.NoFit {
		logger.Warn("no placement fits; using the one that overflows least", "placement", l.Placement)
	}
	if l.AnchorHidden {
		logger.Warn("anchor is clipped out of view")
	}

	res := newPlaceResult(l)
	switch format := c.v.GetString("place.output"); format {
	case "text":
		return writeText(cmd.OutOrStdout(), res)
	case "toml":
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(res)
	default:
		return fmt.Errorf("unknown output format %q (want text or toml)", format)
	}
}

func readScenario(stdin io.Reader, path string) (scenario, error) {
	if path == "-" {
		return decodeScenario(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return scenario{}, err
	}
	defer f.Close()
	sc, err := decodeScenario(f)
	if err != nil {
		return scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// applyOverrides replaces scenario settings with values set through flags,
// the environment or the config file.
func (c *cli) applyOverrides(sc *scenario) {
	if c.v.IsSet("place.placement") {
		sc.Placement = c.v.GetString("place.placement")
	}
	if c.v.IsSet("place.strategy") {
		sc.Strategy = c.v.GetString("place.strategy")
	}
	if c.v.IsSet("place.side-offset") {
		sc.SideOffset = c.v.GetFloat64("place.side-offset")
	}
	if c.v.IsSet("place.align-offset") {
		sc.AlignOffset = c.v.GetFloat64("place.align-offset")
	}
	if c.v.IsSet("place.padding") {
		sc.Padding = c.v.GetFloat64("place.padding")
	}
}

type placeResult struct {
	Placement       string       `toml:"placement"`
	Side            string       `toml:"side"`
	Strategy        string       `toml:"strategy"`
	X               float64      `toml:"x"`
	Y               float64      `toml:"y"`
	AvailableWidth  float64      `toml:"available_width"`
	AvailableHeight float64      `toml:"available_height"`
	TransformOrigin string       `toml:"transform_origin"`
	AnchorHidden    bool         `toml:"anchor_hidden"`
	NoFit           bool         `toml:"no_fit"`
	Rect            rectSpec     `toml:"rect"`
	Arrow           *arrowResult `toml:"arrow,omitempty"`
}

type arrowResult struct {
	X          float64 `toml:"x"`
	Y          float64 `toml:"y"`
	Uncentered bool    `toml:"uncentered"`
}

func newPlaceResult(l floatui.Layout) placeResult {
	res := placeResult{
		Placement:       l.Placement.String(),
		Side:            l.Side(),
		Strategy:        l.Strategy.String(),
		X:               l.X,
		Y:               l.Y,
		AvailableWidth:  l.AvailableWidth,
		AvailableHeight: l.AvailableHeight,
		TransformOrigin: l.TransformOrigin,
		AnchorHidden:    l.AnchorHidden,
		NoFit:           l.NoFit,
		Rect:            rectSpec{X: l.Rect.X, Y: l.Rect.Y, Width: l.Rect.Width, Height: l.Rect.Height},
	}
	if l.Arrow != nil {
		res.Arrow = &arrowResult{X: l.Arrow.X, Y: l.Arrow.Y, Uncentered: l.Arrow.Uncentered}
	}
	return res
}

// writeText prints one "label value" row per field. Styles come from a
// renderer bound to w, so piped output carries no escape codes.
func writeText(w io.Writer, res placeResult) error {
	r := lipgloss.NewRenderer(w)
	label := r.NewStyle().Bold(true).Width(18)
	value := r.NewStyle().Foreground(lipgloss.Color("6"))
	warn := r.NewStyle().Foreground(lipgloss.Color("3"))

	rows := [][2]string{
		{"placement", res.Placement},
		{"side", res.Side},
		{"strategy", res.Strategy},
		{"position", fmt.Sprintf("%g, %g", res.X, res.Y)},
		{"rect", fmt.Sprintf("%g, %g %gx%g", res.Rect.X, res.Rect.Y, res.Rect.Width, res.Rect.Height)},
		{"available", fmt.Sprintf("%gx%g", res.AvailableWidth, res.AvailableHeight)},
		{"transform-origin", res.TransformOrigin},
	}
	if res.Arrow != nil {
		rows = append(rows, [2]string{"arrow", fmt.Sprintf("%g, %g", res.Arrow.X, res.Arrow.Y)})
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(row[0]), value.Render(row[1])))
		b.WriteByte('\n')
	}
	if res.Arrow != nil && res.Arrow.Uncentered {
		b.WriteString(warn.Render("arrow cannot point at the anchor's center") + "\n")
	}
	if res.NoFit {
		b.WriteString(warn.Render("no placement fits") + "\n")
	}
	if res.AnchorHidden {
		b.WriteString(warn.Render("anchor hidden") + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
