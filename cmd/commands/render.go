package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pluqqy/certadmin/internal/cli"
	"github.com/pluqqy/certadmin/pkg/fonts"
	"github.com/pluqqy/certadmin/pkg/notices"
	"github.com/pluqqy/certadmin/pkg/placement"
	"github.com/pluqqy/certadmin/pkg/render"
	"github.com/pluqqy/certadmin/pkg/request"
)

var (
	renderRange rangeFlags
	renderStyle styleFlags
	renderRow   int
	renderOut   string

	composeName     string
	composeX        float64
	composeY        float64
	composeSize     float64
	composeSpacing  float64
	composeColor    string
	composeFace     string
	composeMaxWidth int
	composeOut      string
)

// NewRenderCommand creates the render command
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <link-or-id>",
		Short: "Ask the backend for a PNG preview of one row",
		Long: `Render the server-side PNG preview of one row, exactly as the
console's server view shows it.

Examples:
  certadmin render 1AbCdEfGhIjKlMnOpQrStUv -t award.png --row 2 --out row2.png`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if renderRow < 1 {
				return fmt.Errorf("--row must be 1 or greater")
			}
			return renderStyle.validate(cmd)
		},
		RunE: runRender,
	}

	addRangeFlags(cmd, &renderRange)
	addStyleFlags(cmd, &renderStyle)
	cmd.Flags().IntVar(&renderRow, "row", 1, "Row number (1-based)")
	cmd.Flags().StringVar(&renderOut, "out", "preview.png", "Output PNG path")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, err := loadContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	s, err := prepareSession(cmd, ctx, args[0], renderRange, renderStyle)
	if err != nil {
		return err
	}
	defer s.Close()

	p := s.Params()
	if err := p.Validate(); err != nil {
		return err
	}
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	data, err := client.GeneratePreview(cmd.Context(), request.ForPreview(p, renderRow-1))
	if err != nil {
		cli.PrintError(notices.RenderFailed)
		return err
	}
	if err := os.WriteFile(renderOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOut, err)
	}
	return reportDownload(cmd, GenerateResult{Path: renderOut}, notices.FileSaved)
}

// NewComposeCommand creates the compose command
func NewComposeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose <template>",
		Short: "Draw a name on an image template locally",
		Long: `Draw a sample name on an image template without the backend. This is
the console's client view: an approximation for checking placement.
PDF templates need the backend; use 'certadmin render' for them.

Examples:
  certadmin compose award.png --name "Somchai Jaidee" --y 0.6 --out quick.png
  certadmin compose award.png --face fonts/Sarabun-Bold.ttf --size 64`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateFilePath(args[0]); err != nil {
				return err
			}
			return cli.ValidateColor(composeColor)
		},
		RunE: runCompose,
	}

	cmd.Flags().StringVar(&composeName, "name", "Firstname Lastname", "Name to draw")
	cmd.Flags().Float64Var(&composeX, "x", 0.5, "Horizontal position as a fraction of the width")
	cmd.Flags().Float64Var(&composeY, "y", 0.5, "Vertical position as a fraction of the height")
	cmd.Flags().Float64Var(&composeSize, "size", 48, "Font size in px (needs --face)")
	cmd.Flags().Float64Var(&composeSpacing, "spacing", 0, "Letter spacing in px")
	cmd.Flags().StringVar(&composeColor, "color", "#000000", "Text colour")
	cmd.Flags().StringVar(&composeFace, "face", "", "TrueType font file, or a preset key with a configured face")
	cmd.Flags().IntVar(&composeMaxWidth, "max-width", 0, "Scale the result down to this width")
	cmd.Flags().StringVar(&composeOut, "out", "quick-preview.png", "Output PNG path")

	return cmd
}

func runCompose(cmd *cobra.Command, args []string) error {
	face := composeFace
	if face != "" && cli.Contains(fonts.Keys(), face) {
		// a preset key: look the face up in config
		if ctx, err := loadContext(cmd); err == nil {
			reg := fonts.NewRegistry()
			reg.LoadFaces(ctx.Settings.Text.FontFaces)
			face = reg.FacePath(face)
		} else {
			face = ""
		}
	}

	img, err := render.Compose(args[0], composeName, render.Options{
		Point:         placement.Point{X: composeX, Y: composeY},
		FontSize:      composeSize,
		LetterSpacing: composeSpacing,
		Color:         composeColor,
		FacePath:      face,
	})
	if err != nil {
		if errors.Is(err, render.ErrPDFTemplate) {
			cli.PrintWarning(notices.QuickPreviewPDF)
		}
		return err
	}
	if composeMaxWidth > 0 {
		img = render.Fit(img, composeMaxWidth)
	}
	if err := render.WritePNG(composeOut, img); err != nil {
		return err
	}
	return reportDownload(cmd, GenerateResult{Path: composeOut, Name: composeName}, notices.QuickPreviewSaved)
}
