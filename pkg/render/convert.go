package render

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/reeflab/reefplan/pkg/errors"
)

// converter is the external SVG rasterizer. Print-ready reef maps go
// through librsvg rather than a Go rasterizer so text and stroke
// rendering match what browsers show for the SVG.
const converter = "rsvg-convert"

// ToPDF converts an SVG reef map to PDF for print handouts.
// Requires librsvg (apt install librsvg2-bin, brew install librsvg).
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// ToPNG converts an SVG reef map to PNG at the given scale factor.
// A scale of 2.0 doubles the pixel dimensions for high-DPI screens.
// Requires librsvg (apt install librsvg2-bin, brew install librsvg).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1.0
	}
	return convert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func convert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath(converter); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export needs librsvg (apt install librsvg2-bin, brew install librsvg)", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command(converter, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err,
			"%s conversion failed: %s", converter, stderr.String())
	}
	return out.Bytes(), nil
}
