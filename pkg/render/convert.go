package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/beltgrid/pkg/errors"
)

// rsvgBinary is the librsvg command line converter.
var rsvgBinary = "rsvg-convert"

const installHint = "install librsvg (brew install librsvg, apt install librsvg2-bin)"

// ToPDF converts an SVG document to a single-page PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "-f", "pdf")
}

// ToPNG rasterizes an SVG document at scale times its size; scale <= 0
// means 1. Tile pictures are 32px per cell, so scale 2 gives crisp sprites
// on high-density screens.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return rsvgConvert(ctx, svg, "-f", "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
}

// Available reports whether PNG and PDF conversion can run.
func Available() bool {
	_, err := exec.LookPath(rsvgBinary)
	return err == nil
}

func rsvgConvert(ctx context.Context, svg []byte, args ...string) ([]byte, error) {
	bin, err := exec.LookPath(rsvgBinary)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s export needs %s: %s", args[1], rsvgBinary, installHint)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", rsvgBinary, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
