package pipeline

import (
	"fmt"

	"github.com/unitpile/unitpile/pkg/grid"
	"github.com/unitpile/unitpile/pkg/render/sink"
	"github.com/unitpile/unitpile/pkg/render/styles"
)

// Render generates output artifacts in the requested formats.
// overflow is the number of items hidden beyond the visible cap; it drives
// the "+N" badge in every format that shows one.
func Render(l grid.Layout, cells []grid.Cell, overflow int, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(overflow, opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, cells, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, cells, sink.WithPNGSVGOptions(svgOpts...))
		case FormatJSON:
			jsonOpts := []sink.JSONOption{sink.WithJSONStyle(opts.Style)}
			if !opts.HideBadge {
				jsonOpts = append(jsonOpts, sink.WithJSONOverflow(overflow))
			}
			data, err = sink.RenderJSON(l, cells, jsonOpts...)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options from pipeline options.
func buildSVGOptions(overflow int, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithStyle(styles.ByName(opts.Style)),
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	if !opts.HideBadge && overflow > 0 {
		svgOpts = append(svgOpts, sink.WithOverflow(overflow))
	}
	return svgOpts
}
