// Package pkg provides the core libraries for svg2cetz.
//
// # Overview
//
// svg2cetz converts SVG documents, typically drawn in Inkscape, into CeTZ
// canvas blocks for embedding in Typst documents. The pkg directory is
// organized by pipeline stage:
//
//  1. [svg] - Host scene-graph layer (document parsing, styles, gradients,
//     transforms, path data, units)
//  2. [geom] - Geometry normalization and circle recovery
//  3. [bbox] - Bounding-box measurement via an external Inkscape invocation
//  4. [convert] - Per-shape conversion to CeTZ expressions
//  5. [pipeline] - Orchestration (select → measure → convert)
//
// Supporting packages: [cache] for the file-backed query cache, [errors]
// for structured error codes, [buildinfo] for ldflags version data.
//
// # Architecture
//
// The typical data flow through svg2cetz:
//
//	SVG document
//	         ↓
//	    [svg] package (parse document, resolve styles)
//	         ↓
//	    [bbox] package (one batched Inkscape query)
//	         ↓
//	    [geom] package (normalize shapes to cubics and lines)
//	         ↓
//	    [convert] package (emit CeTZ shape expressions)
//	         ↓
//	    wrapped #cetz.canvas({ ... }) block
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Run(ctx, file, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(strings.Join(result.Lines, "\n"))
//
// [svg]: https://pkg.go.dev/github.com/phoscity/svg2cetz/pkg/svg
// [geom]: https://pkg.go.dev/github.com/phoscity/svg2cetz/pkg/geom
// [bbox]: https://pkg.go.dev/github.com/phoscity/svg2cetz/pkg/bbox
// [convert]: https://pkg.go.dev/github.com/phoscity/svg2cetz/pkg/convert
// [pipeline]: https://pkg.go.dev/github.com/phoscity/svg2cetz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/phoscity/svg2cetz/pkg/cache
// [errors]: https://pkg.go.dev/github.com/phoscity/svg2cetz/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/phoscity/svg2cetz/pkg/buildinfo
package pkg
