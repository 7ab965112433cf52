// Package svg implements the scene-graph side of the converter: parsing an
// SVG document into an element tree with resolved transforms, cascaded
// styles, gradients and marker definitions.
//
// The package deliberately models only what the CeTZ conversion needs: the
// closed set of drawable element kinds (rect, circle, ellipse, line,
// polyline, polygon, path, text), groups for recursion, and an Unsupported
// kind for everything else. Selection, z-order and per-element bounding
// boxes are not computed here; they come from the external query in
// pkg/bbox.
//
// Coordinates are kept in the document's user-unit space. Unit conversion
// helpers (ToDimensional, ToUserUnit) treat the user unit as a CSS pixel at
// 96 dpi.
package svg
