// Package pcschart draws the portfolio charts: the allocation donut and the
// diverging profit bars.
//
// The renderers are pure functions from ordered data to drawing operations on
// a Surface. They hold no state, never fail and clear the surface on every
// call, so that the same input always produces the same picture.
//
// The core functionalities include:
//   - Data Model: labeled values (Datum), kept in their original order.
//   - Surface Abstraction: the minimal set of drawing primitives a back-end
//     must provide (clear, filled paths, filled rectangles, text, lines).
//   - Pie Layout: proportional sweeps starting at 12 o'clock, clockwise,
//     punched as a donut.
//   - Bar Layout: bars diverging from a zero baseline placed in the middle of
//     the plot area, scaled on the largest magnitude.
//   - Style: every visual constant, with defaults and hex color parsing.
//
// Concrete surfaces live in sub packages: raster (PNG) and svg. The Recorder
// surface in this package keeps the operations in memory for inspection.
package pcschart
