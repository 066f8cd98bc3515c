// Package render paints a scene onto an RGBA raster.
//
// A pass fills the background, then draws the grid, the axes, the tick labels, every
// visible curve and finally the tangent overlay. Sizes given in logical pixels (label
// spacing, line widths, font pixels) are multiplied by Renderer.Scale, so the same
// scene looks the same on a HiDPI framebuffer.
package render
