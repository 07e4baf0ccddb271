// Package watermark implements the image compositing pipeline: darkening
// the source photo by a configurable percentage and stamping a logo at one
// of four corners. All operations are stateless; callers own every buffer
// that crosses the boundary.
package watermark
