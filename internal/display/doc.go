// Package display defines the drawing surface the console renders onto.
//
// The Display interface mirrors the small subset of a TFT graphics library the
// console needs: rectangles, fast horizontal/vertical lines, circles and
// quarter arcs, text with a background, opaque icons, and the panel's hardware
// vertical scrolling (a fixed header band, a fixed footer band, and a start
// address for the scrolling band in between).
//
// All coordinates are physical panel rows and columns. When hardware scrolling
// is active, the physical row written is not the row the operator sees;
// Framebuffer.Image applies the same translation the panel does.
//
// # Key Components
//
//	Display      - the drawing interface consumed by scroll, card, heap, status and progress
//	Color        - RGB565 panel color with the WROVER palette
//	Icon         - the fixed set of bitmap assets the console can place
//	Framebuffer  - in-memory panel emulator used on the host and by the terminal preview
package display
