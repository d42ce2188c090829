// Package paint is the drawing model of pixelpad: validated colours,
// style tags, the selection session, the palette, the cell grid and the
// stroke engine that connects pointer input to cell paints.
//
// Nothing here touches the framebuffer or the kernel; the canvas task owns a
// Session and drives these types from its event loop.
package paint
