// Package viz renders rolls in the terminal.
//
// A braille [Canvas] gives a 2x4 sub-pixel grid per character cell. The
// 3D pieces project tray and die wireframes through an orbiting
// [Camera], and [Model] wraps it all in an interactive live view with a
// replay counterpart in [ReplayModel].
package viz
