// Package savefile reads and writes the Paint Save File format, version 1.0.
//
// A save file is line oriented:
//
//	Paint Save File Version 1.0
//	Circle
//		color:255,0,0
//		filled:true
//		center:(10,20)
//		radius:5
//	End Circle
//	End Paint Save File
//
// Every shape lists its color, its filled flag and then its geometry, in
// that order. Rectangles carry p1/p2 corners; squiggles carry a
// points ... end points block with one point line per vertex.
//
// Parse runs a finite-state machine over the lines and either returns the
// whole Document or the first SyntaxError. Encode writes the inverse.
package savefile
