// Package io provides JSON import and export for layout snapshots.
//
// # Overview
//
// A snapshot captures the rectangles of a layout session after a run,
// together with the rectangles each generation reported as changed. The
// format is designed for:
//
//   - Feeding computed layouts to external renderers
//   - Caching the result of a scene and script run
//   - Comparing runs in tests and tooling
//
// # JSON Format
//
//	{
//	  "root": "window",
//	  "generation": 2,
//	  "origin": [0, 0],
//	  "rects": [
//	    {"id": "toolbar", "parent": "window", "offset": [2, 1], "size": [20, 3]},
//	    {"id": "window", "offset": [0, 0], "size": [44, 26]}
//	  ],
//	  "changed": [
//	    {"generation": 1, "rects": [...]},
//	    {"generation": 2, "rects": [...]}
//	  ]
//	}
//
// Rects are sorted by id. Changed rects keep the order in which the engine
// produced them.
package io
