// Package pipeline runs a scene and an optional edit script end to end.
//
// This package implements the load → run → render pipeline shared by the
// run, watch and step commands, so caching and validation behave the same
// everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read and validate the scene and parse the script
//  2. Run: replay the script on a layout session, one generation per
//     recompute statement, and capture a snapshot
//  3. Render: produce the requested output formats from the snapshot
//
// Runs and artifacts are cached by content hash. A run whose scene and
// script bytes were seen before is served from the cache without touching
// the layout engine.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Run(ctx, pipeline.Options{
//	    ScenePath:  "window.toml",
//	    ScriptPath: "edits.reflow",
//	    Formats:    []string{"json", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/reflow/pkg/cache"
	"github.com/matzehuels/reflow/pkg/errors"
	pkgio "github.com/matzehuels/reflow/pkg/io"
	"github.com/matzehuels/reflow/pkg/render"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// DefaultScale is the default number of pixels per layout unit.
const DefaultScale = render.DefaultScale

// Options configures one pipeline run.
type Options struct {
	// Input
	ScenePath  string `json:"scene_path"`
	ScriptPath string `json:"script_path,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"` // ignore cached runs

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Edges   bool     `json:"edges,omitempty"` // containment edges in DOT output

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this invocation in logs and hooks.
	RunID string

	// Snapshot is the layout after the last generation.
	Snapshot *pkgio.Snapshot

	// SnapshotHash is the content hash of the snapshot's JSON encoding.
	SnapshotHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Generations returns the per-generation changes recorded in the snapshot.
func (r *Result) Generations() []pkgio.Generation { return r.Snapshot.Changed }

// Stats contains pipeline execution statistics.
type Stats struct {
	Nodes       int
	Statements  int
	Generations int
	Changed     int // rectangles reported across all generations
	LoadTime    time.Duration
	RunTime     time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	RunHit    bool
	RenderHit bool // whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, svg, dot, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateScenePath(o.ScenePath); err != nil {
		return err
	}
	if o.ScriptPath != "" {
		if err := errors.ValidatePath(o.ScriptPath); err != nil {
			return err
		}
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Wants reports whether format was requested.
func (o *Options) Wants(format string) bool {
	return slices.Contains(o.Formats, format)
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Scale:  o.Scale,
		Labels: o.Labels,
		Edges:  o.Edges && format == FormatDOT,
	}
}
