package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/matzehuels/reflow/pkg/errors"
	"github.com/matzehuels/reflow/pkg/observability"
	"github.com/matzehuels/reflow/pkg/scene"
	"github.com/matzehuels/reflow/pkg/script"
)

// Input is a loaded scene and script together with the bytes they were
// parsed from. The bytes feed the run cache key.
type Input struct {
	Scene       *scene.Scene
	SceneData   []byte
	SceneFormat scene.Format

	Script     *script.Script
	ScriptData []byte
}

// Load reads, parses and validates the inputs named by opts. Without a
// script path the script is empty, which runs a single generation.
func Load(ctx context.Context, opts Options) (in *Input, err error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLoadStart(ctx, opts.ScenePath)
	defer func() {
		nodes := 0
		if in != nil {
			nodes = len(in.Scene.Nodes)
		}
		hooks.OnLoadComplete(ctx, opts.ScenePath, nodes, time.Since(start), err)
	}()

	format, err := scene.FormatFromPath(opts.ScenePath)
	if err != nil {
		return nil, err
	}
	sceneData, err := readInput(opts.ScenePath, "scene")
	if err != nil {
		return nil, err
	}
	sc, err := scene.Parse(sceneData, format)
	if err != nil {
		return nil, err
	}

	in = &Input{Scene: sc, SceneData: sceneData, SceneFormat: format, Script: &script.Script{}}
	if opts.ScriptPath == "" {
		return in, nil
	}

	in.ScriptData, err = readInput(opts.ScriptPath, "script")
	if err != nil {
		return nil, err
	}
	in.Script, err = script.Parse(bytes.NewReader(in.ScriptData))
	if err != nil {
		return nil, err
	}
	return in, nil
}

func readInput(path, kind string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s %s", kind, path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s %s", kind, path)
	}
	return data, nil
}
