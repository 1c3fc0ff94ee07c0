package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/reflow/pkg/io"
	"github.com/matzehuels/reflow/pkg/scene"
	"github.com/matzehuels/reflow/pkg/session"
)

// debounceWindow collapses the burst of events an editor produces when it
// saves a file.
const debounceWindow = 150 * time.Millisecond

func (c *CLI) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch SCENE",
		Short: "Re-lay out a scene every time it changes",
		Long: `Lay out a scene, then watch the file and run one incremental generation
after every save. Only the nodes whose definition changed are marked, and
only the rectangles that moved or resized are printed.

Invalid edits are reported and the previous layout is kept.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: sceneArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runWatch(ctx context.Context, path string) error {
	w, res, err := newWatcher(path, c.Logger)
	if err != nil {
		return err
	}
	printGeneration(w.generation(res))

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// Editors often replace the file instead of writing it in place, so the
	// directory is watched and events are filtered by name.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	printInfo("Watching %s (Ctrl+C to stop)", path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)

		case <-fire:
			fire = nil
			res, err := w.reload()
			if err != nil {
				printWarning("%v", err)
				continue
			}
			printGeneration(w.generation(res))
		}
	}
}

// watcher keeps a session in step with a scene file.
type watcher struct {
	path   string
	scene  *scene.Scene
	sess   *session.Session
	logger *log.Logger
}

// newWatcher loads path and runs the first generation.
func newWatcher(path string, logger *log.Logger) (*watcher, session.Result, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, session.Result{}, err
	}
	sess, err := session.FromScene(sc, session.WithLogger(logger))
	if err != nil {
		return nil, session.Result{}, err
	}
	res, err := sess.Recompute()
	if err != nil {
		return nil, session.Result{}, err
	}
	return &watcher{path: path, scene: sc, sess: sess, logger: logger}, res, nil
}

// reload re-reads the scene and runs one generation. On error the previous
// scene stays current; a scene that fails to build leaves the session as it
// was.
func (w *watcher) reload() (session.Result, error) {
	next, err := scene.Load(w.path)
	if err != nil {
		return session.Result{}, err
	}
	marked, err := w.sess.Reload(w.scene, next)
	if err != nil {
		return session.Result{}, err
	}
	w.scene = next
	w.logger.Debug("scene changed", "marked", len(marked))
	return w.sess.Recompute()
}

// generation converts res into its exported form.
func (w *watcher) generation(res session.Result) pkgio.Generation {
	snap := pkgio.NewSnapshot(w.sess, []session.Result{res})
	return snap.Changed[0]
}
