package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/reflow/pkg/io"
	"github.com/matzehuels/reflow/pkg/pipeline"
)

func (c *CLI) stepCommand() *cobra.Command {
	var (
		script string
		flags  cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "step SCENE",
		Short: "Browse the generations of an edit script",
		Long: `Replay an edit script against a scene and browse the rectangles each
generation changed, one generation per page.

Keys: ←/→ or h/l to move, g/G for first/last, q to quit.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: sceneArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStep(cmd.Context(), args[0], script, flags)
		},
	}

	cmd.Flags().StringVarP(&script, "script", "s", "", "edit script to replay")
	flags.register(cmd)
	completeScriptFlag(cmd)

	return cmd
}

func (c *CLI) runStep(ctx context.Context, scenePath, script string, flags cacheFlags) error {
	runner, err := c.newRunner(ctx, flags)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Run(ctx, pipeline.Options{
		ScenePath:  scenePath,
		ScriptPath: script,
		Logger:     c.Logger,
	})
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(newStepModel(scenePath, res.Generations()), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// stepModel pages through generations.
type stepModel struct {
	title       string
	generations []pkgio.Generation
	current     int
}

func newStepModel(title string, gens []pkgio.Generation) stepModel {
	return stepModel{title: title, generations: gens}
}

func (m stepModel) Init() tea.Cmd { return nil }

func (m stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		if m.current > 0 {
			m.current--
		}
	case "right", "l", " ":
		if m.current < len(m.generations)-1 {
			m.current++
		}
	case "g", "home":
		m.current = 0
	case "G", "end":
		m.current = max(len(m.generations)-1, 0)
	}
	return m, nil
}

func (m stepModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n\n")

	if len(m.generations) == 0 {
		b.WriteString(StyleDim.Render("No generations."))
		b.WriteString("\n")
		return b.String()
	}

	g := m.generations[m.current]
	fmt.Fprintf(&b, "Generation %d/%d %s\n",
		m.current+1, len(m.generations),
		StyleDim.Render(fmt.Sprintf("(%d changed)", len(g.Rects))))
	if len(g.Rects) > 0 {
		b.WriteString(changesTable(g.Rects))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ move · g/G first/last · q quit"))
	b.WriteString("\n")
	return b.String()
}
