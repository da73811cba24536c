package main

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grindlemire/floatui/internal/loop"
)

func (c *cli) newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive terminal demo",
		Long: `demo opens a full-screen page with a menu and submenu, a select, two
grouped tooltips and a context menu, all positioned and driven by the engine.
Use the mouse or Tab, the arrow keys, Enter and Escape. Ctrl+C quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), c.v.GetInt("demo.fps"), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().Int("fps", 60, "engine frame rate (1-240)")
	_ = c.v.BindPFlag("demo.fps", cmd.Flags().Lookup("fps"))
	return cmd
}

// frameMsg carries a page rendered on the engine loop.
type frameMsg string

// demoModel only displays frames. Input is posted to the engine loop, which
// owns the document and answers with a new frame.
type demoModel struct {
	post  func(func())
	scene *scene
	view  string
}

func (m demoModel) Init() tea.Cmd {
	return nil
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.view = string(msg)
	case tea.WindowSizeMsg:
		m.post(func() { m.scene.resize(msg.Width, msg.Height) })
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.post(func() { m.scene.key(msg) })
	case tea.MouseMsg:
		m.post(func() { m.scene.mouse(msg) })
	}
	return m, nil
}

func (m demoModel) View() string {
	return m.view
}

func runDemo(ctx context.Context, fps int, in io.Reader, out io.Writer) error {
	logger := loggerFromContext(ctx)

	l, err := loop.New(loop.WithFrameRate(fps))
	if err != nil {
		return err
	}

	var prog *tea.Program
	s, err := newScene(l, 80, 24, defaultTheme(), func(view string) { prog.Send(frameMsg(view)) })
	if err != nil {
		return err
	}
	prog = tea.NewProgram(demoModel{post: l.Post, scene: s},
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Debug("starting demo", "fps", fps)
	loopDone := make(chan error, 1)
	go func() { loopDone <- l.Run(ctx) }()
	l.Post(s.invalidate)

	_, err = prog.Run()
	l.Stop()
	if loopErr := <-loopDone; loopErr != nil && !errors.Is(loopErr, context.Canceled) {
		logger.Error("engine loop stopped", "err", loopErr)
	}
	// The loop has returned, so nothing else touches the scene.
	s.Dispose()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	logger.Debug("demo finished")
	return err
}
