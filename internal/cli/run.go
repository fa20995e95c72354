package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"repohub/internal/config"
	"repohub/internal/domain"
	"repohub/internal/eventbus"
	"repohub/internal/github"
	"repohub/internal/ui"
	"repohub/internal/ui/screens"
	"repohub/internal/ui/viewmodels"
	"repohub/internal/ui/views"
)

// RunTUI wires the GitHub client, event bus and screens, then runs the
// terminal UI until the user quits or the process is signalled.
func RunTUI(cfg *config.Config, source domain.ListSource) error {
	closeLog, err := setupLogging(cfg.LogPath())
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := github.NewClient(cfg.GitHub.Token, github.WithBaseURL(cfg.GitHub.BaseURL))
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	scheduler := ui.NewLoopScheduler()
	env := screens.Env{
		ViewModels: viewmodels.Dependencies{
			Service:   client,
			Scheduler: scheduler,
			Bus:       bus,
			Context:   ctx,
			PerPage:   cfg.GitHub.PerPage,
		},
		UI:     cfg.UI,
		Styles: views.NewStyles(),
	}

	root, err := screens.NewListScreen(env, source)
	if err != nil {
		return err
	}

	log.Printf("Starting repohub %s: %s", Version, source)

	p := tea.NewProgram(ui.NewModel(bus, scheduler, root), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Printf("Interrupted")
			return nil
		}
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

// setupLogging points the standard logger at path; an empty path discards output
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() {
		log.SetOutput(io.Discard)
		_ = f.Close()
	}, nil
}

// initConfig writes the defaults unless a file already exists
func (a *App) initConfig(out io.Writer) error {
	bus := eventbus.New()
	defer bus.Close()

	saved := make(chan string, 1)
	unsubscribe := bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigSavedEvent); ok {
			saved <- ev.Path
		}
	})
	defer unsubscribe()

	svc := config.NewConfigServiceWithBus(bus, a.configPath)
	if _, err := os.Stat(svc.Path()); err == nil {
		return fmt.Errorf("config file already exists: %s", svc.Path())
	}
	if err := svc.Save(config.DefaultConfig()); err != nil {
		return err
	}
	path := svc.Path()
	select {
	case path = <-saved:
	case <-time.After(time.Second):
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
