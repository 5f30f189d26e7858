package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/foxcybersec/rust-rcon-commandline/internal/rcon"
	"github.com/foxcybersec/rust-rcon-commandline/internal/ui"
)

type options struct {
	host        string
	port        int
	password    string
	command     []string
	timeout     int
	verbose     bool
	raw         bool
	interactive bool
}

func main() {
	var opts options
	flag.StringVarP(&opts.host, "host", "H", "", "server hostname or IP address")
	flag.IntVarP(&opts.port, "port", "P", 0, "server RCON port")
	flag.StringVarP(&opts.password, "password", "p", "", "RCON password")
	flag.StringArrayVarP(&opts.command, "command", "c", nil, "command to execute (use quotes for commands with spaces)")
	flag.IntVarP(&opts.timeout, "timeout", "t", 10, "connect and response timeout in seconds")
	flag.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flag.BoolVar(&opts.raw, "raw", false, "print the raw JSON response")
	flag.BoolVarP(&opts.interactive, "interactive", "i", false, "open an interactive console instead of running one command")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "rustrcon:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	switch {
	case opts.host == "":
		return errors.New("host is required (-H)")
	case opts.port < 1 || opts.port > 65535:
		return fmt.Errorf("port must be between 1 and 65535, got %d", opts.port)
	case opts.timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %d", opts.timeout)
	case opts.interactive && len(opts.command) > 0:
		return errors.New("-c and -i are mutually exclusive")
	case !opts.interactive && len(opts.command) == 0:
		return errors.New("command is required (-c), or pass -i for an interactive console")
	}

	var logger *slog.Logger
	if opts.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	client, err := rcon.Dial(rcon.Config{
		Host:     opts.host,
		Port:     opts.port,
		Password: opts.password,
		Timeout:  time.Duration(opts.timeout) * time.Second,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	if opts.interactive {
		p := tea.NewProgram(
			ui.NewModel(client, opts.host, 5),
			tea.WithAltScreen(),
		)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("console error: %w", err)
		}
		return nil
	}

	resp, err := client.Execute(strings.Join(opts.command, " "))
	if err != nil {
		return err
	}

	fmt.Println(ui.RenderResponse(resp, opts.raw, opts.verbose))
	return nil
}
