// Command chaindemo runs an event bus scenario and prints the order handlers were called in.
//
// Usage:
//
//	chaindemo [FLAGS]
//
// Without --scenario, the built-in focus scenario is run.
// Flag defaults may be set with CHAINDEMO_* environment variables.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/besurechan/eventbus"
	"github.com/besurechan/eventbus/internal/env"
	"github.com/besurechan/eventbus/internal/scenario"
	"github.com/charmbracelet/lipgloss"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
)

var (
	ErrUsage = errors.New("usage error")
)

type config struct {
	scenarioPath string
	dispatches   int
	logLevel     string
	logFormat    string
	color        string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	vars := env.New("CHAINDEMO")
	conf := new(config)
	fs := flag.NewFlagSet("chaindemo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&conf.scenarioPath, "scenario", "s", vars.Val("SCENARIO", ""), "Scenario file to run (.yaml, .yml, or .toml)")
	fs.IntVarP(&conf.dispatches, "dispatches", "n", vars.Int("DISPATCHES", 0), "Overrides the number of dispatches in the scenario")
	fs.StringVar(&conf.logLevel, "log-level", vars.Val("LOG_LEVEL", "warn"), "Bus log level: debug, info, warn, or error")
	fs.StringVar(&conf.logFormat, "log-format", vars.Val("LOG_FORMAT", "text"), "Bus log format: text or json")
	fs.StringVar(&conf.color, "color", vars.Val("COLOR", "auto"), "Colored trace output: auto, always, or never")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, `Runs an event bus scenario and prints the order handlers were called in.

USAGE:
chaindemo [FLAGS]

FLAGS
%s
Each flag default may be set with %s, %s, %s, %s, or %s.
`, fs.FlagUsages(), vars.Name("SCENARIO"), vars.Name("DISPATCHES"), vars.Name("LOG_LEVEL"), vars.Name("LOG_FORMAT"), vars.Name("COLOR"))
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
	}
	if conf.dispatches < 0 {
		return nil, fmt.Errorf("%w: dispatches must be >= 0", ErrUsage)
	}
	return conf, nil
}

func newLogger(conf *config, out io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(conf.logLevel)); err != nil {
		return nil, fmt.Errorf("%w: invalid log level '%s'", ErrUsage, conf.logLevel)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(conf.logFormat) {
	case "text":
		return slog.New(slog.NewTextHandler(out, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(out, opts)), nil
	default:
		return nil, fmt.Errorf("%w: invalid log format '%s'", ErrUsage, conf.logFormat)
	}
}

func useColor(setting string, out io.Writer) (bool, error) {
	switch strings.ToLower(setting) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("%w: invalid color setting '%s'", ErrUsage, setting)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	conf, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	log, err := newLogger(conf, stderr)
	if err != nil {
		return err
	}
	color, err := useColor(conf.color, stdout)
	if err != nil {
		return err
	}

	s := scenario.Default()
	if len(conf.scenarioPath) > 0 {
		s, err = scenario.Load(conf.scenarioPath)
		if err != nil {
			return err
		}
	}
	if conf.dispatches > 0 {
		s.Dispatches = conf.dispatches
	}

	p := newTracePrinter(stdout, color)
	p.header(s)
	bus := eventbus.New(eventbus.WithLogger(log.With("scenario", s.Name)))
	results := s.Run(bus, p.step)
	p.summary(results)
	return nil
}

type tracePrinter struct {
	out                                io.Writer
	title, handler, chain, done, muted lipgloss.Style
}

func newTracePrinter(out io.Writer, color bool) *tracePrinter {
	p := &tracePrinter{
		out:     out,
		title:   lipgloss.NewStyle(),
		handler: lipgloss.NewStyle(),
		chain:   lipgloss.NewStyle(),
		done:    lipgloss.NewStyle(),
		muted:   lipgloss.NewStyle(),
	}
	if color {
		p.title = p.title.Bold(true)
		p.handler = p.handler.Foreground(lipgloss.Color("6"))
		p.chain = p.chain.Foreground(lipgloss.Color("5"))
		p.done = p.done.Foreground(lipgloss.Color("2"))
		p.muted = p.muted.Foreground(lipgloss.Color("8"))
	}
	return p
}

func (p *tracePrinter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *tracePrinter) header(s *scenario.Scenario) {
	p.printf("%s\n", p.title.Render(fmt.Sprintf("Scenario '%s': %d dispatch(es) of '%s'", s.Name, s.Dispatches, s.Event)))
}

func (p *tracePrinter) step(step scenario.Step) {
	prefix := p.muted.Render(fmt.Sprintf("[%d]", step.Dispatch))
	switch step.Kind {
	case scenario.StepHandler:
		p.printf("%s %s %s\n", prefix, p.handler.Render("handler"), step.Handler)
	case scenario.StepChain:
		p.printf("%s %s %s (%s)\n", prefix, p.chain.Render("chain"), step.Handler, step.Detail)
	case scenario.StepResume:
		p.printf("%s %s %s\n", prefix, p.chain.Render("resume"), step.Handler)
	case scenario.StepComplete:
		p.printf("%s %s\n", prefix, p.done.Render("complete"))
	case scenario.StepResult:
		p.printf("%s %s\n", prefix, p.muted.Render("chain "+step.Detail))
	}
}

func (p *tracePrinter) summary(results []scenario.Result) {
	counts := map[eventbus.ChainState]int{}
	for _, r := range results {
		counts[r.State]++
	}
	p.printf("%s\n", p.title.Render(fmt.Sprintf("%d complete, %d stopped, %d suspended",
		counts[eventbus.ChainComplete], counts[eventbus.ChainStopped], counts[eventbus.ChainSuspended])))
}
