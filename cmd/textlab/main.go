// Command textlab runs prototype analyses and the supporting text tools
// from the command line.
//
//	textlab [-config file] <command> [flags]
//
// Commands: analyze, summarize, translate, speak, transcribe, entities, index.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/textlab/internal/config"
	"github.com/nguyentantai21042004/textlab/internal/llm"
	"github.com/nguyentantai21042004/textlab/internal/logger"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

const usage = `usage: textlab [-config file] <command> [flags]

commands:
  analyze     -dir D [-mode hap|no_hap] [-disjoint] [-docx F] [-json F] [-db F]
  summarize   -file F [-extractive N] [-html F] [-candidates N] | -dir D -out O
  translate   -to LANG -file F
  speak       -file F [-save] [-out DIR]
  transcribe  -audio F
  entities    -file F [-llm]
  index       build -dir D | add -file F | query -q Q [-k N] [-answer] | sql [-driver -dsn -table]
`

// app carries what every command needs.
type app struct {
	cfg    *config.Config
	log    logger.Logger
	stdout io.Writer
	stderr io.Writer
	llm    llm.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 ok, 1 command failure, 2 usage.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("textlab", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to the YAML config file (optional)")
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	a := &app{
		cfg:    cfg,
		log:    logger.NewWithWriter(stderr, cfg.Logging.Level, cfg.Logging.Format),
		stdout: stdout,
		stderr: stderr,
	}

	commands := map[string]func(context.Context, []string) error{
		"analyze":    a.analyze,
		"summarize":  a.summarize,
		"translate":  a.translate,
		"speak":      a.speak,
		"transcribe": a.transcribe,
		"entities":   a.entities,
		"index":      a.index,
	}
	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", name, usage)
		return 2
	}
	if err := cmd(ctx, fs.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 1
	}
	return 0
}

var errUsage = errors.New("usage")

// newFlags builds a subcommand flag set writing to stderr.
func (a *app) newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// required reports a missing flag as a usage error.
func (a *app) required(fs *flag.FlagSet, name, value string) error {
	if value != "" {
		return nil
	}
	fmt.Fprintf(a.stderr, "%s: -%s is required\n", fs.Name(), name)
	fs.Usage()
	return errUsage
}

// client creates the Gemini client on first use.
func (a *app) client() (llm.Client, error) {
	if a.llm != nil {
		return a.llm, nil
	}
	if len(a.cfg.Gemini.APIKeys) == 0 {
		return nil, fmt.Errorf("set GEMINI_API_KEY or gemini.api_keys: %w", apperrors.ErrInvalidInput)
	}
	c, err := llm.New(llm.Config{
		APIKeys:    a.cfg.Gemini.APIKeys,
		Model:      a.cfg.Gemini.Model,
		EmbedModel: a.cfg.Gemini.EmbedModel,
	}, a.log)
	if err != nil {
		return nil, err
	}
	a.llm = c
	return c, nil
}
