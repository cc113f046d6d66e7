// Command wordlist builds an annotated vocabulary wordlist from a Yiddish
// text. It tokenizes the input, looks every distinct word up in the enabled
// dictionary sources, and writes the result as a JSON document.
//
// Input is a text file path; when no such file exists the value is treated
// as the text itself. The output path defaults to the input path with a
// .json extension; literal text requires an explicit -output.
//
// Sources (-sources, comma-separated, overrides config):
//
//	structured: structured dictionary service over HTTP
//	html:       interactive HTML dictionary via a browser session
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/yiddishlab/wordlist/internal/adapter/browser"
	"github.com/yiddishlab/wordlist/internal/adapter/provider/wikparser"
	"github.com/yiddishlab/wordlist/internal/app"
	"github.com/yiddishlab/wordlist/internal/config"
	"github.com/yiddishlab/wordlist/internal/lookup"
	"github.com/yiddishlab/wordlist/internal/provider"
)

func main() {
	if err := run(); err != nil {
		slog.Error("wordlist failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to YAML config (default $CONFIG_PATH, then ./config.yaml)")
		input      = flag.String("input", "", "input text file, or the text itself when no such file exists")
		output     = flag.String("output", "", "output JSON path (default: input path with .json extension)")
		sourcesRaw = flag.String("sources", "", "comma-separated sources to run (overrides config)")
	)
	flag.Parse()

	inputSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "input" {
			inputSet = true
		}
	})
	if !inputSet {
		flag.Usage()
		return fmt.Errorf("-input is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg.Log)

	enabled := *sourcesRaw
	if enabled == "" {
		enabled = cfg.Sources.Enabled
	}
	sources, err := app.ParseSources(enabled)
	if err != nil {
		return err
	}

	text, inputPath, err := readInput(*input)
	if err != nil {
		return err
	}

	outPath, err := app.OutputPath(inputPath, *output)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		structured *lookup.StructuredLookup
		kentucky   *lookup.KentuckyExtractor
		session    provider.BrowserSession
	)
	for _, src := range sources {
		switch src {
		case app.SourceStructured:
			client := wikparser.NewClient(cfg.Structured.BaseURL, cfg.Structured.Timeout, logger)
			structured = lookup.NewStructuredLookup(client, cfg.Structured.Language, cfg.Structured.RelationList(), logger)
		case app.SourceHTML:
			sess, err := browser.Open(ctx, cfg.Kentucky.URL, cfg.Kentucky.Headless, cfg.Kentucky.Timeout, logger)
			if err != nil {
				return err
			}
			defer sess.Close()
			session = sess
			kentucky = lookup.NewKentuckyExtractor(logger)
		}
	}

	pipeline := app.New(structured, kentucky, session, logger)

	wordlist, res, err := pipeline.Build(ctx, text, sources)
	if err != nil {
		return err
	}

	if err := app.WriteJSON(outPath, wordlist); err != nil {
		return err
	}

	logger.Info("wordlist written",
		slog.String("path", outPath),
		slog.Int("words", res.Words),
		slog.Int("structured_found", res.StructuredLookups),
		slog.Int("structured_failed", res.StructuredFailed),
		slog.Int("kentucky_found", res.KentuckyLookups),
	)
	return nil
}

// readInput returns the text to process and, for file input, the path the
// output name is derived from. A value that names no existing file is the
// text itself; a directory is an error, not literal text.
func readInput(input string) (text, inputPath string, err error) {
	info, statErr := os.Stat(input)
	if statErr != nil {
		return input, "", nil
	}
	if info.IsDir() {
		return "", "", fmt.Errorf("input %s is a directory", input)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return "", "", fmt.Errorf("read input %s: %w", input, err)
	}
	return string(data), input, nil
}
