package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikidoc"
	"github.com/fwojciec/wikidoc/crawl"
	"github.com/fwojciec/wikidoc/fs"
	"github.com/fwojciec/wikidoc/gemini"
	"github.com/fwojciec/wikidoc/goquery"
	"github.com/fwojciec/wikidoc/htmltomarkdown"
	wdhttp "github.com/fwojciec/wikidoc/http"
	"github.com/fwojciec/wikidoc/index"
	wdslog "github.com/fwojciec/wikidoc/slog"
	"github.com/fwojciec/wikidoc/sqlite"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

// DefaultBaseURL is the wiki crawled when no base URL is configured.
const DefaultBaseURL = "https://leowiki.htl-leonding.ac.at/"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration files consulted for flag defaults. Set before calling Run().
	ConfigPaths []string

	// SQLite database used by the index commands.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: configPaths(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wikidoc"),
		kong.Description("Crawl a DokuWiki into a Markdown corpus and answer questions from it."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(YAML, m.ConfigPaths...),
		kong.Vars{
			"db":       defaultDBPath(),
			"base_url": DefaultBaseURL,
			"username": wdhttp.DefaultUsername,
			"entry":    wikidoc.EntryPageID,
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wikidoc --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch kongCtx.Selected().Name {
	case "crawl":
		if err := m.wireCrawl(deps, &cli.Crawl); err != nil {
			return err
		}

	case "index":
		if err := m.openDB(cli.DB, stderr); err != nil {
			return err
		}
		defer m.Close()

		client, err := newGenAIClient(ctx, stderr)
		if err != nil {
			return err
		}
		embedder := gemini.NewEmbedder(client, "", gemini.TaskRetrievalDocument)
		deps.Indexer = &index.Indexer{
			Corpus:   fs.NewCorpusReader(cli.Index.Data),
			Index:    sqlite.NewIndexService(m.DB),
			Embedder: wdslog.NewLoggingEmbedder(embedder, deps.Logger),
			Runs:     sqlite.NewIndexRunService(m.DB),
		}

	case "ask":
		if err := m.openDB(cli.DB, stderr); err != nil {
			return err
		}
		defer m.Close()

		client, err := newGenAIClient(ctx, stderr)
		if err != nil {
			return err
		}
		embedder := gemini.NewEmbedder(client, "", gemini.TaskRetrievalQuery)
		deps.Asker = gemini.NewAsker(client, wdslog.NewLoggingEmbedder(embedder, deps.Logger), sqlite.NewIndexService(m.DB))

	case "corpus":
		deps.Corpus = fs.NewCorpusReader(cli.Corpus.Data)
		if cli.Corpus.Tokens {
			tc, err := gemini.NewTokenCounter(gemini.DefaultTokenizerModel)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			deps.Tokens = tc
		}
		if _, err := os.Stat(cli.DB); err == nil {
			if err := m.openDB(cli.DB, stderr); err != nil {
				return err
			}
			defer m.Close()
			deps.Runs = sqlite.NewIndexRunService(m.DB)
		}
	}

	return kongCtx.Run(deps)
}

// wireCrawl builds the session and crawler for the crawl command.
func (m *Main) wireCrawl(deps *Dependencies, c *CrawlCmd) error {
	session, err := wdhttp.NewSession(c.BaseURL,
		wdhttp.WithUsername(c.Username),
		wdhttp.WithEntry(c.Entry),
		wdhttp.WithTimeout(c.Timeout),
	)
	if err != nil {
		return err
	}
	deps.Session = wdslog.NewLoggingSession(session, deps.Logger)

	deps.Crawler = &crawl.Crawler{
		Session:     deps.Session,
		Sanitizer:   goquery.NewSanitizer(),
		Converter:   wdslog.NewLoggingConverter(htmltomarkdown.NewConverter(), deps.Logger),
		Corpus:      fs.NewCorpusWriter(c.Out),
		Limiter:     crawl.NewLimiter(c.Rate),
		Entry:       c.Entry,
		MaxPages:    c.MaxPages,
		RetryDelays: RetryDelays(c.Retries),
	}
	if c.MetricsFile != "" {
		deps.Crawler.Metrics = crawl.NewMetrics()
	}
	return nil
}

// openDB opens the index database, creating its directory if needed.
func (m *Main) openDB(path string, stderr io.Writer) error {
	if dir := filepath.Dir(path); dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set WIKIDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

func newGenAIClient(ctx context.Context, stderr io.Writer) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}
