package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/wikidoc"
	"github.com/fwojciec/wikidoc/crawl"
	"github.com/fwojciec/wikidoc/index"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Session wikidoc.Session
	Crawler *crawl.Crawler
	Indexer *index.Indexer
	Asker   wikidoc.Asker
	Corpus  wikidoc.CorpusReader
	Tokens  wikidoc.TokenCounter
	Runs    wikidoc.IndexRunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"WIKIDOC_DB" default:"${db}" help:"Path to the index database"`
	Verbose bool   `short:"v" help:"Log every request"`

	Crawl  CrawlCmd  `cmd:"" help:"Crawl the wiki into a Markdown corpus"`
	Index  IndexCmd  `cmd:"" help:"Embed the corpus into the index"`
	Ask    AskCmd    `cmd:"" help:"Ask a question answered from the index"`
	Corpus CorpusCmd `cmd:"" help:"Show the documents of a corpus"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	BaseURL     string        `name:"base-url" default:"${base_url}" help:"Wiki base URL"`
	Username    string        `default:"${username}" help:"Wiki account name"`
	Password    string        `env:"WIKIDOC_PASSWORD" required:"" help:"Wiki account password"`
	Entry       string        `default:"${entry}" help:"Page the crawl starts from"`
	Out         string        `short:"o" default:"data" help:"Corpus output directory"`
	Rate        float64       `default:"0" help:"Requests per second (0 disables the limit)"`
	Timeout     time.Duration `default:"0s" help:"Per-request timeout (0 disables it)"`
	Retries     int           `default:"3" help:"Retries after a transport error"`
	MaxPages    int           `name:"max-pages" default:"0" help:"Stop after this many pages (0 means all)"`
	MetricsFile string        `name:"metrics-file" help:"Write Prometheus metrics to this file when done"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Data        string `short:"d" default:"data" help:"Corpus directory"`
	Rebuild     bool   `help:"Clear the index before indexing"`
	Concurrency int    `short:"c" default:"4" help:"Documents embedded at once"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" optional:"" help:"Question to ask (defaults to a sample question)"`
}

// CorpusCmd is the "corpus" subcommand.
type CorpusCmd struct {
	Data   string `short:"d" default:"data" help:"Corpus directory"`
	Tokens bool   `short:"t" help:"Count tokens per document"`
}
