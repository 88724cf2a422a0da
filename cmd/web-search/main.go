// cmd/web-search/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"ai-web-explorer/internal/app"
	"ai-web-explorer/internal/common/config"
	"ai-web-explorer/internal/models"
	websearch "ai-web-explorer/internal/workers/ai-conversation/web-search"
)

func main() {
	configPath := flag.String("config", "", "path to a config YAML file")
	count := flag.Int("n", config.MaxSearchResults, "number of results (1-10)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stdout, "Usage: web-search [-config path] [-n count] 'search query'")
	}
	flag.Parse()

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	if cfg.Search.APIKey == "" || cfg.Search.EngineID == "" {
		fmt.Fprintln(os.Stderr, "search.api_key and search.engine_id are required")
		os.Exit(1)
	}

	searcher := websearch.NewHandler(websearch.FromConfig(cfg.Search), app.NewLogger(cfg))
	results, err := searcher.Execute(context.Background(), query, *count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	printResults(results)
}

func printResults(results []models.SearchResult) {
	if len(results) == 0 {
		fmt.Println("No results found")
		return
	}

	fmt.Printf("\nFound %d results:\n\n", len(results))
	for _, r := range results {
		fmt.Printf("%d. %s\n", r.Position, r.Title)
		fmt.Printf("   URL: %s\n", r.URL)
		fmt.Printf("   %s\n", r.Snippet)
		fmt.Println()
	}
}
