// cmd/ask/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"ai-web-explorer/internal/app"
)

const usage = `Usage: ask [-config path] 'your question'

Examples:
  ask 'What is the capital of France?'
  ask 'What are the latest AI news?'
`

func main() {
	configPath := flag.String("config", "", "path to a config YAML file")
	flag.Usage = func() {
		fmt.Fprint(os.Stdout, usage)
	}
	flag.Parse()

	question := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if question == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	log := app.NewLogger(cfg)
	explorer, err := app.New(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	answer := explorer.Agent.Answer(context.Background(), question)

	banner := strings.Repeat("=", 80)
	fmt.Println(banner)
	fmt.Println("ANSWER:")
	fmt.Println(banner)
	fmt.Println(answer)
	fmt.Println(banner)
}
