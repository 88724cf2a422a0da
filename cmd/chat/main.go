// cmd/chat/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"ai-web-explorer/internal/app"
)

func main() {
	configPath := flag.String("config", "", "path to a config YAML file")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	explorer, err := app.New(cfg, app.NewLogger(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("AI Web Explorer (type 'quit' to exit)")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if isQuit(input) {
			fmt.Println("Goodbye!")
			return
		}
		if input == "" {
			continue
		}

		answer := explorer.Agent.Answer(context.Background(), input)
		fmt.Printf("Assistant: %s\n\n", answer)
	}
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "quit", "exit":
		return true
	}
	return false
}
