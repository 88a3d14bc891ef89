package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	beacon "github.com/Tap30/beacon-go"
	"github.com/Tap30/beacon-go/adapters"
	"github.com/Tap30/beacon-go/internal/config"
)

var client *beacon.Client
var scanner *bufio.Scanner
var contextCounter int
var eventCounter int

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Log, os.Stderr)

	transport, endpoint, err := newTransport(cfg)
	if err != nil {
		logger.Error("failed to create transport", "error", err)
		os.Exit(1)
	}
	if closer, ok := transport.(io.Closer); ok {
		defer closer.Close()
	}

	storage, err := newStorage(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to create storage", "error", err)
		os.Exit(1)
	}

	apiKeyHeader := cfg.Client.APIKeyHeader
	client, err = beacon.NewClient(beacon.ClientConfig{
		APIKey:         cfg.Client.APIKey,
		APIKeyHeader:   &apiKeyHeader,
		Endpoint:       endpoint,
		AnonymousID:    cfg.Client.AnonymousID,
		FlushInterval:  cfg.Client.FlushInterval,
		MaxBatchSize:   cfg.Client.MaxBatchSize,
		MaxRetries:     cfg.Client.MaxRetries,
		RetryBaseDelay: cfg.Client.RetryBaseDelay,
		SendTimeout:    cfg.Client.SendTimeout,
		Transport:      transport,
		Storage:        storage,
		Logger:         adapters.NewSlogLoggerAdapter(logger),
	})
	if err != nil {
		logger.Error("failed to create client", "error", err)
		os.Exit(1)
	}
	if err := client.Init(); err != nil {
		logger.Error("failed to initialize client", "error", err)
		os.Exit(1)
	}

	scanner = bufio.NewScanner(os.Stdin)

	fmt.Println("🎯 Beacon Interactive Client")
	fmt.Printf("Connected to: %s (%s)\n", endpoint, cfg.Client.Transport)
	fmt.Printf("Anonymous ID: %s\n\n", client.AnonymousID())

	for {
		showMenu()
		choice := readInput("Choose an option: ")

		switch choice {
		case "1":
			trackEvent()
		case "2":
			identifyUser()
		case "3":
			recordScreen()
		case "4":
			joinGroup()
		case "5":
			aliasUser()
		case "6":
			setContext()
		case "7":
			viewContext()
		case "8":
			trackMultipleEvents()
		case "9":
			flush()
		case "10":
			resetIdentity()
		case "11":
			fmt.Println("👋 Goodbye!")
			if err := client.Close(); err != nil {
				logger.Error("close failed", "error", err)
			}
			return
		case "12":
			fmt.Println("👋 Exiting without flush, pending messages are persisted")
			if err := client.CloseWithoutFlush(); err != nil {
				logger.Error("close failed", "error", err)
			}
			return
		default:
			fmt.Println("❌ Invalid option. Please try again.")
		}
	}
}

func showMenu() {
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("📊 Messages")
	fmt.Println("1. Track Event")
	fmt.Println("2. Identify User")
	fmt.Println("3. Screen View")
	fmt.Println("4. Group")
	fmt.Println("5. Alias")
	fmt.Println()
	fmt.Println("🏷️  Context")
	fmt.Println("6. Set Context Value")
	fmt.Println("7. View Context")
	fmt.Println()
	fmt.Println("📦 Batch and Flush")
	fmt.Println("8. Track Multiple Events (Batch Test)")
	fmt.Println("9. Manual Flush")
	fmt.Println()
	fmt.Println("🔄 Lifecycle")
	fmt.Println("10. Reset Identity")
	fmt.Println("11. Exit")
	fmt.Println("12. Exit Without Flush")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

func readInput(prompt string) string {
	fmt.Print(prompt)
	scanner.Scan()
	return strings.TrimSpace(scanner.Text())
}

func report(err error, done string) {
	if err != nil {
		fmt.Printf("❌ %v\n\n", err)
		return
	}
	fmt.Printf("✅ %s\n\n", done)
}

func trackEvent() {
	eventCounter++
	name := readInput("Event name: ")
	err := client.Track(name, beacon.Properties{"index": eventCounter}, beacon.Options{})
	report(err, "Tracked: "+name)
}

func identifyUser() {
	userID := readInput("User ID: ")
	email := readInput("Email (optional): ")
	traits := beacon.Traits{}
	if email != "" {
		traits["email"] = email
	}
	report(client.Identify(userID, traits, beacon.Options{}), "Identified: "+userID)
}

func recordScreen() {
	name := readInput("Screen name: ")
	report(client.Screen("", name, nil, beacon.Options{}), "Screen: "+name)
}

func joinGroup() {
	groupID := readInput("Group ID: ")
	report(client.Group(groupID, nil, beacon.Options{}), "Grouped: "+groupID)
}

func aliasUser() {
	newID := readInput("New user ID: ")
	report(client.Alias(newID, beacon.Options{}), "Aliased to: "+newID)
}

func setContext() {
	contextCounter++
	key := fmt.Sprintf("key_%d", contextCounter)
	value := fmt.Sprintf("value_%d", contextCounter)
	report(client.SetContext(key, value), fmt.Sprintf("Context set: %s = %s", key, value))
}

func viewContext() {
	fmt.Println("\n👀 Current Context")
	ctx := client.GetContext()
	if len(ctx) == 0 {
		fmt.Println("(empty)")
	}
	for k, v := range ctx {
		fmt.Printf("  %s: %v\n", k, v)
	}
	fmt.Printf("  anonymousId: %s\n  userId: %s\n\n", client.AnonymousID(), client.UserID())
}

func trackMultipleEvents() {
	for i := 0; i < 10; i++ {
		if err := client.Track("batch_event", beacon.Properties{"index": i}, beacon.Options{}); err != nil {
			report(err, "")
			return
		}
	}
	fmt.Println("✅ Tracked 10 events")
	fmt.Println()
}

func flush() {
	report(client.Flush(), "Messages flushed")
}

func resetIdentity() {
	client.Reset()
	fmt.Printf("✅ Identity reset, new anonymous ID: %s\n\n", client.AnonymousID())
}
