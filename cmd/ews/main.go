package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/exchangekit/go-ews/exchange"
	"github.com/exchangekit/go-ews/internal/adapter"
	"github.com/exchangekit/go-ews/internal/config"
	"github.com/exchangekit/go-ews/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// main lists the upcoming week of calendar events and the mailbox folder
// tree for the configured account. It doubles as a smoke test for the
// endpoint and credentials.
func main() {
	printBuildInfo()

	log := logger.New("go-ews")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = log.WithLevel(cfg.Logging.Level)

	transport := adapter.NewSOAPTransport(adapter.SOAPConfig{
		Endpoint: cfg.Exchange.Endpoint,
		Username: cfg.Exchange.Username,
		Password: cfg.Exchange.Password,
		Timeout:  cfg.Exchange.RequestTimeout,
		Retries:  cfg.Exchange.Retries,
	}, log)

	svc := exchange.NewService(transport, log)
	ctx := context.Background()

	events, err := svc.Calendar("").ListEvents(ctx, time.Now(), time.Now().AddDate(0, 0, 7))
	if err != nil {
		log.Fatal().Err(err).Msg("list events")
	}
	if err = events.LoadAllDetails(ctx); err != nil {
		log.Fatal().Err(err).Msg("load event details")
	}

	fmt.Printf("Events in the next 7 days: %d\n", len(events.Events))
	for _, event := range events.Events {
		fmt.Printf("  %s  %s (%s)\n", event.Start().Format(time.RFC3339), event.Subject(), event.Location())
	}

	folders, err := svc.Folders().ListFolders(ctx, "all")
	if err != nil {
		log.Fatal().Err(err).Msg("list folders")
	}

	fmt.Printf("Folders: %d\n", folders.Count())
	for _, folder := range folders.Folders {
		fmt.Printf("  %-16s %s\n", folder.FolderType(), folder.DisplayName())
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Fprintf(os.Stderr, "Build version: %s\n", buildVersion)
	fmt.Fprintf(os.Stderr, "Build date: %s\n", buildDate)
	fmt.Fprintf(os.Stderr, "Build commit: %s\n", buildCommit)
}
