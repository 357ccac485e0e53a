package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"fils/internal/amqp"
	"fils/internal/analytics"
	"fils/internal/categorize"
	"fils/internal/cli"
	"fils/internal/core"
	"fils/internal/messagedb"
	"fils/internal/report"
	"fils/internal/services"
	"fils/internal/store"
)

type exportFile struct {
	Summary      *core.Summary `json:"summary"`
	Transactions []core.Record `json:"transactions"`
}

func main() {
	days := flag.Int("days", 0, "only ingest messages from the last N days (0 = all)")
	output := flag.String("output", "", "also write the summary and transactions as JSON to this file")
	showCategories := flag.Bool("show-categories", false, "print the category mapping and exit")
	suggest := flag.Bool("suggest", false, "list uncategorized counterparties from the stored collection and exit")
	addCategory := flag.String("add-category", "", "register a new category and exit")
	addKeyword := flag.String("add-keyword", "", "add a keyword, given as category:keyword, and exit")
	index := flag.Int("index", -1, "with -category, correct the stored transaction at this index")
	category := flag.String("category", "", "with -index, the corrected category name")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	mapping := categorize.LoadOrDefault(cfg.CategoriesFile)

	switch {
	case *showCategories:
		printCategories(mapping)
		return
	case *suggest:
		runSuggest(logger, cfg.DataFile)
		return
	case *addCategory != "":
		runAddCategory(logger, mapping, cfg.CategoriesFile, *addCategory)
		return
	case *addKeyword != "":
		runAddKeyword(logger, mapping, cfg.CategoriesFile, *addKeyword)
		return
	case *index >= 0 || *category != "":
		runCorrection(logger, mapping, cfg.DataFile, *index, *category)
		return
	}

	if cfg.MessageDBPath == "" {
		logger.Error("FILS_MESSAGE_DB_PATH must be set to ingest messages")
		os.Exit(1)
	}

	ctx, cancel := cli.ShutdownContext(logger)
	defer cancel()

	msgStore, err := messagedb.Open(cfg.MessageDBPath)
	if err != nil {
		logger.Error("Failed to open message store", "error", err, "path", cfg.MessageDBPath)
		os.Exit(1)
	}
	defer msgStore.Close()

	txs, stats, err := services.NewIngestor(msgStore, mapping).Ingest(ctx, *days)
	if err != nil {
		logger.Error("Ingest failed", "error", err)
		os.Exit(1)
	}
	if len(txs) == 0 {
		fmt.Println("No transactions found.")
		logger.Info("Nothing to report", "fetched", stats.Fetched, "skipped", stats.Skipped)
		return
	}

	fileStore := store.New(cfg.DataFile)
	if err := fileStore.Save(txs); err != nil {
		logger.Error("Failed to save transactions", "error", err, "path", cfg.DataFile)
		os.Exit(1)
	}

	archive := cli.InitArchive(logger, cfg.ArchiveDBPath)

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// The worker's startup check drains anything we fail to
			// announce here.
			logger.Error("Failed to connect to AMQP, sync deferred", "error", err)
		}
	}

	txService := services.NewTransactionService(archive, amqpClient)
	defer txService.Close()

	if _, err := txService.ArchiveAll(ctx, txs); err != nil {
		logger.Error("Failed to archive transactions", "error", err)
		os.Exit(1)
	}

	sum, err := analytics.New(cfg.BucketLocation()).Analyze(txs)
	if err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	if err := report.Render(os.Stdout, sum, txs); err != nil {
		logger.Error("Failed to render report", "error", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := writeExport(*output, sum, txs); err != nil {
			logger.Error("Failed to write export", "error", err, "path", *output)
			os.Exit(1)
		}
		fmt.Printf("\nExported summary and %d transactions to %s\n", len(txs), *output)
	}
}

func printCategories(mapping *categorize.Mapping) {
	fmt.Println("Categories:")
	for _, name := range mapping.Categories() {
		kws := mapping.Keywords(name)
		if len(kws) == 0 {
			fmt.Printf("  %s\n", name)
			continue
		}
		fmt.Printf("  %s: %s\n", name, strings.Join(kws, ", "))
	}
}

func runSuggest(logger *slog.Logger, dataFile string) {
	txs, err := store.New(dataFile).Load()
	if err != nil {
		logger.Error("Failed to load transactions", "error", err, "path", dataFile)
		os.Exit(1)
	}
	names := categorize.Uncategorized(txs)
	if len(names) == 0 {
		fmt.Println("No uncategorized counterparties.")
		return
	}
	fmt.Printf("%d uncategorized counterparties:\n", len(names))
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("\nAssign one with -add-keyword category:keyword, then re-run the ingest.")
}

func runAddCategory(logger *slog.Logger, mapping *categorize.Mapping, path, name string) {
	if path == "" {
		logger.Error("FILS_CATEGORIES_FILE must be set to edit the category mapping")
		os.Exit(1)
	}
	if mapping.Has(name) {
		fmt.Printf("Category %q already exists.\n", name)
		return
	}
	mapping.AddCategory(name)
	if err := mapping.Save(path); err != nil {
		logger.Error("Failed to save category mapping", "error", err, "path", path)
		os.Exit(1)
	}
	fmt.Printf("Added category %q.\n", name)
}

func runAddKeyword(logger *slog.Logger, mapping *categorize.Mapping, path, spec string) {
	if path == "" {
		logger.Error("FILS_CATEGORIES_FILE must be set to edit the category mapping")
		os.Exit(1)
	}
	name, keyword, ok := strings.Cut(spec, ":")
	if !ok || name == "" || keyword == "" {
		logger.Error("Keyword must be given as category:keyword", "got", spec)
		os.Exit(1)
	}
	if !mapping.Has(name) {
		logger.Error("Unknown category", "category", name)
		os.Exit(1)
	}
	mapping.AddKeyword(name, keyword)
	if err := mapping.Save(path); err != nil {
		logger.Error("Failed to save category mapping", "error", err, "path", path)
		os.Exit(1)
	}
	fmt.Printf("Added keyword %q to category %q.\n", strings.ToLower(keyword), name)
}

func runCorrection(logger *slog.Logger, mapping *categorize.Mapping, dataFile string, index int, category string) {
	if index < 0 || category == "" {
		logger.Error("Category correction needs both -index and -category")
		os.Exit(1)
	}
	if !mapping.Has(category) {
		logger.Error("Unknown category", "category", category)
		os.Exit(1)
	}
	tx, err := store.New(dataFile).UpdateCategory(index, category)
	if err != nil {
		logger.Error("Failed to correct category", "error", err, "index", index)
		os.Exit(1)
	}
	fmt.Printf("Transaction %d (%s) recategorized as %q.\n", index, tx.Counterparty, category)
}

func writeExport(path string, sum *core.Summary, txs []core.Transaction) error {
	data, err := json.MarshalIndent(exportFile{
		Summary:      sum,
		Transactions: core.ToRecords(txs),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
