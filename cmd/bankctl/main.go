package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"wordgrid/internal/config"
	"wordgrid/internal/crossword"
	"wordgrid/internal/database"
	"wordgrid/internal/models"
	"wordgrid/internal/repository"
	"wordgrid/internal/service"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: bank_YYYYMMDD_HHMMSS.json)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")

	// Generate flags
	generateOutput := generateCmd.String("output", "cgame.json", "Output file path for the generated puzzle")
	generateSeed := generateCmd.Int64("seed", 0, "Random seed (0 uses the current time)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	bankRepo := repository.NewBankRepository(db)
	clueRepo := repository.NewClueRepository(db)
	puzzleRepo := repository.NewPuzzleRepository(db)

	if err := bankRepo.EnsureDifficulties(models.DefaultDifficulties()); err != nil {
		log.Fatalf("Failed to ensure difficulty tiers: %v", err)
	}

	backupService := service.NewBackupService(bankRepo, clueRepo)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(backupService, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(backupService, *importInput)

	case "generate":
		generateCmd.Parse(os.Args[2:])
		bankService := service.NewBankService(bankRepo, clueRepo)
		if err := bankService.SeedIfEmpty(cfg.WordBankPath, cfg.PrimaryCluesPath, cfg.SecondaryCluesPath, crossword.ValidWord); err != nil {
			log.Fatalf("Failed to seed word banks: %v", err)
		}
		handleGenerate(bankRepo, puzzleRepo, *generateOutput, *generateSeed)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(backupService *service.BackupService, outputPath string) {
	// Generate default filename if not provided
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("bank_%s.json", timestamp)
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	log.Printf("Exporting word banks to: %s", outputPath)
	if err := backupService.ExportToFile(outputPath); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	log.Println("Export completed successfully")
}

func handleImport(backupService *service.BackupService, inputPath string) {
	log.Printf("Importing word banks from: %s", inputPath)
	if err := backupService.ImportFromFile(inputPath); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Println("Import completed successfully")
}

func handleGenerate(bankRepo *repository.BankRepository, puzzleRepo *repository.PuzzleRepository, outputPath string, seed int64) {
	puzzleService := service.NewPuzzleService(bankRepo, puzzleRepo)

	var seedPtr *int64
	if seed != 0 {
		seedPtr = &seed
	}

	stored, puzzle, err := puzzleService.GeneratePuzzle(seedPtr)
	if err != nil {
		log.Fatalf("Puzzle generation failed: %v", err)
	}

	data, err := json.MarshalIndent(puzzle, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode puzzle: %v", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		log.Fatalf("Failed to write puzzle file: %v", err)
	}

	log.Printf("Puzzle %s written to %s", stored.ID, outputPath)
}

func printUsage() {
	fmt.Println("Usage: bankctl <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  export    Export the word and clue banks to a JSON file")
	fmt.Println("  import    Import word and clue banks from a JSON file")
	fmt.Println("  generate  Generate a puzzle and write it to a JSON file")
	fmt.Println()
	fmt.Println("Run 'bankctl <command> -h' for command flags")
}
