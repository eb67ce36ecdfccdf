// ABOUTME: Command-line benchmark runner for RAGAS tests
// ABOUTME: Executes transcript QA benchmarks and outputs JSON results
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/harper/tubewise/benchmarks/ragas"
	"github.com/harper/tubewise/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	testID := flag.String("test", "", "Run specific test (fact, late, unanswerable). If empty, runs all tests.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	offline := flag.Bool("offline", false, "Use deterministic local fakes instead of the configured providers")
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (continuing anyway): %v", err)
	}

	fmt.Println("========================================")
	fmt.Println("Tubewise RAGAS Benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	var runner *ragas.BenchmarkRunner
	if *offline {
		runner = ragas.NewOfflineRunner(*verbose)
	} else {
		cfg, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		runner, err = ragas.NewBenchmarkRunner(cfg, *verbose)
		if err != nil {
			log.Fatalf("Failed to create benchmark runner: %v", err)
		}
	}

	ctx := context.Background()
	var results []ragas.TestResult

	if *testID == "" {
		fmt.Println("Running all RAGAS benchmark tests...")
		fmt.Println()

		var err error
		results, err = runner.RunAllTests(ctx)
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	} else {
		scenario, ok := ragas.GetTest(strings.ToLower(*testID))
		if !ok {
			log.Fatalf("Unknown test ID: %s (valid options: fact, late, unanswerable)", *testID)
		}

		fmt.Printf("Running test: %s\n\n", scenario.Name)

		result, err := runner.RunTest(ctx, scenario)
		if err != nil {
			log.Fatalf("Test failed: %v", err)
		}

		results = []ragas.TestResult{result}
	}

	_, failed := ragas.WriteSummary(os.Stdout, results)

	if err := runner.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
