// Package main provides a performance benchmarking tool for the protein-analyser CLI.
// It measures scoring throughput across synthetic batch sizes and worker counts,
// running each combination multiple times, treating the first successful run as cold
// and averaging the rest as warm, generating CSV output for performance analysis.
//
// Prerequisites:
// - protein-analyser binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic record batches are generated
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of one batch-size/worker-count combination.
type BenchmarkResult struct {
	Records  int
	Workers  int
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir    string
	Timeout    time.Duration
	Runs       int
	BatchSizes []int
	Workers    []int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:    workDir,
		Timeout:    5 * time.Minute,
		Runs:       4,
		BatchSizes: []int{100, 1000, 5000},
		Workers:    []int{1, 2, 4, 8},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the protein-analyser binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if protein-analyser is available
	if _, err := exec.LookPath("protein-analyser"); err != nil {
		return fmt.Errorf("protein-analyser binary not found in PATH")
	}

	if _, err := os.Stat(config.WorkDir); os.IsNotExist(err) {
		return fmt.Errorf("work directory not found at %s", config.WorkDir)
	}

	return nil
}

// runBenchmarks executes all benchmark combinations across configured batch sizes
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: batches %v, workers %v, %v timeout, %d runs each\n",
		config.BatchSizes, config.Workers, config.Timeout, config.Runs)

	for _, size := range config.BatchSizes {
		batchDir, err := generateBatch(config.WorkDir, size)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %d-record batch: %w", size, err)
		}

		for _, workers := range config.Workers {
			fmt.Printf("Scoring %d records with %d worker(s)\n", size, workers)

			cold, times := runBenchmark(config, batchDir, workers)

			coldStr := "TIMEOUT"
			if cold > 0 {
				coldStr = fmt.Sprintf("%.3fs", cold)
			}
			warmStr := "TIMEOUT"
			if len(times) > 0 {
				var sum float64
				for _, t := range times {
					sum += t
				}
				warmStr = fmt.Sprintf("%.3fs", sum/float64(len(times)))
			}

			fmt.Printf("  Cold time: %s, Warm average: %s\n", coldStr, warmStr)

			results = append(results, BenchmarkResult{
				Records:  size,
				Workers:  workers,
				ColdTime: coldStr,
				WarmTime: warmStr,
			})
		}
	}

	return results, nil
}

// generateBatch writes size synthetic record files under workDir and returns
// the batch directory. Values cycle so every mode sees scored, rejected, and
// spiking-flagged products.
func generateBatch(workDir string, size int) (string, error) {
	batchDir := filepath.Join(workDir, fmt.Sprintf("batch_%d", size))
	if err := os.MkdirAll(batchDir, 0o755); err != nil {
		return "", err
	}

	for i := 0; i < size; i++ {
		protein := 20.0 + float64(i%10)
		kcal := 110.0 + float64(i%7)*40.0
		glycine := 0.4 + float64(i%5)
		record := fmt.Sprintf(`{
  "brand": "bench_brand_%06d",
  "nutrients": {
    "extracted_fields": {
      "serving_size_g": 32.0,
      "energy_kcal_per_serving": %.1f,
      "protein_g_per_serving": %.1f,
      "sodium_mg_per_serving": 140
    }
  },
  "aminoacids": {
    "extracted_fields": {
      "eaas": {"total_g": %.1f, "bcaas": {"total_g": 5.2, "leucine_g": 2.4}},
      "seaas": {"glycine_g": %.1f},
      "neaas": {}
    }
  }
}`, i, kcal, protein, protein*0.45, glycine)

		name := filepath.Join(batchDir, fmt.Sprintf("record_%06d.json", i))
		if err := os.WriteFile(name, []byte(record), 0o644); err != nil {
			return "", err
		}
	}

	return batchDir, nil
}

// runBenchmark executes a scoring run multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, batchDir string, workers int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"score", batchDir,
		"--workers", fmt.Sprintf("%d", workers),
		"--limit", "1000",
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("protein-analyser", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates a completed scoring run
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Scoring completed in") &&
		strings.Contains(outputStr, "using") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/protein_analyser_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"records", "workers", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		row := []string{
			fmt.Sprintf("%d", result.Records),
			fmt.Sprintf("%d", result.Workers),
			result.ColdTime,
			result.WarmTime,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, result := range results {
		fmt.Printf("  %6d records / %d worker(s): Cold: %s, Warm: %s\n",
			result.Records, result.Workers, result.ColdTime, result.WarmTime)
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
