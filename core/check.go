package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// checkViolation is one product failing the policy gate.
type checkViolation struct {
	Brand  string
	Reason string
	Score  *float64
}

// checkResult summarizes a policy-gate evaluation over one batch.
type checkResult struct {
	Mode          schema.ScoringMode
	MinScore      float64
	TotalProducts int
	Indeterminate int
	Violations    []checkViolation
	BestBrand     string
	BestScore     *float64
	AvgScore      *float64
}

// Passed reports whether the batch cleared the gate.
func (r *checkResult) Passed() bool {
	return len(r.Violations) == 0
}

// ExecuteCheck runs the check command for CI/CD gating. It scores the batch,
// evaluates the selected mode against the minimum-score policy, and exits
// non-zero when any product violates it.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()

	reports, err := ScoreBatch(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	result := evaluateCheck(reports, cfg)
	printCheckResult(result, time.Since(start))

	// Return error if check failed
	if !result.Passed() {
		fmt.Printf("%d violation(s) found\n", len(result.Violations))
		os.Exit(1)
	}
	return nil
}

// evaluateCheck applies the gate policy to scored reports: a rejected product
// violates unless --allow-rejected, and a scored product violates when its
// composite falls under --min-score. Indeterminate products pass — missing
// label data never fails the gate — but are counted for the summary.
func evaluateCheck(reports []schema.ScoreReport, cfg *contract.Config) *checkResult {
	result := &checkResult{
		Mode:          cfg.Mode,
		MinScore:      cfg.MinScore,
		TotalProducts: len(reports),
	}

	var scoreSum float64
	var scoreCount int
	for i := range reports {
		ms := reports[i].ModeScoreFor(cfg.Mode)
		brand := reports[i].Brand

		switch ms.Status {
		case schema.StatusRejected:
			if !cfg.AllowRejected {
				reason := "rejected"
				if ms.RejectionReason != nil {
					reason = "rejected: " + *ms.RejectionReason
				}
				result.Violations = append(result.Violations, checkViolation{Brand: brand, Reason: reason})
			}
		case schema.StatusIndeterminate:
			result.Indeterminate++
		case schema.StatusScored:
			score := *ms.Score
			scoreSum += score
			scoreCount++
			if result.BestScore == nil || score > *result.BestScore {
				result.BestScore = schema.F64(score)
				result.BestBrand = brand
			}
			if score < cfg.MinScore {
				result.Violations = append(result.Violations, checkViolation{
					Brand:  brand,
					Reason: fmt.Sprintf("score %.3f < min %.3f", score, cfg.MinScore),
					Score:  ms.Score,
				})
			}
		}
	}
	if scoreCount > 0 {
		result.AvgScore = schema.F64(scoreSum / float64(scoreCount))
	}

	return result
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(result *checkResult, duration time.Duration) {
	printCheckHeader(result, duration)

	if result.Passed() {
		printCheckSuccess(result)
	} else {
		printCheckFailure(result)
	}
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(result *checkResult, duration time.Duration) {
	fmt.Println("Policy Check Results:")

	// Define labels and values for dynamic padding
	labels := []string{"Mode:", "Min score:"}
	values := []any{result.Mode, fmt.Sprintf("%.2f", result.MinScore)}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}

	// Print each label-value pair with consistent padding
	for i, label := range labels {
		fmt.Printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	fmt.Println()

	fmt.Printf("Checked %d products in %v\n\n", result.TotalProducts, duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(result *checkResult) {
	fmt.Printf("✅ All products passed the policy check\n\n")

	if result.BestScore != nil {
		fmt.Printf("Scores observed: best=%.3f (%s), avg=%.3f\n", *result.BestScore, result.BestBrand, *result.AvgScore)
	}
	if result.Indeterminate > 0 {
		fmt.Printf("%d product(s) indeterminate (insufficient label data)\n", result.Indeterminate)
	}
}

// printCheckFailure prints the failure case output.
func printCheckFailure(result *checkResult) {
	fmt.Printf("❌ Policy check failed: %d violation(s) across %d products\n\n", len(result.Violations), result.TotalProducts)

	// Show top 5 violations, with "+X more" if needed
	maxToShow := 5
	for i, v := range result.Violations {
		if i >= maxToShow {
			fmt.Printf("  ... and %d more\n", len(result.Violations)-maxToShow)
			break
		}
		fmt.Printf("  - %s (%s)\n", v.Brand, v.Reason)
	}
	fmt.Println()
}
