// ABOUTME: RAGAS-style metrics for transcript question answering
// ABOUTME: Deterministic scoring of answers and retrieved chunks against ground truth
package ragas

import (
	"fmt"
	"strings"

	"github.com/harper/tubewise/internal/llm/llmtest"
)

// passThreshold is the minimum faithfulness and recall for a PASS
const passThreshold = 0.9

// MetricsCalculator computes RAGAS scores for benchmark tests
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// containedIn splits needles into those found in haystack and those missing, ignoring case
func containedIn(haystack string, needles []string) (found, missing []string) {
	h := strings.ToUpper(haystack)
	for _, n := range needles {
		if strings.Contains(h, strings.ToUpper(n)) {
			found = append(found, n)
		} else {
			missing = append(missing, n)
		}
	}
	return found, missing
}

// CalculateFaithfulness scores whether the answer states what it should and nothing it must not.
// 1.0 means every expected item is present and no forbidden item is; each kind of violation costs 0.5.
func (m *MetricsCalculator) CalculateFaithfulness(
	response string,
	expectedInResponse []string,
	forbiddenInResponse []string,
) (float64, string) {
	_, missing := containedIn(response, expectedInResponse)
	forbidden, _ := containedIn(response, forbiddenInResponse)

	score := 1.0
	var problems []string
	if len(missing) > 0 {
		score -= 0.5
		problems = append(problems, fmt.Sprintf("missing expected items: %v", missing))
	}
	if len(forbidden) > 0 {
		score -= 0.5
		problems = append(problems, fmt.Sprintf("forbidden items found: %v", forbidden))
	}

	if len(problems) == 0 {
		return score, "Perfect faithfulness - response matches expected ground truth"
	}
	return score, "Faithfulness issues - " + strings.Join(problems, "; ")
}

// CalculateContextRecall is the fraction of expected passages present in the retrieved chunks
func (m *MetricsCalculator) CalculateContextRecall(
	retrievedContext []string,
	expectedContextItems []string,
) (float64, string) {
	if len(expectedContextItems) == 0 {
		return 1.0, "No context retrieval required"
	}

	found, missing := containedIn(strings.Join(retrievedContext, " "), expectedContextItems)
	recall := float64(len(found)) / float64(len(expectedContextItems))
	if len(missing) == 0 {
		return 1.0, "Perfect context recall - all expected items retrieved"
	}
	return recall, fmt.Sprintf("Partial context recall (%.2f) - missing items: %v", recall, missing)
}

// CalculateGroundedness is the fraction of the answer's words that occur in the retrieved chunks.
// An answer with no words is trivially grounded.
func (m *MetricsCalculator) CalculateGroundedness(response string, retrievedContext []string) float64 {
	words := llmtest.Words(response)
	if len(words) == 0 {
		return 1.0
	}
	vocab := map[string]bool{}
	for _, c := range retrievedContext {
		for _, w := range llmtest.Words(c) {
			vocab[w] = true
		}
	}
	grounded := 0
	for _, w := range words {
		if vocab[w] {
			grounded++
		}
	}
	return float64(grounded) / float64(len(words))
}

// EvaluateTest runs full RAGAS evaluation for a test
func (m *MetricsCalculator) EvaluateTest(
	scenario TestScenario,
	finalResponse string,
	retrievedContext []string,
) TestResult {
	faithfulness, faithfulnessDetail := m.CalculateFaithfulness(
		finalResponse,
		scenario.GroundTruth.ExpectedInResponse,
		scenario.GroundTruth.ForbiddenInResponse,
	)
	recall, recallDetail := m.CalculateContextRecall(
		retrievedContext,
		scenario.GroundTruth.ExpectedContextItems,
	)

	status := "FAIL"
	if faithfulness >= passThreshold && recall >= passThreshold {
		status = "PASS"
	}

	return TestResult{
		TestID:             scenario.ID,
		TestName:           scenario.Name,
		FaithfulnessScore:  faithfulness,
		ContextRecallScore: recall,
		OverallScore:       (faithfulness + recall) / 2.0,
		Status:             status,
		Details: map[string]interface{}{
			"faithfulness_detail": faithfulnessDetail,
			"recall_detail":       recallDetail,
			"groundedness":        m.CalculateGroundedness(finalResponse, retrievedContext),
			"final_response":      truncate(finalResponse, 200),
			"context_items":       len(retrievedContext),
		},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
