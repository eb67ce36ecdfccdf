// ABOUTME: Test scenario data structures for RAGAS benchmarks
// ABOUTME: Defines transcripts, questions, and ground truth for each test
package ragas

import (
	"github.com/harper/tubewise/internal/models"
)

// captionSeconds is the spacing between generated caption cues
const captionSeconds = 3.0

// TestScenario represents a complete RAGAS benchmark test
type TestScenario struct {
	ID          string
	Name        string
	Description string
	VideoID     string
	Captions    []string
	Question    string
	GroundTruth GroundTruth
}

// GroundTruth defines expected outcomes for RAGAS evaluation
type GroundTruth struct {
	ExpectedInResponse  []string // Strings that MUST appear in response
	ForbiddenInResponse []string // Strings that MUST NOT appear in response

	// Context retrieval expectations
	ExpectedContextItems []string // Transcript passages that should be retrieved
}

// Transcript builds the scenario's transcript with evenly spaced cues
func (s TestScenario) Transcript() *models.Transcript {
	entries := make([]models.TranscriptEntry, len(s.Captions))
	for i, c := range s.Captions {
		entries[i] = models.TranscriptEntry{Text: c, Start: float64(i) * captionSeconds, Duration: captionSeconds}
	}
	return models.NewTranscript(s.VideoID, entries)
}

// TestResult represents the outcome of a benchmark test
type TestResult struct {
	TestID             string                 `json:"test_id"`
	TestName           string                 `json:"test_name"`
	FaithfulnessScore  float64                `json:"faithfulness"`
	ContextRecallScore float64                `json:"context_recall"`
	OverallScore       float64                `json:"overall"`
	Status             string                 `json:"status"` // "PASS" or "FAIL"
	Details            map[string]interface{} `json:"details,omitempty"`
	ErrorMessage       string                 `json:"error,omitempty"`
}

var roastChickenCaptions = []string{
	"Hi everyone and welcome back to the kitchen.",
	"Today we are roasting a whole chicken with lemon and garlic.",
	"First pat the chicken dry with paper towels so the skin gets crispy.",
	"Rub the skin with butter, salt, pepper and chopped rosemary.",
	"Stuff the cavity with lemon halves and a head of garlic.",
	"Preheat the oven to 425 degrees Fahrenheit before the chicken goes in.",
	"Roast the chicken for about one hour and fifteen minutes.",
	"The chicken is done when the thigh reads 165 degrees on a thermometer.",
	"Let it rest for fifteen minutes before carving.",
	"Serve it with roasted potatoes and a green salad.",
}

// GetTestFactLookup returns the single fact lookup scenario
func GetTestFactLookup() TestScenario {
	return TestScenario{
		ID:          "fact",
		Name:        "Fact Lookup",
		Description: "Tests that a specific detail stated once in the video is retrieved and answered",
		VideoID:     "roastChick1",
		Captions:    roastChickenCaptions,
		Question:    "What temperature should the oven be preheated to?",
		GroundTruth: GroundTruth{
			ExpectedInResponse:   []string{"425"},
			ForbiddenInResponse:  []string{"350"},
			ExpectedContextItems: []string{"425 degrees Fahrenheit"},
		},
	}
}

// GetTestLateDetail returns the scenario whose answer sits at the end of a long transcript
func GetTestLateDetail() TestScenario {
	captions := []string{
		"Good morning from the train station, we are starting our big summer adventure.",
		"The first stop is a small mountain village known for cheese and hiking.",
		"We spent two days walking between wooden huts and drinking fresh milk.",
		"Then we took a slow regional train along the lake shore.",
		"The views of the water were incredible and the weather stayed sunny.",
		"In the evening we tried fondue for the first time, which was messy but fun.",
		"Next we rented bicycles and rode through vineyards for most of the afternoon.",
		"My legs were sore, so we rested at a guesthouse with a big garden.",
		"We also visited a castle museum with old armor and painted ceilings.",
		"Along the way we met other travelers who recommended a night market.",
		"The night market had grilled corn, lanterns and live music.",
		"After that we packed our bags and said goodbye to the mountains.",
		"At the end of the trip we flew to the city of Lisbon for three days of pastries and trams.",
		"Thanks for watching and let us know where we should go next summer.",
	}
	return TestScenario{
		ID:          "late",
		Name:        "Late Detail",
		Description: "Tests that retrieval reaches beyond the opening chunks of a long transcript",
		VideoID:     "summerTrip1",
		Captions:    captions,
		Question:    "Which city did they fly to at the end of the trip?",
		GroundTruth: GroundTruth{
			ExpectedInResponse:   []string{"Lisbon"},
			ExpectedContextItems: []string{"city of Lisbon"},
		},
	}
}

// GetTestUnanswerable returns the scenario whose question the video does not cover
func GetTestUnanswerable() TestScenario {
	return TestScenario{
		ID:          "unanswerable",
		Name:        "Unanswerable Question",
		Description: "Tests that questions outside the transcript get an admission instead of an invented answer",
		VideoID:     "roastChick1",
		Captions:    roastChickenCaptions,
		Question:    "Who won the football match last night?",
		GroundTruth: GroundTruth{
			ExpectedInResponse:  []string{"don't know"},
			ForbiddenInResponse: []string{"425", "won"},
		},
	}
}

// GetAllTests returns all benchmark scenarios
func GetAllTests() []TestScenario {
	return []TestScenario{
		GetTestFactLookup(),
		GetTestLateDetail(),
		GetTestUnanswerable(),
	}
}

// GetTest returns the scenario with the given ID
func GetTest(id string) (TestScenario, bool) {
	for _, s := range GetAllTests() {
		if s.ID == id {
			return s, true
		}
	}
	return TestScenario{}, false
}
