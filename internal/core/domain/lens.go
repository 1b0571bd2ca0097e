package domain

// Severity grades a diagnosed maintenance issue.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityCritical Severity = "CRITICAL"
)

// AnalysisResult is the Lens diagnosis of a single image.
type AnalysisResult struct {
	Issue      string   `json:"issue"`
	Severity   Severity `json:"severity"`
	Action     string   `json:"action"`
	Confidence string   `json:"confidence"`
}

// FailedAnalysis is the degraded result shown when a diagnosis cannot be
// produced.
func FailedAnalysis() AnalysisResult {
	return AnalysisResult{
		Issue:      "Analysis Failed",
		Severity:   SeverityLow,
		Action:     "Please retry",
		Confidence: "0%",
	}
}

// LensMode selects what processing an image goes through.
type LensMode string

const (
	LensAnalyze LensMode = "ANALYZE"
	LensEdit    LensMode = "EDIT"
)

// Image is an uploaded photo with its sniffed MIME type.
type Image struct {
	Data     []byte
	MIMEType string
}
