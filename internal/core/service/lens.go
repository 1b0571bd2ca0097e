package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/core/ports"
	"github.com/emarabot/plaza-os/internal/pkg/metrics"
)

const (
	defaultEditInstruction = "Enhance clarity"
	diagnosisConfidence    = "98.4%"
)

// LensState is what the Lens panel shows.
type LensState struct {
	Mode        domain.LensMode        `json:"mode"`
	HasImage    bool                   `json:"has_image"`
	MIMEType    string                 `json:"mime_type,omitempty"`
	Scanning    bool                   `json:"scanning"`
	Result      *domain.AnalysisResult `json:"result,omitempty"`
	Description string                 `json:"description,omitempty"`
}

// Lens is the image maintenance triage panel.
type Lens struct {
	sessionID string
	gateway   ports.Gateway
	guard     ports.InflightGuard
	log       zerolog.Logger
	scanDelay time.Duration

	mu          sync.RWMutex
	mode        domain.LensMode
	image       *domain.Image
	scans       int
	result      *domain.AnalysisResult
	description string
}

func newLens(sessionID string, deps panelDeps) *Lens {
	return &Lens{
		sessionID: sessionID,
		gateway:   deps.gateway,
		guard:     deps.guard,
		log:       deps.log,
		scanDelay: deps.timing.Scan,
		mode:      domain.LensAnalyze,
	}
}

func (l *Lens) State() LensState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stateLocked()
}

func (l *Lens) stateLocked() LensState {
	st := LensState{
		Mode:        l.mode,
		Scanning:    l.scans > 0,
		Description: l.description,
	}
	if l.image != nil {
		st.HasImage = true
		st.MIMEType = l.image.MIMEType
	}
	if l.result != nil {
		r := *l.result
		st.Result = &r
	}
	return st
}

// Load replaces the current image and clears any previous result.
func (l *Lens) Load(data []byte) (LensState, error) {
	if len(data) == 0 {
		return l.State(), domain.ErrNoImage
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return l.State(), domain.ErrUnsupportedImage
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.image = &domain.Image{Data: data, MIMEType: mt.String()}
	l.result = nil
	l.description = ""
	return l.stateLocked(), nil
}

// SetMode switches between diagnosing and editing and clears the result.
func (l *Lens) SetMode(mode domain.LensMode) LensState {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mode = mode
	l.result = nil
	l.description = ""
	return l.stateLocked()
}

// Process runs the loaded image through the current mode.
//
// ANALYZE always ends with a result: a parsed diagnosis, or the fixed
// "Analysis Failed" result when the service fails or answers with
// something that is not a diagnosis. EDIT keeps the previous state when the
// service fails. Only domain.ErrConfiguration is returned from the gateway.
func (l *Lens) Process(ctx context.Context, instruction string) (LensState, error) {
	l.mu.RLock()
	img, mode := l.image, l.mode
	l.mu.RUnlock()
	if img == nil {
		return l.State(), domain.ErrNoImage
	}

	capability := domain.CapabilityDiagnose
	if mode == domain.LensEdit {
		capability = domain.CapabilityEdit
	}
	release, err := acquire(ctx, l.guard, l.log, guardKey(l.sessionID, capability))
	if err != nil {
		return l.State(), err
	}
	defer release()

	l.scanStep(1)
	if mode == domain.LensEdit {
		err = l.edit(ctx, img, instruction)
	} else {
		err = l.diagnose(ctx, img)
	}
	l.scanStep(-1)
	return l.State(), err
}

func (l *Lens) diagnose(ctx context.Context, img *domain.Image) error {
	if err := wait(ctx, l.scanDelay); err != nil {
		return err
	}

	raw, err := l.gateway.DiagnoseImage(ctx, *img)
	var result domain.AnalysisResult
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		return err
	case err != nil:
		l.log.Warn().Err(err).Str("session_id", l.sessionID).Msg("diagnosis failed, using degraded result")
		metrics.AIFallbacksTotal.WithLabelValues(string(domain.CapabilityDiagnose), "transport").Inc()
		result = domain.FailedAnalysis()
	default:
		parsed, perr := ParseDiagnosis(raw)
		if perr != nil {
			l.log.Warn().Err(perr).Str("session_id", l.sessionID).Msg("diagnosis unparseable, using degraded result")
			metrics.AIFallbacksTotal.WithLabelValues(string(domain.CapabilityDiagnose), "malformed").Inc()
			parsed = domain.FailedAnalysis()
		}
		result = parsed
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// Discard results for an image or mode the user has since moved away from.
	if l.image == img && l.mode == domain.LensAnalyze {
		l.result = &result
	}
	return nil
}

func (l *Lens) edit(ctx context.Context, img *domain.Image, instruction string) error {
	if strings.TrimSpace(instruction) == "" {
		instruction = defaultEditInstruction
	}

	description, err := l.gateway.EditImageDescription(ctx, *img, instruction)
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		return err
	case err != nil:
		l.log.Warn().Err(err).Str("session_id", l.sessionID).Msg("image edit failed, keeping current state")
		metrics.AIFallbacksTotal.WithLabelValues(string(domain.CapabilityEdit), "transport").Inc()
		return nil
	case description == "":
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.image == img && l.mode == domain.LensEdit {
		l.description = description
	}
	return nil
}

// scanStep counts runs in flight. An analysis and an edit hold different
// guard keys, so both can run at once.
func (l *Lens) scanStep(delta int) {
	l.mu.Lock()
	l.scans += delta
	l.mu.Unlock()
}

type diagnosisPayload struct {
	Issue    string `json:"issue"`
	Severity string `json:"severity"`
	Action   string `json:"action"`
}

// ParseDiagnosis decodes the model's diagnosis JSON, tolerating a markdown
// code fence around it. An empty answer decodes like "{}"; any other answer
// that is not a JSON object is malformed. Missing fields take neutral
// defaults and unknown severities become MEDIUM.
func ParseDiagnosis(raw string) (domain.AnalysisResult, error) {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		clean = "{}"
	}

	var p *diagnosisPayload
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		return domain.AnalysisResult{}, errors.Join(domain.ErrMalformedResponse, err)
	}
	if p == nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: diagnosis is not an object", domain.ErrMalformedResponse)
	}

	result := domain.AnalysisResult{
		Issue:      p.Issue,
		Severity:   normalizeSeverity(p.Severity),
		Action:     p.Action,
		Confidence: diagnosisConfidence,
	}
	if result.Issue == "" {
		result.Issue = "Unknown Issue"
	}
	if result.Action == "" {
		result.Action = "Contact Maintenance"
	}
	return result, nil
}

func normalizeSeverity(s string) domain.Severity {
	switch sev := domain.Severity(strings.ToUpper(strings.TrimSpace(s))); sev {
	case domain.SeverityLow, domain.SeverityMedium, domain.SeverityCritical:
		return sev
	default:
		return domain.SeverityMedium
	}
}
