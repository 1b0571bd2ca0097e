package domain

// Capability names one AI gateway call shape. Used for logging, metrics and
// in-flight guard keys.
type Capability string

const (
	CapabilityConcierge Capability = "concierge"
	CapabilityDiagnose  Capability = "diagnose"
	CapabilityEdit      Capability = "edit"
	CapabilityPolish    Capability = "polish"
	CapabilityDraft     Capability = "draft"
)
