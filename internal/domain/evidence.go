package domain

type Presence string

const (
	PresencePresent   Presence = "present"
	PresenceAbsent    Presence = "absent"
	PresenceUncertain Presence = "uncertain"
)

func ValidPresence(p string) bool {
	switch Presence(p) {
	case PresencePresent, PresenceAbsent, PresenceUncertain:
		return true
	}
	return false
}

// Qualifiers holds the optional OLDCART characterization of a symptom.
// Fixed schema rather than an open map so callers get type safety.
type Qualifiers struct {
	Onset       string `json:"onset,omitempty"`
	Location    string `json:"location,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Character   string `json:"character,omitempty"`
	Aggravating string `json:"aggravating,omitempty"`
	Relieving   string `json:"relieving,omitempty"`
	Timing      string `json:"timing,omitempty"`
	Severity    string `json:"severity,omitempty"`
}

// SymptomEvidence is a recorded observation that a named symptom is present,
// absent, or uncertain, tied to the conversational turn that produced it.
// At most one record exists per distinct name; updates overwrite presence
// in place. Records are never deleted within a session.
type SymptomEvidence struct {
	Name            string      `json:"name"`
	Presence        Presence    `json:"presence"`
	SourceTurnIndex int         `json:"source_turn_index"`
	Confidence      float64     `json:"confidence,omitempty"`
	Qualifiers      *Qualifiers `json:"qualifiers,omitempty"`
}
