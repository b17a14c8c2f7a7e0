package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UrgencyLevel classifies how quickly a consultation must happen. Higher
// levels tighten proximity thresholds and shift scoring weights.
type UrgencyLevel int

const (
	UrgencyLow UrgencyLevel = iota
	UrgencyMedium
	UrgencyHigh
	UrgencyEmergency
)

// String returns a human-readable representation of the urgency level.
func (u UrgencyLevel) String() string {
	switch u {
	case UrgencyLow:
		return "LOW"
	case UrgencyMedium:
		return "MEDIUM"
	case UrgencyHigh:
		return "HIGH"
	case UrgencyEmergency:
		return "EMERGENCY"
	default:
		return "unknown"
	}
}

// ParseUrgencyLevel converts a wire string into an UrgencyLevel.
func ParseUrgencyLevel(s string) (UrgencyLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return UrgencyLow, nil
	case "MEDIUM":
		return UrgencyMedium, nil
	case "HIGH":
		return UrgencyHigh, nil
	case "EMERGENCY":
		return UrgencyEmergency, nil
	default:
		return 0, fmt.Errorf("unknown urgency level %q", s)
	}
}

// MarshalJSON encodes the urgency level as its wire string.
func (u UrgencyLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON decodes the urgency level from its wire string.
func (u *UrgencyLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	lvl, err := ParseUrgencyLevel(s)
	if err != nil {
		return err
	}
	*u = lvl
	return nil
}

// DeliveryMode describes how the consultation is delivered.
type DeliveryMode int

const (
	DeliveryInPerson DeliveryMode = iota
	DeliveryTelemedicine
)

// String returns a human-readable representation of the delivery mode.
func (m DeliveryMode) String() string {
	switch m {
	case DeliveryInPerson:
		return "IN_PERSON"
	case DeliveryTelemedicine:
		return "TELEMEDICINE"
	default:
		return "unknown"
	}
}

// ParseDeliveryMode converts a wire string into a DeliveryMode.
func ParseDeliveryMode(s string) (DeliveryMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "IN_PERSON":
		return DeliveryInPerson, nil
	case "TELEMEDICINE":
		return DeliveryTelemedicine, nil
	default:
		return 0, fmt.Errorf("unknown delivery mode %q", s)
	}
}

// MarshalJSON encodes the delivery mode as its wire string.
func (m DeliveryMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes the delivery mode from its wire string.
func (m *DeliveryMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	mode, err := ParseDeliveryMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ConsultationRequest describes one patient request to be matched against a
// candidate pool. It is immutable for the duration of a single match call
// and never persisted by the engine.
type ConsultationRequest struct {
	Symptoms          []string     `json:"symptoms"`
	UrgencyLevel      UrgencyLevel `json:"urgency_level"`
	PatientLocation   *GeoPoint    `json:"patient_location,omitempty"`
	MaxBudget         int64        `json:"max_budget,omitempty"` // IQD, 0 means no budget cap
	MaxDistanceKm     float64      `json:"max_distance_km,omitempty"`
	DeliveryMode      DeliveryMode `json:"delivery_mode"`
	RequiredSpecialty string       `json:"required_specialty,omitempty"`
}

// Validate checks that the request carries the fields matching cannot run
// without. An in-person consultation requires a patient location.
func (r ConsultationRequest) Validate() error {
	if r.UrgencyLevel < UrgencyLow || r.UrgencyLevel > UrgencyEmergency {
		return fmt.Errorf("urgency level out of range: %d", r.UrgencyLevel)
	}
	if r.DeliveryMode != DeliveryInPerson && r.DeliveryMode != DeliveryTelemedicine {
		return fmt.Errorf("delivery mode out of range: %d", r.DeliveryMode)
	}
	if r.DeliveryMode == DeliveryInPerson && r.PatientLocation == nil {
		return fmt.Errorf("in-person request requires a patient location")
	}
	if r.MaxBudget < 0 {
		return fmt.Errorf("max budget must not be negative")
	}
	if r.MaxDistanceKm < 0 {
		return fmt.Errorf("max distance must not be negative")
	}
	return nil
}

// IsTelemedicine reports whether the request is for a remote consultation.
func (r ConsultationRequest) IsTelemedicine() bool {
	return r.DeliveryMode == DeliveryTelemedicine
}
