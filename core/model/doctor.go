package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AvailabilityStatus describes whether a doctor can take a consultation now.
type AvailabilityStatus int

const (
	AvailabilityOffline AvailabilityStatus = iota
	AvailabilityBusy
	AvailabilityAvailable
)

// String returns a human-readable representation of the availability status.
func (a AvailabilityStatus) String() string {
	switch a {
	case AvailabilityOffline:
		return "OFFLINE"
	case AvailabilityBusy:
		return "BUSY"
	case AvailabilityAvailable:
		return "AVAILABLE"
	default:
		return "unknown"
	}
}

// ParseAvailabilityStatus converts a wire string into an AvailabilityStatus.
func ParseAvailabilityStatus(s string) (AvailabilityStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OFFLINE":
		return AvailabilityOffline, nil
	case "BUSY":
		return AvailabilityBusy, nil
	case "AVAILABLE":
		return AvailabilityAvailable, nil
	default:
		return 0, fmt.Errorf("unknown availability status %q", s)
	}
}

// MarshalJSON encodes the availability status as its wire string.
func (a AvailabilityStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes the availability status from its wire string.
func (a *AvailabilityStatus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	st, err := ParseAvailabilityStatus(s)
	if err != nil {
		return err
	}
	*a = st
	return nil
}

// PerformanceMetrics is the track record of a doctor as accumulated by the
// directory collaborator. All fields are read-only snapshots.
type PerformanceMetrics struct {
	TotalConsultations      int                `json:"total_consultations"`
	SuccessfulConsultations int                `json:"successful_consultations"`
	AvgResponseTime         time.Duration      `json:"avg_response_time"`
	AvgConsultationDuration time.Duration      `json:"avg_consultation_duration"`
	PatientSatisfactionAvg  float64            `json:"patient_satisfaction_avg"` // 1 to 5
	SpecialtySuccessRates   map[string]float64 `json:"specialty_success_rates,omitempty"`
}

// Validate checks the metrics for corruption. Malformed metrics exclude the
// candidate they belong to, never the rest of the pool.
func (m PerformanceMetrics) Validate() error {
	if m.TotalConsultations < 0 || m.SuccessfulConsultations < 0 {
		return fmt.Errorf("consultation counts must not be negative")
	}
	if m.SuccessfulConsultations > m.TotalConsultations {
		return fmt.Errorf("successful consultations exceed total")
	}
	if m.AvgResponseTime < 0 || m.AvgConsultationDuration < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if m.PatientSatisfactionAvg != 0 && (m.PatientSatisfactionAvg < 1 || m.PatientSatisfactionAvg > 5) {
		return fmt.Errorf("patient satisfaction %v outside 1-5", m.PatientSatisfactionAvg)
	}
	for sp, rate := range m.SpecialtySuccessRates {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("success rate for %s outside 0-1: %v", sp, rate)
		}
	}
	return nil
}

// NetworkQualityMetrics summarises the telemetry history of a doctor's
// connection, relevant only for telemedicine consultations.
type NetworkQualityMetrics struct {
	AvgLatencyMs       float64 `json:"avg_latency_ms"`
	AvgBandwidthMbps   float64 `json:"avg_bandwidth_mbps"`
	ConnectionDropRate float64 `json:"connection_drop_rate"` // 0 to 1
	AvgJitterMs        float64 `json:"avg_jitter_ms"`
	ExcellentCount     int     `json:"excellent_count"`
	GoodCount          int     `json:"good_count"`
	FairCount          int     `json:"fair_count"`
	PoorCount          int     `json:"poor_count"`
	LastQuality        string  `json:"last_quality,omitempty"` // excellent, good, fair or poor
}

// Validate checks the telemetry snapshot for corruption.
func (m NetworkQualityMetrics) Validate() error {
	if m.AvgLatencyMs < 0 || m.AvgBandwidthMbps < 0 || m.AvgJitterMs < 0 {
		return fmt.Errorf("telemetry averages must not be negative")
	}
	if m.ConnectionDropRate < 0 || m.ConnectionDropRate > 1 {
		return fmt.Errorf("connection drop rate %v outside 0-1", m.ConnectionDropRate)
	}
	if m.ExcellentCount < 0 || m.GoodCount < 0 || m.FairCount < 0 || m.PoorCount < 0 {
		return fmt.Errorf("quality tier counts must not be negative")
	}
	return nil
}

// DoctorCandidate is one entry of the candidate pool snapshot supplied by
// the external directory. The engine never mutates it.
type DoctorCandidate struct {
	DoctorID     string                 `json:"doctor_id"`
	Specialty    string                 `json:"specialty"`
	Location     GeoPoint               `json:"location"`
	Availability AvailabilityStatus     `json:"availability"`
	Performance  *PerformanceMetrics    `json:"performance,omitempty"`
	Network      *NetworkQualityMetrics `json:"network,omitempty"`
}

// Validate checks candidate data integrity before scoring.
func (d DoctorCandidate) Validate() error {
	if d.DoctorID == "" {
		return fmt.Errorf("doctor id is required")
	}
	if d.Performance != nil {
		if err := d.Performance.Validate(); err != nil {
			return fmt.Errorf("performance metrics: %w", err)
		}
	}
	if d.Network != nil {
		if err := d.Network.Validate(); err != nil {
			return fmt.Errorf("network metrics: %w", err)
		}
	}
	return nil
}

// IsAvailable reports whether the doctor can take the consultation.
func (d DoctorCandidate) IsAvailable() bool {
	return d.Availability == AvailabilityAvailable
}
