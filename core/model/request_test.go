package model

import (
	"encoding/json"
	"testing"
)

func TestParseUrgencyLevel(t *testing.T) {
	cases := map[string]UrgencyLevel{
		"LOW":       UrgencyLow,
		"medium":    UrgencyMedium,
		" High ":    UrgencyHigh,
		"EMERGENCY": UrgencyEmergency,
	}
	for in, want := range cases {
		got, err := ParseUrgencyLevel(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Errorf("parse %q: got %v want %v", in, got, want)
		}
	}
	if _, err := ParseUrgencyLevel("CRITICAL"); err == nil {
		t.Error("expected error for unknown urgency")
	}
}

func TestUrgencyLevelJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(UrgencyEmergency)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var u UrgencyLevel
	if err := json.Unmarshal(data, &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u != UrgencyEmergency {
		t.Fatalf("round trip changed value: %v", u)
	}
}

func TestRequestValidate(t *testing.T) {
	loc := GeoPoint{Lat: 33.3, Lng: 44.4}
	valid := ConsultationRequest{
		UrgencyLevel:    UrgencyHigh,
		DeliveryMode:    DeliveryInPerson,
		PatientLocation: &loc,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	noLocation := ConsultationRequest{
		UrgencyLevel: UrgencyHigh,
		DeliveryMode: DeliveryInPerson,
	}
	if err := noLocation.Validate(); err == nil {
		t.Error("in-person request without location should be invalid")
	}

	teleNoLocation := ConsultationRequest{
		UrgencyLevel: UrgencyLow,
		DeliveryMode: DeliveryTelemedicine,
	}
	if err := teleNoLocation.Validate(); err != nil {
		t.Errorf("telemedicine without location should be valid: %v", err)
	}

	negativeBudget := valid
	negativeBudget.MaxBudget = -1
	if err := negativeBudget.Validate(); err == nil {
		t.Error("negative budget should be invalid")
	}
}
