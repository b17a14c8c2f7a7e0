package match

import "github.com/tabibiq/matchengine/core/model"

// Static domain tables. They are read-only after startup: Config may swap in
// replacements when loading, but nothing mutates a table in place.

// defaultBasePrices lists consultation base prices per specialty in IQD.
// Specialist fields are priced above general practice.
var defaultBasePrices = map[string]int64{
	"general medicine":  25000,
	"family medicine":   25000,
	"pediatrics":        30000,
	"internal medicine": 35000,
	"dermatology":       35000,
	"psychiatry":        40000,
	"gynecology":        40000,
	"orthopedics":       45000,
	"cardiology":        50000,
	"neurology":         50000,
	"oncology":          60000,
}

// defaultBasePrice applies when the specialty is not in the table.
const defaultBasePrice int64 = 30000

// urgencyMultipliers scale the base price. EMERGENCY must exceed 1.5x LOW.
var urgencyMultipliers = map[model.UrgencyLevel]float64{
	model.UrgencyLow:       1.0,
	model.UrgencyMedium:    1.15,
	model.UrgencyHigh:      1.35,
	model.UrgencyEmergency: 1.6,
}

// telemedicineDiscount is applied after the urgency multiplier.
const telemedicineDiscount = 0.8

// defaultRelatedSpecialties maps a required specialty to specialties close
// enough to earn the related base score. Lookup is case-insensitive.
var defaultRelatedSpecialties = map[string][]string{
	"cardiology":        {"internal medicine", "general medicine"},
	"neurology":         {"internal medicine", "psychiatry"},
	"dermatology":       {"general medicine", "family medicine"},
	"pediatrics":        {"family medicine", "general medicine"},
	"internal medicine": {"general medicine", "family medicine", "cardiology"},
	"psychiatry":        {"neurology", "family medicine"},
	"gynecology":        {"family medicine", "general medicine"},
	"orthopedics":       {"general medicine"},
	"oncology":          {"internal medicine"},
	"family medicine":   {"general medicine", "internal medicine"},
	"general medicine":  {"family medicine", "internal medicine"},
}

// defaultSymptomSpecialties maps symptom keywords to the specialties that
// treat them. Each matched symptom adds a bounded bonus to the skill score.
var defaultSymptomSpecialties = map[string][]string{
	"chest pain":          {"cardiology", "internal medicine"},
	"palpitations":        {"cardiology"},
	"shortness of breath": {"cardiology", "internal medicine"},
	"headache":            {"neurology", "general medicine"},
	"migraine":            {"neurology"},
	"seizure":             {"neurology"},
	"dizziness":           {"neurology", "internal medicine"},
	"rash":                {"dermatology"},
	"itching":             {"dermatology"},
	"acne":                {"dermatology"},
	"fever":               {"general medicine", "family medicine", "pediatrics"},
	"cough":               {"general medicine", "family medicine", "pediatrics"},
	"sore throat":         {"general medicine", "family medicine"},
	"abdominal pain":      {"internal medicine", "general medicine"},
	"nausea":              {"internal medicine", "general medicine"},
	"anxiety":             {"psychiatry"},
	"depression":          {"psychiatry"},
	"insomnia":            {"psychiatry", "general medicine"},
	"joint pain":          {"orthopedics", "internal medicine"},
	"back pain":           {"orthopedics", "general medicine"},
	"fracture":            {"orthopedics"},
	"pregnancy":           {"gynecology"},
	"child fever":         {"pediatrics"},
}
