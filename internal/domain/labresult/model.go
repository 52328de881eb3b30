package labresult

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("lab result not found")
	ErrValidation = errors.New("invalid lab result")
)

// LabResult maps to the lab_results table: one panel draw with a fixed set of
// analyte columns. Values are free-text strings so units and qualifiers
// ("5.2 mmol/L", "trace") survive as entered. Empty string means the analyte
// was not measured on that draw.
type LabResult struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	TestDate      string    `db:"test_date" json:"test_date"`
	RBC           string    `db:"rbc" json:"rbc,omitempty"`
	Hematocrit    string    `db:"hematocrit" json:"hematocrit,omitempty"`
	Hemoglobin    string    `db:"hemoglobin" json:"hemoglobin,omitempty"`
	WBC           string    `db:"wbc" json:"wbc,omitempty"`
	PlateletCount string    `db:"platelet_count" json:"platelet_count,omitempty"`
	Neutrophils   string    `db:"neutrophils" json:"neutrophils,omitempty"`
	Lymphocytes   string    `db:"lymphocytes" json:"lymphocytes,omitempty"`
	Monocytes     string    `db:"monocytes" json:"monocytes,omitempty"`
	Basophils     string    `db:"basophils" json:"basophils,omitempty"`
	Eosinophils   string    `db:"eosinophils" json:"eosinophils,omitempty"`
	MCV           string    `db:"mcv" json:"mcv,omitempty"`
	MCH           string    `db:"mch" json:"mch,omitempty"`
	MCHC          string    `db:"mchc" json:"mchc,omitempty"`
	Sodium        string    `db:"sodium" json:"sodium,omitempty"`
	Potassium     string    `db:"potassium" json:"potassium,omitempty"`
	Creatinine    string    `db:"creatinine" json:"creatinine,omitempty"`
	Calcium       string    `db:"calcium" json:"calcium,omitempty"`
	Phosphorus    string    `db:"phosphorus" json:"phosphorus,omitempty"`
	UreaNitrogen  string    `db:"urea_nitrogen" json:"urea_nitrogen,omitempty"`
	Albumin       string    `db:"albumin" json:"albumin,omitempty"`
}

// AnalyteKeys lists the panel columns in display order.
var AnalyteKeys = []string{
	"rbc", "hematocrit", "hemoglobin", "wbc", "platelet_count",
	"neutrophils", "lymphocytes", "monocytes", "basophils", "eosinophils",
	"mcv", "mch", "mchc", "sodium", "potassium", "creatinine",
	"calcium", "phosphorus", "urea_nitrogen", "albumin",
}

// Analyte is one measured panel value paired with its display label.
type Analyte struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// AnalyteLabel turns a column key into its display form: underscores become
// spaces and each word is title-cased ("urea_nitrogen" -> "Urea Nitrogen").
func AnalyteLabel(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func (lr *LabResult) valueByKey(key string) string {
	switch key {
	case "rbc":
		return lr.RBC
	case "hematocrit":
		return lr.Hematocrit
	case "hemoglobin":
		return lr.Hemoglobin
	case "wbc":
		return lr.WBC
	case "platelet_count":
		return lr.PlateletCount
	case "neutrophils":
		return lr.Neutrophils
	case "lymphocytes":
		return lr.Lymphocytes
	case "monocytes":
		return lr.Monocytes
	case "basophils":
		return lr.Basophils
	case "eosinophils":
		return lr.Eosinophils
	case "mcv":
		return lr.MCV
	case "mch":
		return lr.MCH
	case "mchc":
		return lr.MCHC
	case "sodium":
		return lr.Sodium
	case "potassium":
		return lr.Potassium
	case "creatinine":
		return lr.Creatinine
	case "calcium":
		return lr.Calcium
	case "phosphorus":
		return lr.Phosphorus
	case "urea_nitrogen":
		return lr.UreaNitrogen
	case "albumin":
		return lr.Albumin
	}
	return ""
}

// Values returns all panel values in AnalyteKeys order, blanks included.
func (lr *LabResult) Values() []string {
	out := make([]string, len(AnalyteKeys))
	for i, key := range AnalyteKeys {
		out[i] = lr.valueByKey(key)
	}
	return out
}

// NonEmptyAnalytes returns the measured values of the draw in panel order,
// skipping analytes left blank.
func (lr *LabResult) NonEmptyAnalytes() []Analyte {
	var out []Analyte
	for _, key := range AnalyteKeys {
		if v := lr.valueByKey(key); v != "" {
			out = append(out, Analyte{Key: key, Label: AnalyteLabel(key), Value: v})
		}
	}
	return out
}
