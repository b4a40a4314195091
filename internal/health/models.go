package health

import "time"

// PersonalInformation holds the measured values entered for a patient.
// Values are stored as entered; unit interpretation belongs to the caller.
type PersonalInformation struct {
	Age                    int     `json:"age"`
	LifestyleScore         int     `json:"lifestyleScore"`
	AlcoholConsumption     bool    `json:"alcoholConsumption"`
	Diabetes               bool    `json:"diabetes"`
	SystolicBloodPressure  float64 `json:"systolicBloodPressure"`
	DiastolicBloodPressure float64 `json:"diastolicBloodPressure"`
	Glucose                float64 `json:"glucose"`
	BodyTemperature        float64 `json:"bodyTemperature"`
	PulseRate              float64 `json:"pulseRate"`
	HemoglobinLevel        float64 `json:"hemoglobinLevel"`
	HbA1c                  float64 `json:"hba1c"`
	RespirationRate        float64 `json:"respirationRate"`
}

// PregnancyHistory holds the obstetric counts for a patient
type PregnancyHistory struct {
	NumberOfPregnancies int `json:"numberOfPregnancies"`
	NumberOfLiveBirths  int `json:"numberOfLiveBirths"`
	NumberOfAbortions   int `json:"numberOfAbortions"`
}

// PregnancyInfo is the report-facing view of a PregnancyHistory
type PregnancyInfo struct {
	Pregnancies int `json:"pregnancies"`
	LiveBirths  int `json:"liveBirths"`
	Abortions   int `json:"abortions"`
}

// Info derives the report view. A nil history yields zero counts.
func (ph *PregnancyHistory) Info() PregnancyInfo {
	if ph == nil {
		return PregnancyInfo{}
	}
	return PregnancyInfo{
		Pregnancies: ph.NumberOfPregnancies,
		LiveBirths:  ph.NumberOfLiveBirths,
		Abortions:   ph.NumberOfAbortions,
	}
}

// MedicalHistory is the stored record for one user. It is replaced as a
// whole on every save.
type MedicalHistory struct {
	UserID              string              `json:"userId"`
	PersonalInformation PersonalInformation `json:"personalInformation"`
	PregnancyHistory    *PregnancyHistory   `json:"pregnancyHistory,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
	RiskLevel           string              `json:"riskLevel,omitempty"`
}

// MetricStatus is the three-level classification of a single measurement
type MetricStatus string

const (
	StatusNormal   MetricStatus = "NORMAL"
	StatusWarning  MetricStatus = "WARNING"
	StatusCritical MetricStatus = "CRITICAL"
)

// HealthMetric is one classified measurement on a report
type HealthMetric struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Value       string       `json:"value"`
	Unit        string       `json:"unit"`
	NormalRange string       `json:"normalRange"`
	RawValue    float64      `json:"rawValue"`
	RangeMin    float64      `json:"rangeMin"`
	RangeMax    float64      `json:"rangeMax"`
	Icon        string       `json:"icon"`
	Status      MetricStatus `json:"status"`
}

// BloodPressure is the systolic/diastolic pair shown on a report
type BloodPressure struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// HealthStatus is the summary severity of a report
type HealthStatus struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// HealthReport is the view model built for a patient. It is never persisted.
type HealthReport struct {
	PatientName   string         `json:"patientName"`
	Date          string         `json:"date"`
	HeartRate     float64        `json:"heartRate"`
	BloodPressure BloodPressure  `json:"bloodPressure"`
	Temperature   float64        `json:"temperature"`
	Metrics       []HealthMetric `json:"metrics"`
	OverallStatus HealthStatus   `json:"overallStatus"`
	PregnancyInfo PregnancyInfo  `json:"pregnancyInfo"`
}

// RiskPrediction carries the label produced by the risk model
type RiskPrediction struct {
	RiskLevel string `json:"riskLevel"`
}

// Risk labels produced by the risk model
const (
	RiskHigh     = "High Risk"
	RiskModerate = "Moderate Risk"
	RiskLow      = "Low Risk"
)
