package health

import (
	"fmt"
	"time"
)

// ReportDateLayout is the layout of HealthReport.Date
const ReportDateLayout = "Jan 02, 2006"

// Severity colors attached to a HealthStatus
const (
	ColorCritical = "#F44336"
	ColorWarning  = "#FF9800"
	ColorNormal   = "#4CAF50"
)

var (
	highRiskStatus = HealthStatus{
		Title:       "High Risk Pregnancy",
		Description: "The risk assessment indicates a high-risk pregnancy. Contact your healthcare provider as soon as possible.",
		Color:       ColorCritical,
	}
	moderateRiskStatus = HealthStatus{
		Title:       "Moderate Risk Pregnancy",
		Description: "The risk assessment indicates a moderate risk. Schedule a follow-up with your healthcare provider.",
		Color:       ColorWarning,
	}
	lowRiskStatus = HealthStatus{
		Title:       "Low Risk Pregnancy",
		Description: "The risk assessment indicates a low risk. Keep up with your regular check-ups.",
		Color:       ColorNormal,
	}

	criticalVitalsStatus = HealthStatus{
		Title:       "Critical Attention Required",
		Description: "One or more vital signs are far outside the normal range. Seek medical attention.",
		Color:       ColorCritical,
	}
	warningVitalsStatus = HealthStatus{
		Title:       "Needs Monitoring",
		Description: "Some vital signs are slightly outside the normal range. Monitor them closely.",
		Color:       ColorWarning,
	}
	normalVitalsStatus = HealthStatus{
		Title:       "All Vitals Normal",
		Description: "All vital signs are within the normal range.",
		Color:       ColorNormal,
	}
)

type metricDefinition struct {
	id       string
	title    string
	unit     string
	rangeMin float64
	rangeMax float64
	icon     string
	decimals int
	value    func(PersonalInformation) float64
}

// metricDefinitions is the fixed set of metrics on every report, in display order
var metricDefinitions = []metricDefinition{
	{
		id: "systolic_bp", title: "Systolic Blood Pressure", unit: "mmHg",
		rangeMin: 95, rangeMax: 160, icon: "ic_blood_pressure",
		value: func(p PersonalInformation) float64 { return p.SystolicBloodPressure },
	},
	{
		id: "diastolic_bp", title: "Diastolic Blood Pressure", unit: "mmHg",
		rangeMin: 60, rangeMax: 100, icon: "ic_blood_pressure",
		value: func(p PersonalInformation) float64 { return p.DiastolicBloodPressure },
	},
	{
		id: "pulse_rate", title: "Pulse Rate", unit: "BPM",
		rangeMin: 60, rangeMax: 100, icon: "ic_heart_rate",
		value: func(p PersonalInformation) float64 { return p.PulseRate },
	},
	{
		id: "body_temperature", title: "Body Temperature", unit: "°F",
		rangeMin: 97.0, rangeMax: 99.0, icon: "ic_temperature", decimals: 1,
		value: func(p PersonalInformation) float64 { return p.BodyTemperature },
	},
}

func (d metricDefinition) build(p PersonalInformation) HealthMetric {
	raw := d.value(p)
	return HealthMetric{
		ID:          d.id,
		Title:       d.title,
		Value:       formatDecimal(raw, d.decimals),
		Unit:        d.unit,
		NormalRange: fmt.Sprintf("%s-%s %s", formatDecimal(d.rangeMin, d.decimals), formatDecimal(d.rangeMax, d.decimals), d.unit),
		RawValue:    raw,
		RangeMin:    d.rangeMin,
		RangeMax:    d.rangeMax,
		Icon:        d.icon,
		Status:      Classify(raw, d.rangeMin, d.rangeMax),
	}
}

func formatDecimal(v float64, decimals int) string {
	return fmt.Sprintf("%.*f", decimals, v)
}

// Assembler builds HealthReports. Now is used to stamp the report date.
type Assembler struct {
	Now func() time.Time
}

// NewAssembler returns an Assembler that dates reports with the wall clock
func NewAssembler() *Assembler {
	return &Assembler{Now: time.Now}
}

// Assemble composes the report for a patient. prediction may be nil.
func (a *Assembler) Assemble(info PersonalInformation, userName string, pregnancy PregnancyInfo, prediction *RiskPrediction) HealthReport {
	metrics := BuildMetrics(info)

	now := time.Now
	if a != nil && a.Now != nil {
		now = a.Now
	}

	return HealthReport{
		PatientName: userName,
		Date:        now().Format(ReportDateLayout),
		HeartRate:   info.PulseRate,
		BloodPressure: BloodPressure{
			Systolic:  info.SystolicBloodPressure,
			Diastolic: info.DiastolicBloodPressure,
		},
		Temperature:   info.BodyTemperature,
		Metrics:       metrics,
		OverallStatus: DetermineOverallStatus(metrics, prediction),
		PregnancyInfo: pregnancy,
	}
}

// BuildMetrics classifies the four report metrics for info
func BuildMetrics(info PersonalInformation) []HealthMetric {
	metrics := make([]HealthMetric, 0, len(metricDefinitions))
	for _, d := range metricDefinitions {
		metrics = append(metrics, d.build(info))
	}
	return metrics
}

// DetermineOverallStatus picks the summary for a report. When a prediction is
// present its label alone decides the status and metric statuses are ignored.
func DetermineOverallStatus(metrics []HealthMetric, prediction *RiskPrediction) HealthStatus {
	if prediction != nil {
		switch prediction.RiskLevel {
		case RiskHigh:
			return highRiskStatus
		case RiskModerate:
			return moderateRiskStatus
		default:
			return lowRiskStatus
		}
	}

	hasWarning := false
	for _, m := range metrics {
		switch m.Status {
		case StatusCritical:
			return criticalVitalsStatus
		case StatusWarning:
			hasWarning = true
		}
	}
	if hasWarning {
		return warningVitalsStatus
	}
	return normalVitalsStatus
}
