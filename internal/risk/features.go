package risk

import "stealthcompany.com/maternalhealth/internal/health"

// FeatureCount is the length of the vector the scoring model was trained on
const FeatureCount = 14

// FeatureVector is the model input. The order of the elements is part of the
// contract with the trained model and must not change:
//
//	age, pregnancies, live births, lifestyle score, alcohol, diabetes,
//	systolic BP, diastolic BP, glucose, body temperature, pulse rate,
//	hemoglobin, HbA1c, respiration rate
type FeatureVector [FeatureCount]float64

// NewFeatureVector lays out info and pregnancy in model order. A nil
// pregnancy history contributes zero counts.
func NewFeatureVector(info health.PersonalInformation, pregnancy *health.PregnancyHistory) FeatureVector {
	var pregnancies, liveBirths float64
	if pregnancy != nil {
		pregnancies = float64(pregnancy.NumberOfPregnancies)
		liveBirths = float64(pregnancy.NumberOfLiveBirths)
	}

	return FeatureVector{
		float64(info.Age),
		pregnancies,
		liveBirths,
		float64(info.LifestyleScore),
		boolFeature(info.AlcoholConsumption),
		boolFeature(info.Diabetes),
		info.SystolicBloodPressure,
		info.DiastolicBloodPressure,
		info.Glucose,
		info.BodyTemperature,
		info.PulseRate,
		info.HemoglobinLevel,
		info.HbA1c,
		info.RespirationRate,
	}
}

// Slice returns a copy of the vector as a slice
func (fv FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, fv[:])
	return out
}

func boolFeature(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
