package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stealthcompany.com/maternalhealth/internal/health"
	"stealthcompany.com/maternalhealth/internal/risk"
)

type stubPredictor struct {
	prediction health.RiskPrediction
	ok         bool
	calls      int
	last       risk.FeatureVector
}

func (p *stubPredictor) Predict(ctx context.Context, fv risk.FeatureVector) (health.RiskPrediction, bool) {
	p.calls++
	p.last = fv
	return p.prediction, p.ok
}

func newTestService(docs *memoryDocs, predictor Predictor) *Service {
	now := time.Date(2026, 3, 7, 9, 30, 0, 0, time.UTC)
	store := NewStore(docs).WithClock(fixedClock(now))
	return NewService(store, predictor, &health.Assembler{Now: fixedClock(now)})
}

// criticalPersonal has a systolic reading far above range and normal other vitals
var criticalPersonal = health.PersonalInformation{
	Age:                    34,
	SystolicBloodPressure:  200,
	DiastolicBloodPressure: 70,
	PulseRate:              75,
	BodyTemperature:        98.2,
}

func TestGetReport_UsesMetricsOnly(t *testing.T) {
	docs := newMemoryDocs()
	docs.put(HistoryCollection, "u1", `{"userId":"u1","personalInformation":{"systolicBloodPressure":200,"diastolicBloodPressure":70,"pulseRate":75,"bodyTemperature":98.2},"riskLevel":"Low Risk"}`)
	docs.put(UsersCollection, "u1", `{"name":"Jane Doe"}`)
	predictor := &stubPredictor{prediction: health.RiskPrediction{RiskLevel: health.RiskLow}, ok: true}

	report, err := newTestService(docs, predictor).GetReport(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, 0, predictor.calls, "the read path never predicts")
	assert.Equal(t, "Jane Doe", report.PatientName)
	assert.Equal(t, "Mar 07, 2026", report.Date)
	assert.Equal(t, "Critical Attention Required", report.OverallStatus.Title)
	assert.Equal(t, health.ColorCritical, report.OverallStatus.Color)
	require.Len(t, report.Metrics, 4)
	assert.Equal(t, health.StatusCritical, report.Metrics[0].Status)
	assert.Equal(t, health.PregnancyInfo{}, report.PregnancyInfo)
}

func TestGetReport_DefaultsPatientName(t *testing.T) {
	docs := newMemoryDocs()
	docs.put(HistoryCollection, "u1", `{"userId":"u1","personalInformation":{"systolicBloodPressure":120,"diastolicBloodPressure":80,"pulseRate":75,"bodyTemperature":98.6},"pregnancyHistory":{"numberOfPregnancies":2,"numberOfLiveBirths":1,"numberOfAbortions":0}}`)

	report, err := newTestService(docs, nil).GetReport(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, DefaultPatientName, report.PatientName)
	assert.Equal(t, "All Vitals Normal", report.OverallStatus.Title)
	assert.Equal(t, health.PregnancyInfo{Pregnancies: 2, LiveBirths: 1}, report.PregnancyInfo)
}

func TestGetReport_FailsFastWithoutHistory(t *testing.T) {
	docs := newMemoryDocs()
	docs.put(UsersCollection, "u1", `{"name":"Jane Doe"}`)

	_, err := newTestService(docs, nil).GetReport(context.Background(), "u1")

	assert.ErrorIs(t, err, health.ErrNotFound)
}

func TestSubmitHistory_PredictionOverridesMetrics(t *testing.T) {
	docs := newMemoryDocs()
	docs.put(UsersCollection, "u1", `{"name":"Jane Doe"}`)
	predictor := &stubPredictor{prediction: health.RiskPrediction{RiskLevel: health.RiskLow}, ok: true}
	pregnancy := &health.PregnancyHistory{NumberOfPregnancies: 3, NumberOfLiveBirths: 2, NumberOfAbortions: 1}
	service := newTestService(docs, predictor)

	report, err := service.SubmitHistory(context.Background(), "u1", criticalPersonal, pregnancy)

	require.NoError(t, err)
	assert.Equal(t, 1, predictor.calls)
	assert.Equal(t, risk.NewFeatureVector(criticalPersonal, pregnancy), predictor.last)
	assert.Equal(t, "Low Risk Pregnancy", report.OverallStatus.Title)
	assert.Equal(t, health.StatusCritical, report.Metrics[0].Status)
	assert.Equal(t, health.PregnancyInfo{Pregnancies: 3, LiveBirths: 2, Abortions: 1}, report.PregnancyInfo)

	stored, err := service.GetHistory(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, health.RiskLow, stored.RiskLevel)
	assert.Equal(t, criticalPersonal, stored.PersonalInformation)
}

func TestSubmitHistory_UnavailablePredictionFallsBack(t *testing.T) {
	docs := newMemoryDocs()
	predictor := &stubPredictor{ok: false}
	service := newTestService(docs, predictor)

	report, err := service.SubmitHistory(context.Background(), "u1", criticalPersonal, nil)

	require.NoError(t, err)
	assert.Equal(t, DefaultPatientName, report.PatientName)
	assert.Equal(t, "Critical Attention Required", report.OverallStatus.Title)

	stored, err := service.GetHistory(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, stored.RiskLevel)
}

func TestSubmitHistory_WithEmptyClassifier(t *testing.T) {
	docs := newMemoryDocs()
	service := newTestService(docs, risk.NewClassifier(nil))

	report, err := service.SubmitHistory(context.Background(), "u1", samplePersonal, nil)

	require.NoError(t, err)
	assert.Equal(t, "All Vitals Normal", report.OverallStatus.Title)
	assert.Equal(t, 1, docs.writes)
}

func TestSubmitHistory_StoreFailure(t *testing.T) {
	docs := newMemoryDocs()
	docs.writeErr = assert.AnError

	_, err := newTestService(docs, nil).SubmitHistory(context.Background(), "u1", samplePersonal, nil)

	assert.ErrorIs(t, err, health.ErrStore)
}
