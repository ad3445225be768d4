package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Dan9191/finhealth-service/internal/engine"
	"github.com/Dan9191/finhealth-service/internal/integrations/cbr"
	"github.com/Dan9191/finhealth-service/internal/logging"
	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/Dan9191/finhealth-service/internal/policy"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *test.Hook) {
	t.Helper()
	eng, err := engine.New(policy.Default())
	require.NoError(t, err)
	log, hook := test.NewNullLogger()
	return NewService(eng, nil, log), hook
}

func TestEvaluate_LogsSummary(t *testing.T) {
	svc, hook := newTestService(t)
	ctx := logging.WithEntry(context.Background(), svc.log.WithField("request_id", "r-1"))

	report, err := svc.Evaluate(ctx, models.FinancialSnapshot{Income: 50000, Rent: 30000, Food: 15000, Shopping: 10000}, "")
	require.NoError(t, err)
	require.NotNil(t, report)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Snapshot evaluated", entry.Message)
	assert.Equal(t, "r-1", entry.Data["request_id"])
	assert.Equal(t, 1, entry.Data["anomalies_critical"])
	assert.Equal(t, 2, entry.Data["anomalies_high"])
	assert.Equal(t, report.Score, entry.Data["score"])
}

func TestEvaluate_InvalidInput(t *testing.T) {
	svc, hook := newTestService(t)

	report, err := svc.Evaluate(context.Background(), models.FinancialSnapshot{}, "")
	assert.Nil(t, report)
	var inv *engine.InvalidInputError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "income", inv.Field)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
}

func TestSimulate(t *testing.T) {
	svc, hook := newTestService(t)
	s := models.FinancialSnapshot{Income: 1000, Rent: 300, Savings: 200}

	res, err := svc.Simulate(context.Background(), s, s)
	require.NoError(t, err)
	assert.Equal(t, models.ImpactNeutral, res.Impact)
	assert.Equal(t, "What-if simulated", hook.LastEntry().Message)
}

func TestBreakdownAndPolicy(t *testing.T) {
	svc, _ := newTestService(t)

	b, err := svc.Breakdown(context.Background(), models.FinancialSnapshot{Income: 1000, Savings: 300})
	require.NoError(t, err)
	assert.Equal(t, 100.0, b.OverallScore)

	assert.Equal(t, policy.Default().Score.Weights, svc.Policy().Score.Weights)
}

type fixedRates struct {
	rate cbr.KeyRate
	ok   bool
}

func (f fixedRates) Latest() (cbr.KeyRate, bool) { return f.rate, f.ok }

func TestEvaluate_QuotesKeyRate(t *testing.T) {
	eng, err := engine.New(policy.Default())
	require.NoError(t, err)
	log, _ := test.NewNullLogger()
	snapshot := models.FinancialSnapshot{Income: 50000, Rent: 15000, Food: 8000, Travel: 3000, Shopping: 5000, EMI: 10000, Savings: 9000}

	tests := []struct {
		name  string
		rates KeyRates
		want  float64
	}{
		{"cached rate", fixedRates{rate: cbr.KeyRate{Rate: 17, Date: "2026-10-01"}, ok: true}, 17},
		{"not fetched yet", fixedRates{}, 0},
		{"no rate source", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(eng, tt.rates, log)
			report, err := svc.Evaluate(context.Background(), snapshot, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, report.Investments.BenchmarkRate)
		})
	}
}
