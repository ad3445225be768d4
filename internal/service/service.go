package service

import (
	"context"

	"github.com/Dan9191/finhealth-service/internal/engine"
	"github.com/Dan9191/finhealth-service/internal/integrations/cbr"
	"github.com/Dan9191/finhealth-service/internal/logging"
	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/Dan9191/finhealth-service/internal/policy"
	"github.com/sirupsen/logrus"
)

// KeyRates supplies the latest central bank key rate
type KeyRates interface {
	Latest() (cbr.KeyRate, bool)
}

// Service exposes the evaluation engine to the HTTP layer
type Service struct {
	engine *engine.Engine
	rates  KeyRates
	log    *logrus.Logger
}

// NewService initializes a new service. rates may be nil.
func NewService(eng *engine.Engine, rates KeyRates, log *logrus.Logger) *Service {
	return &Service{engine: eng, rates: rates, log: log}
}

// Evaluate scores a snapshot and logs a summary of the outcome
func (s *Service) Evaluate(ctx context.Context, snapshot models.FinancialSnapshot, tolerance models.RiskTolerance) (*models.Report, error) {
	entry := logging.FromContext(ctx, s.log)

	report, err := s.engine.EvaluateWithBenchmark(snapshot, tolerance, s.keyRate())
	if err != nil {
		entry.Infof("Rejected snapshot: %v", err)
		return nil, err
	}

	entry.WithFields(severityFields(report.Anomalies)).WithFields(logrus.Fields{
		"score":    report.Score,
		"category": report.Classification.Category,
		"eligible": report.Investments.Eligible,
	}).Info("Snapshot evaluated")
	return report, nil
}

func (s *Service) keyRate() float64 {
	if s.rates == nil {
		return 0
	}
	if kr, ok := s.rates.Latest(); ok {
		return kr.Rate
	}
	return 0
}

// Simulate compares a current and a modified snapshot
func (s *Service) Simulate(ctx context.Context, current, modified models.FinancialSnapshot) (*models.SimulationResult, error) {
	entry := logging.FromContext(ctx, s.log)

	result, err := s.engine.Simulate(current, modified)
	if err != nil {
		entry.Infof("Rejected simulation: %v", err)
		return nil, err
	}

	entry.WithFields(logrus.Fields{
		"current_score":  result.CurrentScore,
		"modified_score": result.ModifiedScore,
		"impact":         result.Impact,
	}).Info("What-if simulated")
	return result, nil
}

// Breakdown explains a snapshot's score factor by factor
func (s *Service) Breakdown(ctx context.Context, snapshot models.FinancialSnapshot) (*models.ScoreBreakdown, error) {
	b, err := s.engine.Breakdown(snapshot)
	if err != nil {
		logging.FromContext(ctx, s.log).Infof("Rejected snapshot: %v", err)
		return nil, err
	}
	return b, nil
}

// Policy returns the active scoring tables
func (s *Service) Policy() policy.Policy {
	return s.engine.Policy()
}

func severityFields(anomalies []models.Anomaly) logrus.Fields {
	var critical, high, medium, low int
	for _, a := range anomalies {
		switch a.Severity {
		case models.SeverityCritical:
			critical++
		case models.SeverityHigh:
			high++
		case models.SeverityMedium:
			medium++
		case models.SeverityLow:
			low++
		default:
			panic(&engine.InvariantViolation{Stage: "service", Detail: "unknown severity " + string(a.Severity)})
		}
	}
	return logrus.Fields{
		"anomalies_critical": critical,
		"anomalies_high":     high,
		"anomalies_medium":   medium,
		"anomalies_low":      low,
	}
}
