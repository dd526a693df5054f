package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/freight-audit/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidSession   = errors.New("invalid audit session")
	ErrInvalidFinding   = errors.New("invalid finding")
	ErrInvalidErrorType = errors.New("invalid error type")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateSession(session *model.AuditSession) error {
	if session == nil {
		return fmt.Errorf("%w: session", ErrNilParameter)
	}
	if session.AuditDate.IsZero() {
		return fmt.Errorf("%w: missing audit date", ErrInvalidSession)
	}
	if session.TotalShipments < 0 || session.AffectedShipments < 0 {
		return fmt.Errorf("%w: negative shipment count", ErrInvalidSession)
	}
	if session.AffectedShipments > session.TotalShipments {
		return fmt.Errorf("%w: %d affected shipments out of %d",
			ErrInvalidSession, session.AffectedShipments, session.TotalShipments)
	}
	if math.IsNaN(session.TotalCharges) || math.IsNaN(session.TotalSavings) {
		return fmt.Errorf("%w: money totals must be numbers", ErrInvalidSession)
	}
	return nil
}

func validateFindings(findings []model.Finding) error {
	for i, f := range findings {
		if strings.TrimSpace(string(f.ErrorType)) == "" {
			return fmt.Errorf("finding at index %d: %w: missing error type", i, ErrInvalidFinding)
		}
		if !f.ErrorType.IsActionable() {
			return fmt.Errorf("finding at index %d: %w: %s", i, ErrInvalidErrorType, f.ErrorType)
		}
		if math.IsNaN(f.RefundEstimate) || f.RefundEstimate < 0 {
			return fmt.Errorf("finding at index %d: %w: refund must be a non-negative number", i, ErrInvalidFinding)
		}
	}
	return nil
}
