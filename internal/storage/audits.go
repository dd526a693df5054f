package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/freight-audit/internal/common"
	"github.com/Veraticus/freight-audit/internal/model"
)

const sessionColumns = `id, filename, audit_date, total_shipments, main_audit_count,
	residential_count, affected_shipments, finding_count, misc_charge_count,
	total_charges, total_savings, savings_rate, affected_rate, created_at`

// SaveAuditSession stores a session header and its findings atomically.
// A missing ID is filled in.
func (s *SQLiteStorage) SaveAuditSession(ctx context.Context, session *model.AuditSession, findings []model.Finding) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSession(session); err != nil {
		return err
	}
	if err := validateFindings(findings); err != nil {
		return err
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	session.FindingCount = len(findings)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO audit_sessions (`+sessionColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID, session.Filename, session.AuditDate, session.TotalShipments,
			session.MainAuditCount, session.ResidentialCount, session.AffectedShipments,
			session.FindingCount, session.MiscChargeCount, session.TotalCharges,
			session.TotalSavings, session.SavingsRate, session.AffectedRate, session.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to save audit session: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO findings (session_id, error_type, tracking_number, date, carrier,
				service_type, dispute_reason, refund_estimate, notes, shipment_date,
				invoice_date, claim_status, claim_priority)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare finding insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, f := range findings {
			if _, err := stmt.ExecContext(ctx, session.ID, string(f.ErrorType), f.TrackingNumber,
				f.Date, f.Carrier, f.ServiceType, f.DisputeReason, f.RefundEstimate, f.Notes,
				f.ShipmentDate, f.InvoiceDate, string(f.ClaimStatus), string(f.ClaimPriority)); err != nil {
				return fmt.Errorf("failed to save finding for %s: %w", f.TrackingNumber, err)
			}
		}
		return nil
	})
}

// ListAuditSessions returns the most recent sessions first. A limit of zero
// or less returns all of them.
func (s *SQLiteStorage) ListAuditSessions(ctx context.Context, limit int) ([]model.AuditSession, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM audit_sessions
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []model.AuditSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit sessions: %w", err)
	}
	return sessions, nil
}

// GetAuditSession loads a session and its findings in their saved order.
func (s *SQLiteStorage) GetAuditSession(ctx context.Context, id string) (*model.AuditSession, []model.Finding, error) {
	if err := validateContext(ctx); err != nil {
		return nil, nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM audit_sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("audit session %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT error_type, tracking_number, date, carrier, service_type, dispute_reason,
			refund_estimate, notes, shipment_date, invoice_date, claim_status, claim_priority
		FROM findings
		WHERE session_id = ?
		ORDER BY id`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var findings []model.Finding
	for rows.Next() {
		var f model.Finding
		var errorType, status, priority string
		var tracking, date, carrier, service, reason, notes, shipDate, invDate sql.NullString
		if err := rows.Scan(&errorType, &tracking, &date, &carrier, &service, &reason,
			&f.RefundEstimate, &notes, &shipDate, &invDate, &status, &priority); err != nil {
			return nil, nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		f.ErrorType = model.ErrorType(errorType)
		f.TrackingNumber = tracking.String
		f.Date = date.String
		f.Carrier = carrier.String
		f.ServiceType = service.String
		f.DisputeReason = reason.String
		f.Notes = notes.String
		f.ShipmentDate = shipDate.String
		f.InvoiceDate = invDate.String
		f.ClaimStatus = model.ClaimStatus(status)
		f.ClaimPriority = model.ClaimPriority(priority)
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating findings: %w", err)
	}

	return session, findings, nil
}

// DeleteAuditSession removes a session and its findings.
func (s *SQLiteStorage) DeleteAuditSession(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM findings WHERE session_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete findings: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM audit_sessions WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete audit session: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check deleted rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("audit session %s: %w", id, common.ErrNotFound)
		}
		return nil
	})
}

// GetStatistics aggregates every stored session.
func (s *SQLiteStorage) GetStatistics(ctx context.Context) (*model.AuditStatistics, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var stats model.AuditStatistics
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(finding_count), 0),
			COALESCE(SUM(total_savings), 0),
			COALESCE(SUM(total_charges), 0),
			COALESCE(AVG(savings_rate), 0)
		FROM audit_sessions`).Scan(
		&stats.SessionCount,
		&stats.FindingCount,
		&stats.TotalSavings,
		&stats.TotalCharges,
		&stats.AverageSavingsRate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute audit statistics: %w", err)
	}
	return &stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*model.AuditSession, error) {
	var session model.AuditSession
	err := row.Scan(
		&session.ID,
		&session.Filename,
		&session.AuditDate,
		&session.TotalShipments,
		&session.MainAuditCount,
		&session.ResidentialCount,
		&session.AffectedShipments,
		&session.FindingCount,
		&session.MiscChargeCount,
		&session.TotalCharges,
		&session.TotalSavings,
		&session.SavingsRate,
		&session.AffectedRate,
		&session.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit session: %w", err)
	}
	return &session, nil
}
