package jobs

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, title, company, location, url, source, raw_text, description, status,
       baseline_score, qualification_score, analysis, cover_letter, notes, is_filtered,
       created_at, updated_at, posted_at`

// Create inserts a record. ON CONFLICT DO NOTHING makes the insert the
// atomic half of the dedup gate; a zero rowcount maps to ErrAlreadyExists.
func (r *PGRepo) Create(ctx context.Context, rec JobRecord) error {
	const query = `
INSERT INTO jobs (
    id, title, company, location, url, source, raw_text, description, status,
    baseline_score, qualification_score, analysis, cover_letter, notes, is_filtered,
    created_at, updated_at, posted_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
ON CONFLICT (id) DO NOTHING`

	status := rec.Status
	if status == "" {
		status = StatusNew
	}
	var analysis any
	if len(rec.Analysis) > 0 {
		analysis = []byte(rec.Analysis)
	}

	res, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.Title,
		rec.Company,
		rec.Location,
		rec.URL,
		string(rec.Source),
		rec.RawText,
		rec.Description,
		status,
		rec.BaselineScore,
		rec.QualificationScore,
		analysis,
		rec.CoverLetter,
		rec.Notes,
		rec.IsFiltered,
		rec.CreatedAt,
		rec.UpdatedAt,
		rec.PostedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// Exists reports whether an identity is persisted.
func (r *PGRepo) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT 1 FROM jobs WHERE id = $1`
	var one int
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByID returns a record by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (JobRecord, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 LIMIT 1`
	rec, err := scanJob(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return JobRecord{}, ErrNotFound
	}
	return rec, err
}

// List returns records matching the filter, unfiltered ones by default.
func (r *PGRepo) List(ctx context.Context, filter ListFilter) ([]JobRecord, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	var args []any
	if !filter.IncludeAll {
		query += ` AND is_filtered = FALSE`
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $1`
	}
	if filter.MinBaseline > 0 {
		args = append(args, filter.MinBaseline)
		if len(args) == 1 {
			query += ` AND baseline_score >= $1`
		} else {
			query += ` AND baseline_score >= $2`
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// ListPendingAnalysis returns kept records still awaiting the full pass.
func (r *PGRepo) ListPendingAnalysis(ctx context.Context) ([]JobRecord, error) {
	query := `SELECT ` + jobColumns + `
FROM jobs
WHERE is_filtered = FALSE AND qualification_score = 0
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// UpdateStatus sets the status for a record.
func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string, now time.Time) error {
	const query = `UPDATE jobs SET status = $1, updated_at = $2 WHERE id = $3`
	return r.exec(ctx, query, status, now, id)
}

// SetAnalysis records the full-analysis outcome. Status is only moved when
// the analysis asks for it.
func (r *PGRepo) SetAnalysis(ctx context.Context, id string, upd AnalysisUpdate) error {
	var analysis any
	if len(upd.Analysis) > 0 {
		analysis = []byte(upd.Analysis)
	}
	if upd.Status != "" {
		const query = `
UPDATE jobs SET qualification_score = $1, analysis = $2, status = $3, updated_at = $4
WHERE id = $5 AND is_filtered = FALSE`
		return r.exec(ctx, query, upd.QualificationScore, analysis, upd.Status, upd.UpdatedAt, id)
	}
	const query = `
UPDATE jobs SET qualification_score = $1, analysis = $2, updated_at = $3
WHERE id = $4 AND is_filtered = FALSE`
	return r.exec(ctx, query, upd.QualificationScore, analysis, upd.UpdatedAt, id)
}

// SetCoverLetter stores a generated cover letter.
func (r *PGRepo) SetCoverLetter(ctx context.Context, id, coverLetter string, now time.Time) error {
	const query = `UPDATE jobs SET cover_letter = $1, updated_at = $2 WHERE id = $3`
	return r.exec(ctx, query, coverLetter, now, id)
}

// FillCaptureDetails backfills description/raw text when they are empty.
func (r *PGRepo) FillCaptureDetails(ctx context.Context, id, description, rawText string, now time.Time) error {
	const query = `
UPDATE jobs SET description = $1, raw_text = $2, updated_at = $3
WHERE id = $4 AND (description IS NULL OR description = '')`
	_, err := r.DB.ExecContext(ctx, query, description, rawText, now, id)
	return err
}

func (r *PGRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (JobRecord, error) {
	var rec JobRecord
	var source string
	var description sql.NullString
	var analysis []byte
	var coverLetter sql.NullString
	var notes sql.NullString
	var postedAt sql.NullTime

	err := row.Scan(
		&rec.ID,
		&rec.Title,
		&rec.Company,
		&rec.Location,
		&rec.URL,
		&source,
		&rec.RawText,
		&description,
		&rec.Status,
		&rec.BaselineScore,
		&rec.QualificationScore,
		&analysis,
		&coverLetter,
		&notes,
		&rec.IsFiltered,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&postedAt,
	)
	if err != nil {
		return JobRecord{}, err
	}
	rec.Source = Source(source)
	rec.Description = description.String
	if len(analysis) > 0 {
		rec.Analysis = analysis
	}
	rec.CoverLetter = coverLetter.String
	rec.Notes = notes.String
	if postedAt.Valid {
		rec.PostedAt = postedAt.Time
	}
	return rec, nil
}

func collectJobs(rows *sql.Rows) ([]JobRecord, error) {
	var out []JobRecord
	for rows.Next() {
		rec, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
