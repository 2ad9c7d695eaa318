package claims

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/shd1007/ClaimLocal/internal/models"
)

// PostgresStore serves the same read-only contract from a database, for
// deployments where the datasets are maintained in Postgres instead of
// shipped JSON files.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Advisory lock so concurrent instances don't race on DDL.
	const lockID = 421133707

	var acquired bool
	if err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	if !acquired {
		time.Sleep(2 * time.Second)
		return nil
	}
	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS claims (
			id INT PRIMARY KEY,
			policy_number TEXT NOT NULL,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			loss_date DATE NOT NULL,
			insured_name TEXT NOT NULL,
			amount_claimed NUMERIC(14,2) NOT NULL,
			amount_reserved NUMERIC(14,2) NOT NULL,
			last_updated TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS claim_notes (
			claim_id INT REFERENCES claims(id) ON DELETE CASCADE,
			ord INT NOT NULL,
			author TEXT NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (claim_id, ord)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

const claimColumns = `id, policy_number, type, status, loss_date, insured_name, amount_claimed, amount_reserved, last_updated`

func (s *PostgresStore) GetClaim(ctx context.Context, id int) (models.Claim, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+claimColumns+` FROM claims WHERE id = $1`, id)
	claim, err := scanClaim(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Claim{}, fmt.Errorf("claim %d: %w", id, ErrClaimNotFound)
	}
	return claim, err
}

func (s *PostgresStore) GetAllClaims(ctx context.Context) ([]models.Claim, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+claimColumns+` FROM claims ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, claim)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetNotes(ctx context.Context, id int) (models.NoteSet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT author, text FROM claim_notes WHERE claim_id = $1 ORDER BY ord`, id)
	if err != nil {
		return models.NoteSet{}, err
	}
	defer rows.Close()

	set := models.NoteSet{ID: id}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.Author, &n.Text); err != nil {
			return models.NoteSet{}, err
		}
		set.Notes = append(set.Notes, n)
	}
	if err := rows.Err(); err != nil {
		return models.NoteSet{}, err
	}
	if len(set.Notes) == 0 {
		return models.NoteSet{}, fmt.Errorf("notes for claim %d: %w", id, ErrNotesNotFound)
	}
	return set, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClaim(row rowScanner) (models.Claim, error) {
	var c models.Claim
	var lossDate, lastUpdated time.Time
	err := row.Scan(
		&c.ID,
		&c.PolicyNumber,
		&c.Type,
		&c.Status,
		&lossDate,
		&c.InsuredName,
		&c.AmountClaimed,
		&c.AmountReserved,
		&lastUpdated,
	)
	if err != nil {
		return models.Claim{}, err
	}
	c.LossDate = models.Date{Time: lossDate}
	c.LastUpdated = models.Time{Time: lastUpdated.UTC()}
	return c, nil
}
