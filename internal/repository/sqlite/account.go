package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jobdeck/jobdeck/pkg/apperr"
	"github.com/jobdeck/jobdeck/pkg/models"
)

func (r *SQLiteRepo) CreateAccount(ctx context.Context, a *models.Account) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("account is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx,
		`INSERT INTO accounts (name, email, role, company_name, password_hash, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.Email, string(a.Role), a.CompanyName, a.PasswordHash, ts, ts)
	if err != nil {
		// the UNIQUE indexes on email and company_name are the last line of
		// defense against concurrent duplicate registrations
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			r.logger.Debug("duplicate account rejected", "email", a.Email)
			return 0, apperr.Wrap(apperr.Conflict, "email or company name already in use", err)
		}
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, role, company_name, password_hash, created, updated FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *SQLiteRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, role, company_name, password_hash, created, updated FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *SQLiteRepo) GetByCompanyName(ctx context.Context, companyName string) (*models.Account, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, role, company_name, password_hash, created, updated FROM accounts WHERE company_name = ?`, companyName)
	return scanAccount(row)
}

// UpdateAccount writes every profile field except the password hash, so an
// unrelated update can never rehash or clobber credentials.
func (r *SQLiteRepo) UpdateAccount(ctx context.Context, a *models.Account) error {
	if a == nil {
		return fmt.Errorf("account is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE accounts SET name = ?, email = ?, company_name = ?, updated = ? WHERE id = ?`,
		a.Name, a.Email, a.CompanyName, now(), a.ID)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return apperr.Wrap(apperr.Conflict, "email or company name already in use", err)
	}
	return err
}

func (r *SQLiteRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.conn.Exec(ctx, `UPDATE accounts SET password_hash = ?, updated = ? WHERE id = ?`, passwordHash, now(), id)
	return err
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	var a models.Account
	var role string
	var companyName sql.NullString
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &role, &companyName, &a.PasswordHash, &a.Created, &a.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	a.Role = models.Role(role)
	if companyName.Valid {
		a.CompanyName = &companyName.String
	}

	return &a, nil
}
