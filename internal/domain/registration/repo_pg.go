package registration

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type accountRepoPG struct{ pool *pgxpool.Pool }

func NewAccountRepoPG(pool *pgxpool.Pool) AccountRepository {
	return &accountRepoPG{pool: pool}
}

const accountCols = `id, role, email, first_name, last_name, phone, password_hash,
	cnic, nhr_number, date_of_birth, gender, blood_group, emergency_contact,
	specialization, years_experience, consultation_fee, medical_license_number,
	address, city, state, country, postal_code, created_at, updated_at`

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Role, &a.Email, &a.FirstName, &a.LastName, &a.Phone, &a.PasswordHash,
		&a.CNIC, &a.NHRNumber, &a.DateOfBirth, &a.Gender, &a.BloodGroup, &a.EmergencyContact,
		&a.Specialization, &a.YearsExperience, &a.ConsultationFee, &a.MedicalLicenseNumber,
		&a.Address, &a.City, &a.State, &a.Country, &a.PostalCode, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *accountRepoPG) Create(ctx context.Context, a *Account) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO account (id, role, email, first_name, last_name, phone, password_hash,
			cnic, nhr_number, date_of_birth, gender, blood_group, emergency_contact,
			specialization, years_experience, consultation_fee, medical_license_number,
			address, city, state, country, postal_code)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`,
		a.ID, a.Role, a.Email, a.FirstName, a.LastName, a.Phone, a.PasswordHash,
		a.CNIC, a.NHRNumber, a.DateOfBirth, a.Gender, a.BloodGroup, a.EmergencyContact,
		a.Specialization, a.YearsExperience, a.ConsultationFee, a.MedicalLicenseNumber,
		a.Address, a.City, a.State, a.Country, a.PostalCode)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

func (r *accountRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountCols+` FROM account WHERE id = $1`, id))
}

func (r *accountRepoPG) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountCols+` FROM account WHERE email = $1`, email))
}

func (r *accountRepoPG) List(ctx context.Context, limit, offset int) ([]*Account, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM account`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+accountCols+` FROM account ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

func (r *accountRepoPG) ListByRole(ctx context.Context, role Role, limit, offset int) ([]*Account, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM account WHERE role = $1`, role).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+accountCols+` FROM account WHERE role = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, role, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}
