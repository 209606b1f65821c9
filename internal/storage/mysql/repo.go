package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	mysqldrv "github.com/go-sql-driver/mysql"

	"clientvoice/internal/domain"
)

// ER_DUP_ENTRY
const errDuplicateEntry = 1062

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// mapErr turns driver errors into domain sentinels.
func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) && me.Number == errDuplicateEntry {
		return fmt.Errorf("%w: %s", domain.ErrConflict, me.Message)
	}
	return err
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- clients ----

func (r *Repo) CreateClient(ctx context.Context, c domain.Client) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertClientSQL,
		c.Nom, c.Slug, string(c.Langue), c.PlaceID, valStr(c.Logo), c.SecretCode,
		c.Statut, c.BusinessStatut,
		valStr(c.ContactNom), valStr(c.ContactEmail), valStr(c.ContactTel), valStr(c.NotesAdmin),
	)
	if err != nil {
		return 0, mapErr(err)
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateClient(ctx context.Context, c domain.Client) error {
	res, err := r.db.ExecContext(ctx, updateClientSQL,
		c.Nom, c.Slug, string(c.Langue), c.PlaceID, valStr(c.Logo), c.SecretCode,
		c.Statut, c.BusinessStatut,
		valStr(c.ContactNom), valStr(c.ContactEmail), valStr(c.ContactTel), valStr(c.NotesAdmin),
		c.ID,
	)
	if err != nil {
		return mapErr(err)
	}
	return r.mustExist(ctx, res, getClientSQL, c.ID)
}

func (r *Repo) DeleteClient(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteClientSQL, id)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// mustExist distinguishes "no row" from "no change" after an UPDATE, since
// MySQL reports zero affected rows for both.
func (r *Repo) mustExist(ctx context.Context, res sql.Result, query string, id int64) error {
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	_, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	return mapErr(err)
}

func (r *Repo) GetClient(ctx context.Context, id int64) (domain.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, getClientSQL, id))
	return c, mapErr(err)
}

func (r *Repo) GetClientBySlug(ctx context.Context, slug string) (domain.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, getClientBySlugSQL, slug))
	return c, mapErr(err)
}

func (r *Repo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, listClientsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, slugExistsSQL, slug).Scan(&ok)
	return ok, err
}

type scanner interface{ Scan(dest ...any) error }

func scanClient(s scanner) (domain.Client, error) {
	var (
		c                               domain.Client
		langue                          string
		logo, cNom, cEmail, cTel, notes sql.NullString
	)
	err := s.Scan(
		&c.ID, &c.Nom, &c.Slug, &langue, &c.PlaceID, &logo, &c.SecretCode,
		&c.Statut, &c.BusinessStatut, &cNom, &cEmail, &cTel,
		&notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Client{}, err
	}
	c.Langue = domain.ParseLocale(langue)
	c.Logo = strPtr(logo)
	c.ContactNom = strPtr(cNom)
	c.ContactEmail = strPtr(cEmail)
	c.ContactTel = strPtr(cTel)
	c.NotesAdmin = strPtr(notes)
	return c, nil
}

// ---- avis ----

func (r *Repo) CreateReview(ctx context.Context, clientID int64, s domain.Submission) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL, clientID, s.Note, s.Commentaire, valStr(s.Contact))
	if err != nil {
		var me *mysqldrv.MySQLError
		// ER_NO_REFERENCED_ROW_2: the client vanished between lookup and insert
		if errors.As(err, &me) && me.Number == 1452 {
			return 0, domain.ErrNotFound
		}
		return 0, mapErr(err)
	}
	return res.LastInsertId()
}

func (r *Repo) DeleteReview(ctx context.Context, id int64) (domain.Review, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Review{}, err
	}
	defer func() { _ = tx.Rollback() }()

	rv, err := scanReview(tx.QueryRowContext(ctx, getReviewSQL+" FOR UPDATE", id))
	if err != nil {
		return domain.Review{}, mapErr(err)
	}
	if _, err := tx.ExecContext(ctx, deleteReviewSQL, id); err != nil {
		return domain.Review{}, err
	}
	return rv, tx.Commit()
}

func (r *Repo) ListReviewsByClient(ctx context.Context, clientID int64) ([]domain.Review, error) {
	return r.queryReviews(ctx, listReviewsByClientSQL, clientID)
}

func (r *Repo) ListReviews(ctx context.Context) ([]domain.Review, error) {
	return r.queryReviews(ctx, listReviewsSQL)
}

func (r *Repo) queryReviews(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func scanReview(s scanner) (domain.Review, error) {
	var (
		rv            domain.Review
		contact, logo sql.NullString
	)
	if err := s.Scan(&rv.ID, &rv.ClientID, &rv.Note, &rv.Commentaire, &contact, &rv.CreatedAt, &rv.ClientNom, &logo); err != nil {
		return domain.Review{}, err
	}
	rv.Contact = strPtr(contact)
	rv.ClientLogo = strPtr(logo)
	return rv, nil
}

// ---- admins ----

func (r *Repo) CreateAdmin(ctx context.Context, a domain.Admin) error {
	_, err := r.db.ExecContext(ctx, insertAdminSQL, a.ID, a.Nom, a.Email, a.PasswordHash)
	return mapErr(err)
}

func (r *Repo) GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error) {
	return scanAdmin(r.db.QueryRowContext(ctx, getAdminByEmailSQL, email))
}

func (r *Repo) GetAdmin(ctx context.Context, id string) (domain.Admin, error) {
	return scanAdmin(r.db.QueryRowContext(ctx, getAdminSQL, id))
}

// UpdateAdmin reports ErrConflict when the new email belongs to another admin.
func (r *Repo) UpdateAdmin(ctx context.Context, a domain.Admin) error {
	res, err := r.db.ExecContext(ctx, updateAdminSQL, a.Nom, a.Email, a.PasswordHash, a.ID)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// 0 rows also means "nothing changed" in MySQL
	_, err = r.GetAdmin(ctx, a.ID)
	return err
}

func scanAdmin(s scanner) (domain.Admin, error) {
	var a domain.Admin
	if err := s.Scan(&a.ID, &a.Nom, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		return domain.Admin{}, mapErr(err)
	}
	return a, nil
}

var _ domain.Store = (*Repo)(nil)
