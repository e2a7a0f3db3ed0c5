package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRecord mirrors a row of the users table. Password holds the bcrypt
// hash, never plaintext. Datetime columns are 14-char YYYYMMDDHHMMSS
// strings, kept as text for compatibility with the existing schema.
type UserRecord struct {
	UserID            int64
	TenantID          int64
	Username          string
	Email             string
	Password          string
	Fullname          string
	Phone             string
	PrivateKey        string
	Active            string
	ActiveDatetime    string
	NonActiveDatetime string
	CreateUserID      int64
	UpdateUserID      int64
	CreateDatetime    string
	UpdateDatetime    string
	Version           int64
}

// UserProjection is the public shape of a user returned by auth responses.
// The password hash never leaves the repository boundary through it.
type UserProjection struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

// UserListItem is the projection used by the active-user listing.
type UserListItem struct {
	UserID         int64  `json:"user_id"`
	TenantID       int64  `json:"tenant_id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Fullname       string `json:"fullname"`
	Active         string `json:"active"`
	CreateDatetime string `json:"create_datetime"`
}

// NewUser carries the fields needed to insert a user record.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	Fullname     string
	TenantID     int64
}

// Unique-constraint outcomes surfaced by Create. The database constraint is
// the authoritative uniqueness guard; controller-level pre-checks are only
// a fast path for precise error keys.
var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

// UserRepository defines persistence operations for the user directory.
// Find methods return (nil, nil) when no record matches.
type UserRepository interface {
	FindByIdentifier(ctx context.Context, identifier string) (*UserRecord, error)
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	Create(ctx context.Context, nu NewUser) (*UserRecord, error)
	ListActive(ctx context.Context) ([]UserListItem, error)
}

// PgUserRepository implements UserRepository using pgxpool.
type PgUserRepository struct {
	db *pgxpool.Pool
}

func NewPgUserRepository(db *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{db: db}
}

const userColumns = `user_id, tenant_id, username, email, password, fullname, phone, private_key,
	active, active_datetime, non_active_datetime, create_user_id, update_user_id,
	create_datetime, update_datetime, version`

func scanUser(row pgx.Row) (*UserRecord, error) {
	var u UserRecord
	err := row.Scan(&u.UserID, &u.TenantID, &u.Username, &u.Email, &u.Password, &u.Fullname,
		&u.Phone, &u.PrivateKey, &u.Active, &u.ActiveDatetime, &u.NonActiveDatetime,
		&u.CreateUserID, &u.UpdateUserID, &u.CreateDatetime, &u.UpdateDatetime, &u.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// FindByIdentifier matches either username or email in a single query.
// Comparison is exact (case-sensitive), matching the existing data.
func (r *PgUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*UserRecord, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE username=$1 OR email=$1 LIMIT 1`
	return scanUser(r.db.QueryRow(ctx, q, identifier))
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*UserRecord, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email=$1 LIMIT 1`
	return scanUser(r.db.QueryRow(ctx, q, email))
}

// Create inserts a user record with registration defaults: active, version
// 0, creation datetime stamped now, self-registration audit ids (-1).
// Unique violations come back as ErrUsernameTaken / ErrEmailTaken.
func (r *PgUserRepository) Create(ctx context.Context, nu NewUser) (*UserRecord, error) {
	tenantID := nu.TenantID
	if tenantID <= 0 {
		tenantID = 1
	}
	now := stampNow()
	q := `INSERT INTO users
		(tenant_id, username, email, password, fullname, phone, private_key,
		 active, active_datetime, non_active_datetime, create_user_id, update_user_id,
		 create_datetime, update_datetime, version)
		VALUES ($1,$2,$3,$4,$5,'','','Y',$6,'',-1,-1,$6,'',0)
		RETURNING ` + userColumns
	rec, err := scanUser(r.db.QueryRow(ctx, q, tenantID, nu.Username, nu.Email, nu.PasswordHash, nu.Fullname, now))
	if err != nil {
		return nil, translateUniqueViolation(err)
	}
	return rec, nil
}

// ListActive returns projections of records with active='Y' only.
func (r *PgUserRepository) ListActive(ctx context.Context) ([]UserListItem, error) {
	q := `SELECT user_id, tenant_id, username, email, fullname, active, create_datetime
		FROM users WHERE active='Y' ORDER BY user_id`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]UserListItem, 0)
	for rows.Next() {
		var u UserListItem
		if err := rows.Scan(&u.UserID, &u.TenantID, &u.Username, &u.Email, &u.Fullname, &u.Active, &u.CreateDatetime); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

// translateUniqueViolation maps a 23505 to the conflicting identifier using
// the constraint name; anything else passes through unchanged.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}
	if strings.Contains(pgErr.ConstraintName, "username") {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

// stampNow formats the current time as the 14-char datetime used by the
// users table audit columns.
func stampNow() string {
	return time.Now().Format("20060102150405")
}
