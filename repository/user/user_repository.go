package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mfg-stock/model"
)

type SQL struct {
	conn *sqlx.DB
}

// UserRepository stores the accounts that sign stock operations. The role column is what
// route authorization and audit rows read.
type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery = `INSERT INTO users (name, email, phone, password_hash, role) VALUES (:name, :email, :phone, :password_hash, :role)`
	selectUserQuery = `SELECT id, name, email, phone, password_hash, role, created_at, updated_at FROM users WHERE %s LIMIT 1`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	if !data.Role.IsValid() {
		return nil, fmt.Errorf("create user: unknown role %q", data.Role)
	}
	result, err := s.conn.NamedExecContext(ctx, insertUserQuery, data)
	if err != nil {
		return nil, err
	}
	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	data.ID = uint64(lastID)
	return data, nil
}

// Get returns nil, nil when no user matches. An empty filter matches nobody.
func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	conds, args := userConditions(filter)
	if len(conds) == 0 {
		return nil, nil
	}

	var entity model.UserEntity
	err := s.conn.GetContext(ctx, &entity, fmt.Sprintf(selectUserQuery, strings.Join(conds, " AND ")), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func userConditions(filter *model.UserFilter) ([]string, []any) {
	if filter == nil {
		return nil, nil
	}
	var conds []string
	var args []any
	if filter.ID != 0 {
		conds = append(conds, "id = ?")
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		conds = append(conds, "email = ?")
		args = append(args, filter.Email)
	}
	if filter.Phone != "" {
		conds = append(conds, "phone = ?")
		args = append(args, filter.Phone)
	}
	return conds, args
}
