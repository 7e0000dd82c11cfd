package repos

import (
	"github.com/jmoiron/sqlx"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/domain"
)

type AccountRepo struct{ db *sqlx.DB }

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) List() ([]domain.PaymentAccount, error) {
	var out []domain.PaymentAccount
	err := r.db.Select(&out, `SELECT code, name, method FROM payment_accounts ORDER BY code`)
	return out, err
}

func (r *AccountRepo) Get(code string) (domain.PaymentAccount, error) {
	var a domain.PaymentAccount
	err := r.db.Get(&a, `SELECT code, name, method FROM payment_accounts WHERE code = ?`, code)
	return a, err
}
