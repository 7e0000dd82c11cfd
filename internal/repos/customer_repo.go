package repos

import (
	"github.com/jmoiron/sqlx"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/domain"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) List() ([]domain.Customer, error) {
	var out []domain.Customer
	err := r.db.Select(&out, `SELECT id, name, COALESCE(phone,'') AS phone FROM customers ORDER BY name`)
	return out, err
}

func (r *CustomerRepo) Get(id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `SELECT id, name, COALESCE(phone,'') AS phone FROM customers WHERE id = ?`, id)
	return c, err
}
