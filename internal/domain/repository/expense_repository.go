package repository

import "github.com/jhoicas/Panaderia-api/internal/domain/entity"

// ExpenseRepository puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	List(limit int) ([]*entity.Expense, error)
}
