package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para reportes mensuales.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// MonthlySales ventas netas y descuentos por mes sobre pedidos en estados
// que cuentan como venta (READY, DELIVERED, PAID), últimos N meses.
func (r *ReportRepo) MonthlySales(months int) ([]repository.MonthlySales, error) {
	const query = `
		SELECT to_char(date_trunc('month', order_date), 'YYYY-MM') AS month,
		       COALESCE(SUM(total_net), 0),
		       COALESCE(SUM(total_discount), 0)
		FROM sales_orders
		WHERE status IN ('READY', 'DELIVERED', 'PAID')
		  AND order_date >= date_trunc('month', NOW()) - make_interval(months => $1 - 1)
		GROUP BY 1
		ORDER BY 1`
	rows, err := r.pool.Query(context.Background(), query, months)
	if err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}
	defer rows.Close()
	var list []repository.MonthlySales
	for rows.Next() {
		var s repository.MonthlySales
		if err := rows.Scan(&s.Month, &s.Total, &s.Discount); err != nil {
			return nil, fmt.Errorf("scan monthly sales: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// MonthlyProfit resultado por mes: ingresos (ventas netas) menos costo de
// insumos consumidos (salidas OUT valoradas a su costo) menos gastos.
// Los tres agregados se calculan por separado y se cruzan por mes.
func (r *ReportRepo) MonthlyProfit(months int) ([]repository.MonthlyProfit, error) {
	const query = `
		WITH bounds AS (
			SELECT date_trunc('month', NOW()) - make_interval(months => $1 - 1) AS since
		),
		revenue AS (
			SELECT to_char(date_trunc('month', order_date), 'YYYY-MM') AS month,
			       SUM(total_net) AS total
			FROM sales_orders, bounds
			WHERE status IN ('READY', 'DELIVERED', 'PAID') AND order_date >= bounds.since
			GROUP BY 1
		),
		cogs AS (
			SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
			       SUM(qty * COALESCE(unit_cost, 0)) AS total
			FROM inventory_movements, bounds
			WHERE type = 'OUT' AND created_at >= bounds.since
			GROUP BY 1
		),
		spent AS (
			SELECT to_char(date_trunc('month', date), 'YYYY-MM') AS month,
			       SUM(amount) AS total
			FROM expenses, bounds
			WHERE date >= bounds.since
			GROUP BY 1
		)
		SELECT m.month,
		       COALESCE(revenue.total, 0),
		       COALESCE(cogs.total, 0),
		       COALESCE(spent.total, 0)
		FROM (
			SELECT month FROM revenue
			UNION SELECT month FROM cogs
			UNION SELECT month FROM spent
		) m
		LEFT JOIN revenue ON revenue.month = m.month
		LEFT JOIN cogs ON cogs.month = m.month
		LEFT JOIN spent ON spent.month = m.month
		ORDER BY m.month`
	rows, err := r.pool.Query(context.Background(), query, months)
	if err != nil {
		return nil, fmt.Errorf("monthly profit: %w", err)
	}
	defer rows.Close()
	var list []repository.MonthlyProfit
	for rows.Next() {
		var p repository.MonthlyProfit
		if err := rows.Scan(&p.Month, &p.Revenue, &p.Cogs, &p.Expenses); err != nil {
			return nil, fmt.Errorf("scan monthly profit: %w", err)
		}
		p.Profit = p.Revenue.Sub(p.Cogs).Sub(p.Expenses)
		list = append(list, p)
	}
	return list, rows.Err()
}
