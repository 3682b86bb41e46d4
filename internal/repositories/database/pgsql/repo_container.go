package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/stocknest/stocknest_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	customerRepo := newPgxCustomerRepository(dbPool)
	itemRepo := newPgxItemRepository(dbPool)
	salesOrderRepo := newPgxSalesOrderRepository(dbPool, customerRepo, itemRepo)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CustomerRepo:   customerRepo,
		ItemRepo:       itemRepo,
		SalesOrderRepo: salesOrderRepo,
		UserRepo:       userRepo,
		ReportingRepo:  reportingRepo,
	}
}
