package services

import (
	portsrepo "github.com/stocknest/stocknest_backend/internal/core/ports/repositories"
	portssvc "github.com/stocknest/stocknest_backend/internal/core/ports/services"
	"github.com/stocknest/stocknest_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Item = NewItemService(repos.ItemRepo)
	container.SalesOrder = NewSalesOrderService(repos.SalesOrderRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Compile-time checks that each implementation satisfies its facade.
var (
	_ portssvc.CustomerSvcFacade   = (*customerService)(nil)
	_ portssvc.ItemSvcFacade       = (*itemService)(nil)
	_ portssvc.SalesOrderSvcFacade = (*salesOrderService)(nil)
	_ portssvc.UserSvcFacade       = (*userService)(nil)
)
