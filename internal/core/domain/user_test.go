package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
)

func TestUserHasPermission(t *testing.T) {
	admin := domain.User{Role: domain.RoleAdmin}
	manager := domain.User{Role: domain.RoleManager}
	employee := domain.User{Role: domain.RoleEmployee, Permissions: []domain.Permission{domain.PermSales}}

	assert.True(t, admin.HasPermission(domain.PermDashboard))
	assert.True(t, manager.HasPermission(domain.PermItem))
	assert.True(t, employee.HasPermission(domain.PermSales))
	assert.False(t, employee.HasPermission(domain.PermDashboard))
	assert.False(t, domain.User{Role: domain.RoleEmployee}.HasPermission(domain.PermCustomer))
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, domain.RoleAdmin.IsValid())
	assert.True(t, domain.RoleManager.IsValid())
	assert.True(t, domain.RoleEmployee.IsValid())
	assert.False(t, domain.Role("superuser").IsValid())
}
