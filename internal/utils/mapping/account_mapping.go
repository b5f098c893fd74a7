package mapping

import (
	"github.com/restopilot/resto_books_app/internal/core/domain"
	"github.com/restopilot/resto_books_app/internal/models"
)

// ToModelAccount converts a domain Account to its persistence model.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		RestaurantID: d.RestaurantID,
		Code:         d.Code,
		Name:         d.Name,
		AccountType:  models.AccountType(d.AccountType),
		Description:  d.Description,
		IsActive:     d.IsActive,
		Balance:      d.Balance,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a persistence Account to the domain.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		RestaurantID: m.RestaurantID,
		Code:         m.Code,
		Name:         m.Name,
		AccountType:  domain.AccountType(m.AccountType),
		Description:  m.Description,
		IsActive:     m.IsActive,
		Balance:      m.Balance,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of persistence Accounts to the domain.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
