package mapping

import (
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/models"
)

// ToModelAccount converts a domain.Account for DB storage.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:           d.AccountID,
		OrganizationID:      d.OrganizationID,
		Role:                models.AccountRole(d.Role),
		HolderName:          d.HolderName,
		HolderEmail:         d.HolderEmail,
		BalanceCents:        d.BalanceCents,
		PendingBalanceCents: d.PendingBalanceCents,
		TotalReceivedCents:  d.TotalReceivedCents,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a models.Account from the DB.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:           m.AccountID,
		OrganizationID:      m.OrganizationID,
		Role:                domain.AccountRole(m.Role),
		HolderName:          m.HolderName,
		HolderEmail:         m.HolderEmail,
		BalanceCents:        m.BalanceCents,
		PendingBalanceCents: m.PendingBalanceCents,
		TotalReceivedCents:  m.TotalReceivedCents,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
