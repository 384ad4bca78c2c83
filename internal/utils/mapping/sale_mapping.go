package mapping

import (
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/models"
)

// ToDomainSale converts a models.Sale from the DB.
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:         m.SaleID,
		OrganizationID: m.OrganizationID,
		Reference:      m.Reference,
		TotalCents:     m.TotalCents,
		Status:         domain.SaleStatus(m.Status),
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSale converts a domain.Sale for DB storage.
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:         d.SaleID,
		OrganizationID: d.OrganizationID,
		Reference:      d.Reference,
		TotalCents:     d.TotalCents,
		Status:         string(d.Status),
		PaymentStatus:  string(d.PaymentStatus),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}
