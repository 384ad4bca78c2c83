package mapping

import (
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/models"
)

// ToModelTransaction converts a domain.Transaction for DB storage.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:  d.TransactionID,
		AccountID:      d.AccountID,
		SaleID:         d.SaleID,
		Type:           models.TransactionType(d.Type),
		AmountCents:    d.AmountCents,
		FeeCents:       d.FeeCents,
		NetAmountCents: d.NetAmountCents,
		Status:         models.TransactionStatus(d.Status),
		ReferenceID:    d.ReferenceID,
		ReleaseAt:      d.ReleaseAt,
		Description:    d.Description,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a models.Transaction from the DB.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.TransactionID,
		AccountID:      m.AccountID,
		SaleID:         m.SaleID,
		Type:           domain.TransactionType(m.Type),
		AmountCents:    m.AmountCents,
		FeeCents:       m.FeeCents,
		NetAmountCents: m.NetAmountCents,
		Status:         domain.TransactionStatus(m.Status),
		ReferenceID:    m.ReferenceID,
		ReleaseAt:      m.ReleaseAt,
		Description:    m.Description,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
