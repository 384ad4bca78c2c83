package mapping

import (
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/models"
)

// ToModelSplit converts a domain.Split for DB storage.
func ToModelSplit(d domain.Split) models.Split {
	return models.Split{
		SplitID:             d.SplitID,
		SaleID:              d.SaleID,
		AccountID:           d.AccountID,
		SplitType:           models.SplitType(d.SplitType),
		GrossAmountCents:    d.GrossAmountCents,
		FeeCents:            d.FeeCents,
		NetAmountCents:      d.NetAmountCents,
		Percentage:          d.Percentage,
		LiableForRefund:     d.LiableForRefund,
		LiableForChargeback: d.LiableForChargeback,
		CreditTransactionID: d.CreditTransactionID,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSplit converts a models.Split from the DB.
func ToDomainSplit(m models.Split) domain.Split {
	return domain.Split{
		SplitID:             m.SplitID,
		SaleID:              m.SaleID,
		AccountID:           m.AccountID,
		SplitType:           domain.SplitType(m.SplitType),
		GrossAmountCents:    m.GrossAmountCents,
		FeeCents:            m.FeeCents,
		NetAmountCents:      m.NetAmountCents,
		Percentage:          m.Percentage,
		LiableForRefund:     m.LiableForRefund,
		LiableForChargeback: m.LiableForChargeback,
		CreditTransactionID: m.CreditTransactionID,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
