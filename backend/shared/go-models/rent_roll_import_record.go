package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentRollImportRecord is one reconciled CSV row. All records sharing a
// SourceFile are replaced together on re-import.
type RentRollImportRecord struct {
	ID               uuid.UUID       `json:"id"`
	PropertyID       uuid.UUID       `json:"propertyId"`
	UnitID           string          `json:"unitId"`
	TenantID         *uuid.UUID      `json:"tenantId,omitempty"`
	AmountReceivable decimal.Decimal `json:"amountReceivable"`
	LastPaymentDate  time.Time       `json:"lastPaymentDate"`
	Month            string          `json:"month"`
	SourceFile       string          `json:"sourceFile"`
	ImportDate       time.Time       `json:"importDate"`
}

type MonthlyReceivable struct {
	Month           string          `json:"month"`
	TotalReceivable decimal.Decimal `json:"totalReceivable"`
}
