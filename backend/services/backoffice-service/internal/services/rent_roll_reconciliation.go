package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/dtos"
	"github.com/insightventures/backoffice/backend/shared/go-models"
)

// Rent-roll export column layout.
const (
	colPaymentDate = 0
	colTenantName  = 1
	colAmount      = 5
	colUnitName    = 6

	contextMarker = "->"
)

var paymentDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
}

var (
	parentheticalRe  = regexp.MustCompile(`\([^)]*\)`)
	punctuationRe    = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	companySuffixRe  = regexp.MustCompile(`\s+(llc|inc|ltd)$`)
	whitespaceRunsRe = regexp.MustCompile(`\s+`)
)

// ReconcileResult holds the resolved records and the per-row failures of one
// rent-roll file.
type ReconcileResult struct {
	Records []*models.RentRollImportRecord
	Errors  []dtos.RentRollRowError
}

// propertyIdentifiers returns, per property, the lowercased identifiers in
// match-priority order: code, entity name, display name, street.
func propertyIdentifiers(p *models.Property) [4]string {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return [4]string{
		norm(p.PropertyCode),
		norm(p.EntityName),
		norm(p.Name),
		norm(p.Address.Street),
	}
}

// matchContextProperty finds the property a context marker row refers to.
// Identifier kinds are tried in priority order across all properties. Within
// a kind the longest identifier contained in cleaned wins, so "iv-10" beats
// "iv-1"; equal lengths keep list order.
func matchContextProperty(cleaned string, properties []*models.Property) *models.Property {
	idents := make([][4]string, len(properties))
	for i, p := range properties {
		idents[i] = propertyIdentifiers(p)
	}
	for kind := 0; kind < 4; kind++ {
		var best *models.Property
		bestLen := 0
		for i, p := range properties {
			id := idents[i][kind]
			if len(id) > bestLen && strings.Contains(cleaned, id) {
				best, bestLen = p, len(id)
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}

// NormalizeTenantName lowercases, strips parenthetical notes and punctuation,
// and drops a trailing llc/inc/ltd.
func NormalizeTenantName(name string) string {
	s := strings.ToLower(name)
	s = parentheticalRe.ReplaceAllString(s, " ")
	s = punctuationRe.ReplaceAllString(s, "")
	s = whitespaceRunsRe.ReplaceAllString(strings.TrimSpace(s), " ")
	s = companySuffixRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ParseAmount reads a currency cell: "$1,500.00", "1500", "(250.00)".
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// ParsePaymentDate accepts ISO, US slash and long-month forms.
func ParsePaymentDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range paymentDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// Reconcile matches rent-roll rows (row 0 is the header) to properties, units
// and tenants. A failing row is recorded and skipped; processing never stops.
func Reconcile(
	rows [][]string,
	sourceFile string,
	properties []*models.Property,
	tenants []*models.Tenant,
	importDate time.Time,
) ReconcileResult {
	tenantsByName := make(map[string]*models.Tenant, len(tenants))
	for _, t := range tenants {
		key := NormalizeTenantName(t.Name)
		if _, dup := tenantsByName[key]; !dup && key != "" {
			tenantsByName[key] = t
		}
	}

	var (
		res     ReconcileResult
		current *models.Property
	)
	rowErr := func(i int, row []string, reason string) {
		res.Errors = append(res.Errors, dtos.RentRollRowError{
			Row:    i + 1,
			Text:   strings.Join(row, ","),
			Reason: reason,
		})
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		first := cell(row, 0)

		if strings.HasPrefix(first, contextMarker) {
			cleaned := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(first, contextMarker)))
			if p := matchContextProperty(cleaned, properties); p != nil {
				current = p
			} else {
				rowErr(i, row, fmt.Sprintf("No property matches context row %q", cleaned))
			}
			continue
		}

		tenantName := cell(row, colTenantName)
		amount, ok := ParseAmount(cell(row, colAmount))
		if tenantName == "" || !ok {
			continue
		}

		paidOn, ok := ParsePaymentDate(cell(row, colPaymentDate))
		if !ok {
			rowErr(i, row, fmt.Sprintf("Invalid payment date %q", cell(row, colPaymentDate)))
			continue
		}
		if current == nil {
			rowErr(i, row, "No property context precedes this row")
			continue
		}

		unitName := cell(row, colUnitName)
		unit := current.FindUnitByName(unitName)
		if unit == nil {
			rowErr(i, row, fmt.Sprintf("Unit %q not found in property %q", unitName, current.DisplayName()))
			continue
		}

		tenant, ok := tenantsByName[NormalizeTenantName(tenantName)]
		if !ok {
			rowErr(i, row, fmt.Sprintf("Tenant %q not found", tenantName))
			continue
		}

		tenantID := tenant.ID
		res.Records = append(res.Records, &models.RentRollImportRecord{
			PropertyID:       current.ID,
			UnitID:           unit.ID,
			TenantID:         &tenantID,
			AmountReceivable: amount,
			LastPaymentDate:  paidOn,
			Month:            paidOn.Format("2006-01"),
			SourceFile:       sourceFile,
			ImportDate:       importDate,
		})
	}
	return res
}
