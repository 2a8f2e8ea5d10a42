package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// AuditSortKey selects the ordering of an audit report.
type AuditSortKey string

const (
	AuditSortCreated AuditSortKey = "created_at"
	AuditSortTotal   AuditSortKey = "grand_total"
)

func ParseAuditSortKey(s string) (AuditSortKey, error) {
	switch AuditSortKey(s) {
	case "", AuditSortCreated:
		return AuditSortCreated, nil
	case AuditSortTotal:
		return AuditSortTotal, nil
	}
	return "", fmt.Errorf("%w: unknown sort key %q", ErrValidation, s)
}

// AuditReport lists settled orders with their count and revenue.
type AuditReport struct {
	Orders  []Summary
	Count   int
	Revenue decimal.Decimal
}

// BuildAudit keeps only settled summaries, sorts them and totals revenue
// as the sum of grand totals.
func BuildAudit(summaries []Summary, key AuditSortKey, descending bool) AuditReport {
	report := AuditReport{Orders: []Summary{}, Revenue: decimal.Zero}
	for _, s := range summaries {
		if !s.Settled {
			continue
		}
		report.Orders = append(report.Orders, s)
		report.Revenue = report.Revenue.Add(s.GrandTotal)
	}
	report.Count = len(report.Orders)

	less := func(a, b Summary) bool {
		if key == AuditSortTotal && !a.GrandTotal.Equal(b.GrandTotal) {
			return a.GrandTotal.LessThan(b.GrandTotal)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.OrderID.String() < b.OrderID.String()
	}
	sort.SliceStable(report.Orders, func(i, j int) bool {
		if descending {
			return less(report.Orders[j], report.Orders[i])
		}
		return less(report.Orders[i], report.Orders[j])
	})
	return report
}
