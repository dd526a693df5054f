package misccharges

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/freight-audit/internal/model"
)

// CategoryRollup totals the queue per category.
type CategoryRollup struct {
	Category string  `json:"misc_category"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
}

// MonthRollup totals the queue per ship month (YYYY-MM).
type MonthRollup struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// Summary holds count, sum and mean of queued amounts.
type Summary struct {
	Count int     `json:"count_misc"`
	Sum   float64 `json:"sum_misc"`
	Avg   float64 `json:"avg_misc"`
}

// Views are the advisory outputs of the misc detector.
type Views struct {
	Queue      []model.MiscCharge `json:"queue"`
	ByCategory []CategoryRollup   `json:"by_category"`
	ByMonth    []MonthRollup      `json:"by_month"`
	Summary    Summary            `json:"summary"`
}

// BuildViews queues the non-shipment charges and rolls them up.
func BuildViews(charges []model.MiscCharge) Views {
	var v Views
	for _, c := range charges {
		if c.IsNonShipment {
			v.Queue = append(v.Queue, c)
		}
	}
	if len(v.Queue) == 0 {
		return v
	}

	type catAgg struct {
		total decimal.Decimal
		count int
	}
	byCat := make(map[string]*catAgg)
	byMonth := make(map[string]decimal.Decimal)
	sum := decimal.Zero

	for _, c := range v.Queue {
		amt := decimal.NewFromFloat(c.Amount)
		sum = sum.Add(amt)

		agg, ok := byCat[c.Category]
		if !ok {
			agg = &catAgg{}
			byCat[c.Category] = agg
		}
		agg.count++
		agg.total = agg.total.Add(amt)

		if !c.ShipDate.IsZero() {
			month := c.ShipDate.Format("2006-01")
			byMonth[month] = byMonth[month].Add(amt)
		}
	}

	for cat, agg := range byCat {
		v.ByCategory = append(v.ByCategory, CategoryRollup{
			Category: cat,
			Count:    agg.count,
			Total:    agg.total.InexactFloat64(),
		})
	}
	sort.Slice(v.ByCategory, func(i, j int) bool {
		if v.ByCategory[i].Total != v.ByCategory[j].Total {
			return v.ByCategory[i].Total > v.ByCategory[j].Total
		}
		return v.ByCategory[i].Category < v.ByCategory[j].Category
	})

	for month, total := range byMonth {
		v.ByMonth = append(v.ByMonth, MonthRollup{Month: month, Total: total.InexactFloat64()})
	}
	sort.Slice(v.ByMonth, func(i, j int) bool {
		return v.ByMonth[i].Month < v.ByMonth[j].Month
	})

	n := len(v.Queue)
	v.Summary = Summary{
		Count: n,
		Sum:   sum.InexactFloat64(),
		Avg:   sum.Div(decimal.NewFromInt(int64(n))).InexactFloat64(),
	}
	return v
}
