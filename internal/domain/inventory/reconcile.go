package inventory

import (
	"sort"
	"strings"
)

// StockLine is one required or target quantity for a SKU, typically a row
// of a reconciliation CSV
type StockLine struct {
	SKU         string
	Quantity    int64
	Description string
}

// MergeLines sums quantities of repeated SKUs. Order follows first
// occurrence and the first non-empty description wins.
func MergeLines(lines []StockLine) []StockLine {
	index := make(map[string]int, len(lines))
	out := make([]StockLine, 0, len(lines))
	for _, l := range lines {
		l.SKU = strings.TrimSpace(l.SKU)
		if i, ok := index[l.SKU]; ok {
			out[i].Quantity += l.Quantity
			if out[i].Description == "" {
				out[i].Description = l.Description
			}
			continue
		}
		index[l.SKU] = len(out)
		out = append(out, l)
	}
	return out
}

// SKUs lists the SKUs of lines
func SKUs(lines []StockLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.SKU
	}
	return out
}

// PartStatus is the outcome of checking one SKU against stock
type PartStatus string

const (
	PartOK      PartStatus = "ok"
	PartShort   PartStatus = "short"
	PartMissing PartStatus = "missing"
)

// PartCheck compares a required quantity with what is on hand
type PartCheck struct {
	SKU         string     `json:"sku"`
	Description string     `json:"description,omitempty"`
	Required    int64      `json:"required"`
	OnHand      int64      `json:"on_hand"`
	Shortfall   int64      `json:"shortfall"`
	Status      PartStatus `json:"status"`
}

// CheckParts merges lines and classifies each SKU against onHand. A SKU
// absent from onHand has no stock row and is reported missing.
func CheckParts(lines []StockLine, onHand map[string]int64) []PartCheck {
	merged := MergeLines(lines)
	out := make([]PartCheck, 0, len(merged))
	for _, l := range merged {
		c := PartCheck{SKU: l.SKU, Description: l.Description, Required: l.Quantity}
		qty, ok := onHand[l.SKU]
		switch {
		case !ok:
			c.Status = PartMissing
			c.Shortfall = l.Quantity
		case qty >= l.Quantity:
			c.Status = PartOK
			c.OnHand = qty
		default:
			c.Status = PartShort
			c.OnHand = qty
			c.Shortfall = l.Quantity - qty
		}
		out = append(out, c)
	}
	return out
}

// ResetAction is what a stock reset does to one SKU
type ResetAction string

const (
	ResetCreated   ResetAction = "created"
	ResetUpdated   ResetAction = "updated"
	ResetUnchanged ResetAction = "unchanged"
)

// ResetChange describes the reset of one SKU
type ResetChange struct {
	SKU      string      `json:"sku"`
	Previous int64       `json:"previous"`
	Target   int64       `json:"target"`
	Action   ResetAction `json:"action"`
}

// PlanReset computes the changes that set every SKU in lines to its target
// quantity, given current quantities. Output is sorted by SKU.
func PlanReset(lines []StockLine, current map[string]int64) []ResetChange {
	merged := MergeLines(lines)
	out := make([]ResetChange, 0, len(merged))
	for _, l := range merged {
		c := ResetChange{SKU: l.SKU, Target: l.Quantity}
		prev, ok := current[l.SKU]
		switch {
		case !ok:
			c.Action = ResetCreated
		case prev == l.Quantity:
			c.Previous = prev
			c.Action = ResetUnchanged
		default:
			c.Previous = prev
			c.Action = ResetUpdated
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}
