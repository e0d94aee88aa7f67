package main

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/takumikoubou/mitsumori/internal/catalog"
)

// parseFloatOrZero is the lenient policy for worksheet numbers: whatever
// the operator typed that does not parse counts as zero.
func parseFloatOrZero(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%sは数値で入力してください", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%sは0以上で入力してください", field)
	}
	return value, nil
}

// parsePriceEdits collects the bulk price form. Field names are
// price_<category>_<index>; the category may contain underscores, the
// index never does, so the split happens at the last one.
func parsePriceEdits(form url.Values) []catalog.PriceEdit {
	var edits []catalog.PriceEdit
	for key, values := range form {
		if !strings.HasPrefix(key, "price_") || len(values) == 0 {
			continue
		}
		rest := strings.TrimPrefix(key, "price_")
		cut := strings.LastIndex(rest, "_")
		if cut <= 0 {
			continue
		}
		index, err := strconv.Atoi(rest[cut+1:])
		if err != nil {
			continue
		}
		edits = append(edits, catalog.PriceEdit{
			Category: rest[:cut],
			Index:    index,
			Price:    parseFloatOrZero(values[0]),
		})
	}
	return edits
}
