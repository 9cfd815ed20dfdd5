package importer

import "strings"

// Profile describes the column layout of a line item spreadsheet. Header
// names are matched case-insensitively; HSCodeCol and WeightCol are optional.
type Profile struct {
	Name           string
	DescriptionCol string
	QuantityCol    string
	UnitPriceCol   string
	HSCodeCol      string
	WeightCol      string
}

func (p Profile) requiredCols() []string {
	return []string{p.DescriptionCol, p.QuantityCol, p.UnitPriceCol}
}

// profiles are tried in order against every row until one matches a header.
var profiles = []Profile{
	{
		Name:           "generic",
		DescriptionCol: "description",
		QuantityCol:    "quantity",
		UnitPriceCol:   "unit price",
		HSCodeCol:      "hs code",
		WeightCol:      "weight",
	},
	{
		Name:           "commercial",
		DescriptionCol: "item",
		QuantityCol:    "qty",
		UnitPriceCol:   "price",
		HSCodeCol:      "tariff code",
		WeightCol:      "net weight",
	},
}

// Profiles lists the names of the supported layouts.
func Profiles() []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}

	return names
}

func headerKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
