package normalize

import (
	"strconv"

	"github.com/buchetul-simonei/order-service/internal/entities"

	"go.mongodb.org/mongo-driver/bson"
)

// LineDisplay is a display-ready line item. Values stay strings so a malformed
// price or quantity can still be rendered while contributing zero to totals.
type LineDisplay struct {
	Title    string
	Quantity string
	Price    string
}

// Lines extracts the live line-item sequence for invoice rendering. Validated
// values win when available, otherwise each item is read best-effort from the
// raw products array.
func Lines(doc bson.M, strict *entities.Order) []LineDisplay {
	if strict != nil {
		lines := make([]LineDisplay, 0, len(strict.Products))
		for _, p := range strict.Products {
			lines = append(lines, LineDisplay{
				Title:    p.Title,
				Quantity: strconv.Itoa(p.Quantity),
				Price:    p.Price.String(),
			})
		}
		return lines
	}

	raw, ok := doc["products"]
	if !ok || raw == nil {
		return nil
	}
	var elems []any
	switch t := raw.(type) {
	case bson.A:
		elems = t
	case []any:
		elems = t
	default:
		return nil
	}

	lines := make([]LineDisplay, 0, len(elems))
	for _, elem := range elems {
		var fields bson.M
		switch t := elem.(type) {
		case bson.M:
			fields = t
		case map[string]any:
			fields = t
		default:
			lines = append(lines, LineDisplay{})
			continue
		}

		var line LineDisplay
		line.Title, _ = asString(fields["title"])
		line.Quantity, _ = asString(fields["quantity"])
		line.Price, _ = asString(fields["price"])
		lines = append(lines, line)
	}
	return lines
}
