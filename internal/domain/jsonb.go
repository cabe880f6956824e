package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// RecommendedOffer is stored as a JSONB array.
type RecommendedOffer []RecommendedProduct

// Value implements driver.Valuer.
func (o RecommendedOffer) Value() (driver.Value, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// Scan implements sql.Scanner.
func (o *RecommendedOffer) Scan(src any) error {
	return scanJSON(src, o)
}

// PurchaseHistory is stored as a JSONB array.
type PurchaseHistory []HistoryEntry

// Value implements driver.Valuer.
func (h PurchaseHistory) Value() (driver.Value, error) {
	if h == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner.
func (h *PurchaseHistory) Scan(src any) error {
	return scanJSON(src, h)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
