package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"workshopcart/utils"
)

// CatalogItem is one purchasable inventory record. The JSON field names are
// the inventory backend's contract and must not change.
type CatalogItem struct {
	ID           string `json:"id"`
	DisplayName  string `json:"Item"`
	Price        string `json:"Price"`
	PriceCents   int64  `json:"-"`
	ImageURL     string `json:"Image,omitempty"`
	DatasheetURL string `json:"Datasheet,omitempty"`
	Description  string `json:"Descripción,omitempty"`
}

type catalogItemAlias CatalogItem

// UnmarshalJSON accepts a string or numeric id and parses the display price.
func (c *CatalogItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		catalogItemAlias
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	item := CatalogItem(raw.catalogItemAlias)

	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	item.ID = id

	cents, err := utils.ParsePriceCents(item.Price)
	if err != nil {
		return fmt.Errorf("catalog item %q: %w", item.ID, err)
	}
	item.PriceCents = cents

	*c = item
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("catalog item id must be a string or number: %w", err)
	}
	return n.String(), nil
}
