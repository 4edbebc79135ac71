package cart

import (
	"encoding/json"

	"workshopcart/models"
	"workshopcart/utils"
)

// Store owns the selected lines of one cart. Lines are unique by item id and
// every quantity stays within [1, utils.MaxLineQuantity].
type Store struct {
	lines []models.CartLine
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) index(itemID string) int {
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

// Add puts one more unit of item in the cart, creating the line if needed.
func (s *Store) Add(item models.CatalogItem) {
	if i := s.index(item.ID); i >= 0 {
		s.lines[i].Quantity = clamp(s.lines[i].Quantity + 1)
		return
	}
	s.lines = append(s.lines, models.CartLine{
		ItemID:      item.ID,
		DisplayName: item.DisplayName,
		PriceCents:  item.PriceCents,
		Quantity:    1,
	})
}

// Remove deletes the line for itemID. Unknown ids are ignored.
func (s *Store) Remove(itemID string) {
	i := s.index(itemID)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

// SetQuantity sets an existing line's quantity. Zero or less removes the
// line; anything above the ceiling is silently clamped.
func (s *Store) SetQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		s.Remove(itemID)
		return
	}
	if i := s.index(itemID); i >= 0 {
		s.lines[i].Quantity = clamp(quantity)
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.lines = nil
}

// Total returns the sum of quantity * price over all lines, in cents.
func (s *Store) Total() int64 {
	var total int64
	for _, l := range s.lines {
		total += l.LineTotalCents()
	}
	return total
}

// Subtotal renders Total as a two-decimal string.
func (s *Store) Subtotal() string {
	return utils.FormatCents(s.Total())
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []models.CartLine {
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Quantity returns the quantity held for itemID, 0 when absent.
func (s *Store) Quantity(itemID string) int {
	if i := s.index(itemID); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

func (s *Store) Len() int {
	return len(s.lines)
}

// Count is the number of units across all lines.
func (s *Store) Count() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Lines())
}

// UnmarshalJSON restores lines, re-applying the uniqueness and quantity rules.
func (s *Store) UnmarshalJSON(data []byte) error {
	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	s.lines = nil
	for _, l := range lines {
		if l.Quantity <= 0 || s.index(l.ItemID) >= 0 {
			continue
		}
		l.Quantity = clamp(l.Quantity)
		s.lines = append(s.lines, l)
	}
	return nil
}

func clamp(q int) int {
	if q > utils.MaxLineQuantity {
		return utils.MaxLineQuantity
	}
	return q
}
