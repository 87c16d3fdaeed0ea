package cart

import (
	"encoding/json"
	"fmt"

	"sweetnirwana/internal/domain"
)

// EncodeSnapshot serializes the cart lines as a JSON array, the exact shape
// held under the persistence store's session key.
func EncodeSnapshot(c *Cart) ([]byte, error) {
	return json.Marshal(c.Lines())
}

// DecodeSnapshot rehydrates a cart from a stored snapshot. Order and
// quantities survive the round trip.
func DecodeSnapshot(data []byte) (*Cart, error) {
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return New(lines), nil
}
