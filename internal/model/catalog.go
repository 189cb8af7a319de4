package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

// Product listings are schemaless: anything the seller posts beyond the
// fields below is kept in Attributes and written back flat.
type Product struct {
	ID           uuid.UUID
	CategoryName string
	Name         string
	SellerEmail  string
	ResalePrice  float64
	Attributes   map[string]any
	CreatedAt    time.Time
}

type productFields struct {
	CategoryName string `json:"category_name"`
	Name         string `json:"name"`
	SellerEmail  string `json:"sellerEmail"`
	ResalePrice  Price  `json:"resalePrice"`
}

var reservedProductKeys = []string{"_id", "category_name", "name", "sellerEmail", "resalePrice", "createdAt"}

func (p Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Attributes)+len(reservedProductKeys))
	for k, v := range p.Attributes {
		out[k] = v
	}
	out["_id"] = p.ID
	out["category_name"] = p.CategoryName
	out["name"] = p.Name
	out["sellerEmail"] = p.SellerEmail
	out["resalePrice"] = p.ResalePrice
	out["createdAt"] = p.CreatedAt
	return json.Marshal(out)
}

// UnmarshalJSON ignores client supplied _id and createdAt; both are
// assigned by the store.
func (p *Product) UnmarshalJSON(b []byte) error {
	var f productFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	var rest map[string]any
	if err := json.Unmarshal(b, &rest); err != nil {
		return err
	}
	for _, k := range reservedProductKeys {
		delete(rest, k)
	}
	p.CategoryName = f.CategoryName
	p.Name = f.Name
	p.SellerEmail = f.SellerEmail
	p.ResalePrice = float64(f.ResalePrice)
	p.Attributes = rest
	return nil
}
