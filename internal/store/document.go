package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
)

// Metadata is a flat string map stored as JSON text
type Metadata map[string]string

// Value implements the driver.Valuer interface
func (m Metadata) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = Metadata{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("store: cannot scan %T into Metadata", value)
	}

	return json.Unmarshal(bytes, m)
}

// Document is one stored recipe.
type Document struct {
	ID        string          `gorm:"primaryKey;size:255"`
	Document  string          `gorm:"type:text;not null"`
	Metadata  Metadata        `gorm:"type:text;not null"`
	Embedding pgvector.Vector `gorm:"type:vector"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Document) TableName() string {
	return "recipe_documents"
}
