package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AnalysisJSON stores the analysis payload as raw JSON so that what goes into the
// column comes back byte-identical on retrieval.
type AnalysisJSON json.RawMessage

func (a AnalysisJSON) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return string(a), nil
}

func (a *AnalysisJSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		*a = append((*a)[:0], v...)
		return nil
	case string:
		*a = AnalysisJSON(v)
		return nil
	default:
		return fmt.Errorf("unsupported type for AnalysisJSON: %T", value)
	}
}

func (a AnalysisJSON) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte("null"), nil
	}
	return a, nil
}

func (a *AnalysisJSON) UnmarshalJSON(data []byte) error {
	*a = append((*a)[:0], data...)
	return nil
}

type Resume struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename  string       `gorm:"type:text" json:"filename"`
	RawText   string       `gorm:"type:text" json:"raw_text"`
	Analysis  AnalysisJSON `gorm:"type:json" json:"analysis"`
	Rating    *float64     `gorm:"type:numeric" json:"rating"`
	CreatedAt time.Time    `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (r *Resume) TableName() string {
	return "resumes"
}
