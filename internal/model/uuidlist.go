package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// UUIDList stores a denormalized list of references as a JSON array in a
// single text column. The company→project back-references are kept in
// sync imperatively on project writes; the sync is best-effort, not
// atomic.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		l = UUIDList{}
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (l *UUIDList) Scan(src interface{}) error {
	if src == nil {
		*l = UUIDList{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for UUIDList", src)
	}
	if len(raw) == 0 {
		*l = UUIDList{}
		return nil
	}
	return json.Unmarshal(raw, l)
}

// StringList stores a list of free-form strings the same way.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(raw, l)
}

func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, item := range l {
		if item == id {
			return true
		}
	}
	return false
}

// Add appends id if it is not already present.
func (l UUIDList) Add(id uuid.UUID) UUIDList {
	if l.Contains(id) {
		return l
	}
	return append(l, id)
}

// Remove drops every occurrence of id.
func (l UUIDList) Remove(id uuid.UUID) UUIDList {
	result := make(UUIDList, 0, len(l))
	for _, item := range l {
		if item != id {
			result = append(result, item)
		}
	}
	return result
}
