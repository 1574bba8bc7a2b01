package cms

import (
	"encoding/json"
	"fmt"
)

// envelope is the standard content-API response wrapper. Data is either a
// single entry or an array of entries depending on the endpoint.
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta *meta           `json:"meta,omitempty"`
}

type meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination mirrors the collection metadata of the content API
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// entries splits an array-shaped Data into raw entries
func (e *envelope) entries() ([]json.RawMessage, error) {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return nil, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(e.Data, &raw); err != nil {
		return nil, fmt.Errorf("cms: expected collection data: %w", err)
	}
	return raw, nil
}

// entry returns the single-entry Data, nil for null
func (e *envelope) entry() json.RawMessage {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	return e.Data
}

// decodeEntry normalizes the two envelope generations the API can serve.
// v4 nests record fields under "attributes" ({id, attributes:{...}}), v5
// flattens them next to id and documentId. Record fields are unmarshalled
// into attrs; id and documentId are returned separately because v4 keeps
// them outside the attribute blob.
func decodeEntry(raw json.RawMessage, attrs any) (id int, documentID string, err error) {
	var probe struct {
		ID         int             `json:"id"`
		DocumentID string          `json:"documentId"`
		Attributes json.RawMessage `json:"attributes"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0, "", fmt.Errorf("cms: malformed entry: %w", err)
	}

	blob := raw
	if len(probe.Attributes) > 0 && string(probe.Attributes) != "null" {
		blob = probe.Attributes
		// v4 may still carry documentId inside the attributes
		if probe.DocumentID == "" {
			var inner struct {
				DocumentID string `json:"documentId"`
			}
			_ = json.Unmarshal(blob, &inner)
			probe.DocumentID = inner.DocumentID
		}
	}

	if attrs != nil {
		if err := json.Unmarshal(blob, attrs); err != nil {
			return 0, "", fmt.Errorf("cms: malformed entry attributes: %w", err)
		}
	}
	return probe.ID, probe.DocumentID, nil
}

// entryList accepts a relation field in either generation: a bare array of
// entries (v5) or a {data: [...]} wrapper (v4). Single-entry relations
// ({data: {...}} or a bare object) decode to a one-element list.
type entryList []json.RawMessage

// UnmarshalJSON implements json.Unmarshaler
func (l *entryList) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*l = nil
		return nil
	}

	// v4 wrapper
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if b[0] == '{' {
		if err := json.Unmarshal(b, &wrapped); err == nil && len(wrapped.Data) > 0 {
			return l.UnmarshalJSON(wrapped.Data)
		}
		// bare single object
		*l = entryList{json.RawMessage(b)}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("cms: malformed relation: %w", err)
	}
	*l = entryList(raw)
	return nil
}
