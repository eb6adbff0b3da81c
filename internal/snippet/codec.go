package snippet

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// record mirrors Snippet with pointer fields so missing keys can be told
// apart from zero values.
type record struct {
	ID          *int    `json:"id"`
	Title       *string `json:"title"`
	Language    *string `json:"language"`
	Tags        *string `json:"tags"`
	Code        *string `json:"code"`
	IsFavourite *bool   `json:"is_favourite"`
}

// DecodeRecords parses a JSON array of snippet objects.
//
// Every object must carry exactly the six snippet fields with the right JSON
// types. Unknown keys, missing keys and null values are rejected with the
// index of the offending record. Field contents are not otherwise validated.
func DecodeRecords(data []byte) ([]Snippet, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("expected a JSON array of snippets")
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, err
	}

	out := make([]Snippet, 0, len(raws))
	for i, raw := range raws {
		s, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeRecord(raw json.RawMessage) (Snippet, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var r record
	if err := dec.Decode(&r); err != nil {
		return Snippet{}, err
	}

	missing := func(field string) error {
		return fmt.Errorf("missing field %q", field)
	}
	switch {
	case r.ID == nil:
		return Snippet{}, missing("id")
	case r.Title == nil:
		return Snippet{}, missing("title")
	case r.Language == nil:
		return Snippet{}, missing("language")
	case r.Tags == nil:
		return Snippet{}, missing("tags")
	case r.Code == nil:
		return Snippet{}, missing("code")
	case r.IsFavourite == nil:
		return Snippet{}, missing("is_favourite")
	}

	return Snippet{
		ID:          *r.ID,
		Title:       *r.Title,
		Language:    *r.Language,
		Tags:        *r.Tags,
		Code:        *r.Code,
		IsFavourite: *r.IsFavourite,
	}, nil
}

// EncodeRecords renders snippets in the snippet file format: a JSON array
// indented with four spaces. HTML characters are not escaped so code stays
// readable in the file.
func EncodeRecords(snippets []Snippet) ([]byte, error) {
	if snippets == nil {
		snippets = []Snippet{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(snippets); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
