package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// KeyAmount is one entry of a pre-aggregated mapping.
type KeyAmount struct {
	Key    string
	Amount float64
}

// Amounts is a key→amount mapping that keeps the order in which keys appear
// in the source document. Ranking ties are resolved by that order.
type Amounts []KeyAmount

// Get returns the amount stored for key, or 0.
func (a Amounts) Get(key string) float64 {
	for _, e := range a {
		if e.Key == key {
			return e.Amount
		}
	}
	return 0
}

// UnmarshalJSON decodes a JSON object preserving key order. Null values and a
// null object decode to 0 and an empty mapping. Repeated keys keep the last
// value at the position of the first occurrence.
func (a *Amounts) UnmarshalJSON(data []byte) error {
	*a = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("amounts: expected object")
	}
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return errors.New("amounts: expected string key")
		}
		var v *json.Number
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("amounts: value for %q: %w", key, err)
		}
		var amount float64
		if v != nil {
			if amount, err = v.Float64(); err != nil {
				return fmt.Errorf("amounts: value for %q: %w", key, err)
			}
		}
		if i, seen := index[key]; seen {
			(*a)[i].Amount = amount
			continue
		}
		index[key] = len(*a)
		*a = append(*a, KeyAmount{Key: key, Amount: amount})
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON writes the mapping back as an object in stored order.
func (a Amounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Amount)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
