package store

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// MarshalRecord serializes a record to its JSON storage form. The storage
// backends share this so a record written by one backend can be read back by
// another.
func MarshalRecord(record *Record) ([]byte, error) {
	if record == nil {
		return nil, errors.New("cannot marshal nil record")
	}
	return json.Marshal(record)
}

// UnmarshalRecord deserializes a record from its JSON storage form.
func UnmarshalRecord(data []byte) (*Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal commitment record")
	}
	return &record, nil
}
