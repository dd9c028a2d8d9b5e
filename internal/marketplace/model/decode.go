package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeRecords decodes a JSON object, or an array of objects, into the raw
// record shape consumed by category c. A JSON null element decodes to a nil
// record so that callers see it as a missing record.
func DecodeRecords(c Category, data []byte) ([]RawRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var elems []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &elems); err != nil {
			return nil, fmt.Errorf("decode %s records: %w", c, err)
		}
	} else {
		elems = []json.RawMessage{data}
	}

	out := make([]RawRecord, 0, len(elems))
	for i, elem := range elems {
		if bytes.Equal(bytes.TrimSpace(elem), []byte("null")) {
			out = append(out, nil)
			continue
		}
		var rec RawRecord
		var err error
		if c == Courses {
			var cr CourseRecord
			err = json.Unmarshal(elem, &cr)
			rec = &cr
		} else {
			var pr ProductRecord
			err = json.Unmarshal(elem, &pr)
			rec = &pr
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s record %d: %w", c, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
