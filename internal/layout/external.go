package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ExternalName identifies an external component either by registered name
// or by numeric id. It marshals to a JSON string or number respectively.
type ExternalName struct {
	name    string
	id      int64
	numeric bool
}

// ExternalByName names an external component.
func ExternalByName(name string) ExternalName {
	return ExternalName{name: name}
}

// ExternalByID refers to an external component by numeric id.
func ExternalByID(id int64) ExternalName {
	return ExternalName{id: id, numeric: true}
}

// Numeric returns the numeric id and true when the name is numeric.
func (n ExternalName) Numeric() (int64, bool) {
	return n.id, n.numeric
}

func (n ExternalName) String() string {
	if n.numeric {
		return strconv.FormatInt(n.id, 10)
	}
	return n.name
}

// MarshalJSON implements json.Marshaler.
func (n ExternalName) MarshalJSON() ([]byte, error) {
	if n.numeric {
		return []byte(strconv.FormatInt(n.id, 10)), nil
	}
	return json.Marshal(n.name)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *ExternalName) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = ExternalByName(s)
		return nil
	}
	id, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("external component name must be a string or an integer: %s", data)
	}
	*n = ExternalByID(id)
	return nil
}
