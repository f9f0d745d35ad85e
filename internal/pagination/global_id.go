package pagination

import (
	"encoding/base64"
	"strings"
)

// ToGlobalID encodes a type name and local id into an opaque relay id.
func ToGlobalID(typeName, id string) string {
	return base64.StdEncoding.EncodeToString([]byte(typeName + ":" + id))
}

// FromGlobalID reverses ToGlobalID. Undecodable input yields empty values.
func FromGlobalID(globalID string) (typeName string, id string) {
	b, err := base64.StdEncoding.DecodeString(globalID)
	if err != nil {
		return "", ""
	}
	parts := strings.SplitN(string(b), ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
