package blobstore

import "strings"

// Keyspace maps blob names onto object keys below a root prefix.
// The zero value maps names onto themselves.
type Keyspace string

// NewKeyspace normalizes root to either "" or a prefix ending in "/".
func NewKeyspace(root string) Keyspace {
	root = strings.Trim(root, "/")
	if root == "" {
		return ""
	}
	return Keyspace(root + "/")
}

// Key returns the object key for name.
func (k Keyspace) Key(name string) string {
	return string(k) + strings.TrimPrefix(name, "/")
}

// Name strips the root prefix from an object key. It reports false for keys
// outside the keyspace.
func (k Keyspace) Name(key string) (string, bool) {
	if !strings.HasPrefix(key, string(k)) {
		return "", false
	}
	name := key[len(k):]
	return name, name != ""
}
