package client

import (
	"encoding/json"
	"os"
)

const snapshotFile = "securepass-vault.json"

// SaveSnapshot writes an exported vault document next to the client so the
// user keeps a local backup of the session's data.
func SaveSnapshot(data []byte) error {
	return os.WriteFile(snapshotFile, data, 0o600)
}

// LoadSnapshot reads the local vault backup. A missing file returns ok
// false without an error.
func LoadSnapshot() ([]byte, bool, error) {
	data, err := os.ReadFile(snapshotFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !json.Valid(data) {
		return nil, false, nil
	}
	return data, true, nil
}
