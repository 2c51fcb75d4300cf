package cart

import (
	"bytes"
	"encoding/gob"
)

// encodeGob and decodeGob back every Mapper's Snapshot/Restore pair,
// matching the per-component byte-blob save-state contract the rest of
// the core uses (internal/machine assembles these blobs under its own
// version tag).
func encodeGob(v interface{}) []byte {
	var buf bytes.Buffer
	// A gob encode of a plain struct of fixed-size fields never fails;
	// panicking here would indicate a programming error, not bad input.
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func decodeGob(blob []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(blob)).Decode(v)
}
