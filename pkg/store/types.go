package store

// Record is a root commitment record as emitted by merkle.(*Tree).Serialize,
// plus the bookkeeping the store layer adds. The store never parses Raw; it
// treats the record as the opaque unit the encoder produced.
type Record struct {
	// StorageID is the caller-supplied 32-bit identifier, the same value
	// baked into Raw. It is the primary key for storage.
	StorageID uint32 `json:"storageId"`

	// Raw is the serialized commitment record, byte-exact as emitted.
	Raw []byte `json:"raw"`

	// SubmittedAt is the Unix timestamp at which the record was saved.
	SubmittedAt int64 `json:"submittedAt"`
}
