package schema

// StoreStatus reports persistence backend health and table sizes for
// the status command.
type StoreStatus struct {
	Backend   string           `json:"backend"`
	Connected bool             `json:"connected"`
	TableRows map[string]int64 `json:"table_rows"`
}
