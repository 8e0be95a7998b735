package models

import "time"

// TableInfo describes a table the bootstrap step makes sure exists
type TableInfo struct {
	Name        string            `json:"name"`
	ParseName   string            `json:"parse_name"`
	Status      string            `json:"status"`
	BillingMode string            `json:"billing_mode"`
	Tags        map[string]string `json:"tags"`
	CreatedAt   time.Time         `json:"created_at"`
}
