package services

import "github.com/google/uuid"

const (
	invoiceIDPrefix = "inv_"
	clientIDPrefix  = "cli_"
	userIDPrefix    = "usr_"
)

func newRecordID(prefix string) string {
	return prefix + uuid.NewString()
}
