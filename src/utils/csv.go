package utils

import (
	"encoding/csv"
	"io"
	"strconv"

	"server/src/models"
)

// TransactionsToCSV writes a user's transaction history as CSV, one row per
// event, in the order provided by the caller.
func TransactionsToCSV(w io.Writer, transactions []models.Transaction) error {
	writer := csv.NewWriter(w)

	header := []string{"id", "symbol", "type", "quantity", "price", "fees", "executed_at"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, t := range transactions {
		row := []string{
			strconv.Itoa(t.ID),
			t.Symbol,
			t.Type,
			t.Quantity.String(),
			t.Price.String(),
			t.Fees.String(),
			t.ExecutedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
