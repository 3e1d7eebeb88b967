package controllers

import (
	"context"
	"io"

	"server/src/schemas"
	"server/src/services"
	"server/src/utils"
)

func (c *Controller) GetAllTransactions(ctx context.Context, userID int) ([]schemas.TransactionResponse, error) {
	transactions, err := c.Transactions.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]schemas.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, *schemas.NewTransactionResponse(&transactions[i]))
	}
	return responses, nil
}

func (c *Controller) RecordTransaction(ctx context.Context, userID int, req *schemas.TransactionCreate) (*schemas.TransactionResponse, error) {
	record, err := c.Portfolio.RecordTransaction(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	return schemas.NewTransactionResponse(record), nil
}

// UpdateTransaction edits the historical record only. The holding the event
// reconciled against is not recomputed; use the investment update endpoint
// for position corrections.
func (c *Controller) UpdateTransaction(ctx context.Context, id, userID int, patch *schemas.TransactionUpdate) (*schemas.TransactionResponse, error) {
	transaction, err := c.Transactions.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, services.NewError(services.KindNotFound, "transaction not found")
	}

	if patch.Type != nil {
		if _, err := services.ParseEventKind(*patch.Type); err != nil {
			return nil, err
		}
	}

	patch.Apply(transaction)
	if err := c.Transactions.Update(ctx, transaction); err != nil {
		return nil, err
	}
	return schemas.NewTransactionResponse(transaction), nil
}

func (c *Controller) DeleteTransaction(ctx context.Context, id, userID int) error {
	deleted, err := c.Transactions.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return services.NewError(services.KindNotFound, "transaction not found")
	}
	return nil
}

func (c *Controller) ExportTransactionsCSV(ctx context.Context, userID int, w io.Writer) error {
	transactions, err := c.Transactions.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return utils.TransactionsToCSV(w, transactions)
}
