package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"firmdesk/internal/domain"
)

const sheetName = "Transactions"

// columns defines the transaction export header row.
var columns = []string{
	"Date",
	"Description",
	"Amount",
	"Currency",
	"Type",
	"Debit/Credit",
	"Source Document",
	"Reference",
	"Counterparty",
	"Invoice Number",
	"Due Date",
	"Payment Status",
	"Payment Method",
}

// WriteTransactionsXLSX writes a transaction ledger workbook to w.
func WriteTransactionsXLSX(w io.Writer, txns []domain.Transaction) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return err
		}
	}

	for rowIdx, txn := range txns {
		row := transactionToRow(&txn)
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, val); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

func transactionToRow(txn *domain.Transaction) []interface{} {
	return []interface{}{
		formatDate(txn.TransactionDate),
		txn.Description,
		txn.Amount,
		txn.Currency,
		txn.TransactionType,
		string(txn.DebitCredit),
		txn.SourceDocType,
		txn.ReferenceNumber,
		txn.Counterparty,
		txn.InvoiceNumber,
		formatDate(txn.DueDate),
		txn.PaymentStatus,
		txn.PaymentMethod,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
