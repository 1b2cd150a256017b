package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mphinance/ulty-tracker/internal/api/request"
	"github.com/mphinance/ulty-tracker/internal/apperrors"
	"github.com/mphinance/ulty-tracker/internal/model"
	"github.com/mphinance/ulty-tracker/internal/validation"
)

// importHeaders are the required CSV columns, in order.
var importHeaders = []string{"date", "type", "quantity", "price"}

// RowError reports validation failures for one CSV row. Row numbers are
// 1-based and include the header row, matching what a spreadsheet shows.
type RowError struct {
	Row    int               `json:"row"`
	Fields map[string]string `json:"fields"`
}

// ImportResult summarizes a CSV import: how many rows were stored and the
// per-row validation failures. Valid rows are imported even when other rows
// fail; a row that fails validation is never stored, partially or otherwise.
type ImportResult struct {
	Imported int        `json:"imported"`
	Errors   []RowError `json:"errors"`
}

// ImportService ingests transactions from CSV. Every row passes through the
// same validation pipeline as single-transaction creation before anything
// reaches storage or the evaluator.
type ImportService struct {
	transactionService *TransactionService
}

// NewImportService creates a new ImportService with the provided service dependencies.
func NewImportService(transactionService *TransactionService) *ImportService {
	return &ImportService{
		transactionService: transactionService,
	}
}

// ImportCSV reads transactions from r and stores the valid ones.
// The expected format is a header row "date,type,quantity,price" followed by
// one transaction per row.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidCSVHeaders, err)
	}
	if err := checkHeaders(header); err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Errors: []RowError{}}
	var valid []model.Transaction

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, RowError{
				Row:    row,
				Fields: map[string]string{"row": err.Error()},
			})
			continue
		}

		transaction, fields := parseImportRow(record)
		if len(fields) > 0 {
			result.Errors = append(result.Errors, RowError{Row: row, Fields: fields})
			continue
		}

		valid = append(valid, transaction)
	}

	for _, transaction := range valid {
		t := transaction
		if err := s.transactionService.transactionRepo.InsertTransaction(ctx, &t); err != nil {
			return result, fmt.Errorf("failed to store imported transactions: %w", err)
		}
		result.Imported++
	}

	return result, nil
}

// parseImportRow converts one CSV record into a transaction, reusing the
// request validation so import and manual entry enforce identical rules.
func parseImportRow(record []string) (model.Transaction, map[string]string) {
	fields := make(map[string]string)

	if len(record) != len(importHeaders) {
		fields["row"] = fmt.Sprintf("expected %d columns, got %d", len(importHeaders), len(record))
		return model.Transaction{}, fields
	}

	quantity, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
	if err != nil {
		fields["quantity"] = "quantity must be an integer"
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		fields["price"] = "price must be a number"
	}
	if len(fields) > 0 {
		return model.Transaction{}, fields
	}

	req := request.CreateTransactionRequest{
		Date:     strings.TrimSpace(record[0]),
		Type:     strings.ToLower(strings.TrimSpace(record[1])),
		Quantity: quantity,
		Price:    price,
	}
	if err := validation.ValidateCreateTransaction(req); err != nil {
		if verr, ok := err.(*validation.Error); ok {
			return model.Transaction{}, verr.Fields
		}
		fields["row"] = err.Error()
		return model.Transaction{}, fields
	}

	date, _ := validation.ParseDate(req.Date)
	return model.Transaction{
		ID:        uuid.New().String(),
		Date:      date,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Price:     req.Price,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func checkHeaders(header []string) error {
	if len(header) != len(importHeaders) {
		return apperrors.ErrInvalidCSVHeaders
	}
	for i, want := range importHeaders {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return apperrors.ErrInvalidCSVHeaders
		}
	}
	return nil
}
