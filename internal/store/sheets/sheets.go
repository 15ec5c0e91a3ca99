// Package sheets talks to the Google Sheets spreadsheet that is the system
// of record. It is the only package that performs network I/O in the core.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/mkawano/eyewear-stock/internal/model"
	"github.com/mkawano/eyewear-stock/internal/schema"
	"github.com/mkawano/eyewear-stock/internal/store"
)

type Config struct {
	CredentialsFile string
	SpreadsheetID   string
	// SheetName is the tab holding the inventory. Read and write both
	// address the whole tab.
	SheetName string
}

// Client is a store.Backend over one spreadsheet tab. Safe for concurrent
// use by multiple sessions: the underlying service is read-only after New
// and each call is a self-contained request.
type Client struct {
	svc           *sheetsv4.Service
	spreadsheetID string
	sheetName     string
	logger        *zap.Logger
}

func New(ctx context.Context, cfg *Config, logger *zap.Logger) (*Client, error) {
	opts := []option.ClientOption{option.WithScopes(sheetsv4.SpreadsheetsScope)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	svc, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: init sheets service: %v", store.ErrBackendUnavailable, err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		logger:        logger,
	}, nil
}

// FetchAll reads the whole tab. Only the first model.MaxColumns columns are
// kept; anything past that is outside the declared schema and ignored.
func (c *Client) FetchAll(ctx context.Context) (*model.Table, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.sheetName).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		c.logger.Error("sheets fetch failed", zap.Error(err))
		return nil, fmt.Errorf("%w: fetch: %v", store.ErrBackendUnavailable, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", store.ErrBackendUnavailable, c.sheetName)
	}

	headers := clipRow(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		rows = append(rows, clipRow(raw))
	}

	t := model.NewTable(headers, rows)
	schema.Normalize(t)
	c.logger.Debug("fetched sheet",
		zap.Int("rows", t.Len()),
		zap.Int("columns", len(t.Headers)))
	return t, nil
}

// WriteAll overwrites the whole tab with t.
//
// Limitation: the Sheets values API has no transactional bulk overwrite.
// The clear and the update are two requests, so a failure in between can
// leave the tab partially written. Callers treat any non-nil error as
// "remote state unknown" and keep their pre-write cache.
func (c *Client) WriteAll(ctx context.Context, t *model.Table) error {
	values := make([][]interface{}, 0, t.Len()+1)
	values = append(values, toCells(t.Headers))
	for _, row := range t.Rows {
		values = append(values, toCells(row))
	}

	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, c.sheetName,
		&sheetsv4.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return c.writeErr("clear", err)
	}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, c.sheetName,
		&sheetsv4.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return c.writeErr("update", err)
	}
	c.logger.Info("wrote sheet", zap.Int("rows", t.Len()))
	return nil
}

func (c *Client) writeErr(op string, err error) error {
	c.logger.Error("sheets write failed", zap.String("op", op), zap.Error(err))
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code >= 400 && gerr.Code < 500 {
		return fmt.Errorf("%w: %s: %v", store.ErrBackendRejected, op, err)
	}
	return fmt.Errorf("%w: %s: %v", store.ErrBackendUnavailable, op, err)
}

func clipRow(raw []interface{}) []string {
	n := len(raw)
	if n > model.MaxColumns {
		n = model.MaxColumns
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = cellString(raw[i])
	}
	return out
}

// cellString renders a cell the way the sheet displays it. Numeric cells
// come back as float64 even for integer IDs and years.
func cellString(v interface{}) string {
	switch c := v.(type) {
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	case nil:
		return ""
	default:
		return fmt.Sprint(c)
	}
}

func toCells(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
