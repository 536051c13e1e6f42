package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"financas/internal/core"
	applog "financas/internal/log"
	ports "financas/internal/sheets"

	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Grid size used when the transaction tab has to be created.
const (
	newTabRows = 100
	newTabCols = 20
)

// DefaultHandleTTL is how long an authenticated service handle is reused
// before the next call re-authenticates and re-resolves the tab.
const DefaultHandleTTL = 10 * time.Minute

// Config carries what the client needs to reach one tab of one spreadsheet.
// Exactly one of CredentialsJSON or CredentialsFile must be set.
type Config struct {
	SpreadsheetID   string
	TabName         string
	CredentialsJSON string
	CredentialsFile string
	HandleTTL       time.Duration
}

// Client talks to a single worksheet (tab) of a Google spreadsheet through
// the Sheets v4 API. The authenticated service handle is cached under a TTL
// so repeated calls do not re-authenticate; expiry or invalidation triggers a
// fresh connect on next use.
type Client struct {
	cfg Config

	mu              sync.Mutex
	svc             *gsheet.Service
	tabReady        bool
	handleExpiresAt time.Time
}

var _ ports.RowStore = (*Client)(nil)

// New creates a Sheets client. It does not connect; the first call does.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if strings.TrimSpace(cfg.TabName) == "" {
		return nil, errors.New("missing tab name")
	}
	if cfg.CredentialsJSON == "" && cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("%w: no service account credentials configured", ports.ErrAuth)
	}
	if cfg.HandleTTL <= 0 {
		cfg.HandleTTL = DefaultHandleTTL
	}
	return &Client{cfg: cfg}, nil
}

// handle returns the cached service, connecting and ensuring the tab exists
// when the cache is empty or expired.
func (c *Client) handle(ctx context.Context) (*gsheet.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.svc != nil && c.tabReady && time.Now().Before(c.handleExpiresAt) {
		return c.svc, nil
	}

	svc, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.ensureTab(ctx, svc); err != nil {
		return nil, err
	}

	c.svc = svc
	c.tabReady = true
	c.handleExpiresAt = time.Now().Add(c.cfg.HandleTTL)
	return c.svc, nil
}

// InvalidateHandle expires the cached service handle so the next call
// reconnects.
func (c *Client) InvalidateHandle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handleExpiresAt = time.Time{}
}

// connect authenticates with the configured service account credentials.
func (c *Client) connect(ctx context.Context) (*gsheet.Service, error) {
	var credentialsJSON []byte
	switch {
	case c.cfg.CredentialsJSON != "":
		credentialsJSON = []byte(c.cfg.CredentialsJSON)
	case c.cfg.CredentialsFile != "":
		b, err := os.ReadFile(c.cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("%w: read service account file: %v", ports.ErrAuth, err)
		}
		credentialsJSON = b
	default:
		return nil, fmt.Errorf("%w: no service account credentials configured", ports.ErrAuth)
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("%w: create sheets service: %v", ports.ErrAuth, err)
	}

	slog.InfoContext(ctx, "Google Sheets service created",
		applog.FieldComponent, applog.ComponentSheets,
		"spreadsheet_id", c.cfg.SpreadsheetID,
		"tab", c.cfg.TabName)
	return svc, nil
}

// ensureTab resolves the configured tab, creating it with a fixed grid and
// the header row when absent. Two callers racing on first run may both
// attempt the create; the duplicate attempt fails with an "already exists"
// error from the API, which is treated as success.
func (c *Client) ensureTab(ctx context.Context, svc *gsheet.Service) error {
	sh, err := svc.Spreadsheets.Get(c.cfg.SpreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return classify(err, "get spreadsheet")
	}
	for _, s := range sh.Sheets {
		if s.Properties != nil && s.Properties.Title == c.cfg.TabName {
			return nil
		}
	}

	slog.InfoContext(ctx, "Transaction tab not found, creating it",
		applog.FieldComponent, applog.ComponentSheets, "tab", c.cfg.TabName)
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{
					Title: c.cfg.TabName,
					GridProperties: &gsheet.GridProperties{
						RowCount:    newTabRows,
						ColumnCount: newTabCols,
					},
				},
			},
		}},
	}
	if _, err := svc.Spreadsheets.BatchUpdate(c.cfg.SpreadsheetID, req).Context(ctx).Do(); err != nil {
		if isAlreadyExists(err) {
			slog.WarnContext(ctx, "Tab created concurrently by another caller",
				applog.FieldComponent, applog.ComponentSheets, "tab", c.cfg.TabName)
			return nil
		}
		return classify(err, "create tab")
	}

	headerRow := make([]any, len(core.Columns))
	for i, name := range core.Columns {
		headerRow[i] = name
	}
	header := &gsheet.ValueRange{Values: [][]any{headerRow}}
	_, err = svc.Spreadsheets.Values.Append(c.cfg.SpreadsheetID, c.tabRange(), header).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return classify(err, "write header row")
	}
	slog.InfoContext(ctx, "Transaction tab created",
		applog.FieldComponent, applog.ComponentSheets, "tab", c.cfg.TabName)
	return nil
}

// AppendRow implements ports.RowAppender. The row is appended after the last
// data row; values are written raw so they stay text in the grid.
func (c *Client) AppendRow(ctx context.Context, row []string) error {
	svc, err := c.handle(ctx)
	if err != nil {
		return err
	}

	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}
	vr := &gsheet.ValueRange{Values: [][]any{values}}
	_, err = svc.Spreadsheets.Values.Append(c.cfg.SpreadsheetID, c.tabRange(), vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		c.InvalidateHandle()
		return classify(err, "append row")
	}
	return nil
}

// ReadRows implements ports.RowReader. Row 1 is the header; every row under
// it is returned in storage order. An empty grid yields no header and no
// rows.
func (c *Client) ReadRows(ctx context.Context) ([]string, [][]string, error) {
	svc, err := c.handle(ctx)
	if err != nil {
		return nil, nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(c.cfg.SpreadsheetID, c.tabRange()).Context(ctx).Do()
	if err != nil {
		c.InvalidateHandle()
		return nil, nil, classify(err, "read rows")
	}
	if len(resp.Values) == 0 {
		return nil, nil, nil
	}

	// Header cells are trimmed for schema matching; data cells come back
	// exactly as stored.
	header := toStrings(resp.Values[0])
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rows = append(rows, toStrings(row))
	}
	return header, rows, nil
}

func (c *Client) tabRange() string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(c.cfg.TabName, "'", "''"))
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = fmt.Sprint(v)
	}
	return out
}

// classify maps a Sheets API failure onto the store error taxonomy while
// keeping the underlying detail in the message.
func classify(err error, op string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 401, 403:
			return fmt.Errorf("%w: %s: %v", ports.ErrAuth, op, err)
		case 404:
			return fmt.Errorf("%w: %s: %v", ports.ErrNotFound, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ports.ErrStore, op, err)
}

func isAlreadyExists(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == 400 {
		return strings.Contains(strings.ToLower(gerr.Message), "already exists")
	}
	return false
}
