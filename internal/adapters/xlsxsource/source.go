package xlsxsource

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"marketdash/internal/ports"
)

// Source implements ports.RowSource for a workbook saved from the spreadsheet tab of the export.
type Source struct {
	path   string
	sheet  string
	logger ports.Logger
}

// Config holds configuration for the workbook source.
type Config struct {
	Path   string
	Sheet  string // Sheet name; empty selects the first sheet
	Logger ports.Logger
}

// New creates a workbook source.
func New(cfg Config) (*Source, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for xlsx source: %w", ports.ErrConfigurationError)
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("xlsx source path is empty: %w", ports.ErrConfigurationError)
	}
	return &Source{path: cfg.Path, sheet: cfg.Sheet, logger: cfg.Logger}, nil
}

// Name identifies the source in logs.
func (s *Source) Name() string {
	if s.sheet == "" {
		return "xlsx:" + s.path
	}
	return "xlsx:" + s.path + "#" + s.sheet
}

// FetchRows reads the sheet, drops the header and blank rows and trims every cell.
// Rows are padded to the header width since the workbook omits trailing empty cells.
func (s *Source) FetchRows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrContextCanceled, err)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook '%s': %w", ports.ErrSourceUnavailable, s.path, err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: sheet %q in '%s': %w", ports.ErrSourceUnavailable, sheet, s.path, ports.ErrNotFound)
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %w", ports.ErrSourceUnavailable, sheet, err)
	}

	rows := make([][]string, 0, len(raw))
	width := 0
	headerSeen := false
	for _, r := range raw {
		if isBlank(r) {
			continue
		}
		if !headerSeen {
			headerSeen = true
			width = len(r)
			continue
		}
		fields := make([]string, max(width, len(r)))
		for i, cell := range r {
			fields[i] = strings.TrimSpace(cell)
		}
		rows = append(rows, fields)
	}

	if len(rows) == 0 {
		s.logger.Warn(ctx, "Workbook has no data rows", map[string]interface{}{"path": s.path, "sheet": sheet})
	}
	s.logger.Debug(ctx, "Workbook read", map[string]interface{}{"path": s.path, "sheet": sheet, "rows": len(rows)})
	return rows, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
