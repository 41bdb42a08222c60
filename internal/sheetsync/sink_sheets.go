package sheetsync

import (
	"context"
	"fmt"
	"os"
	"sort"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Переменные окружения с учетными данными сервисного аккаунта:
// сырой JSON имеет приоритет над путём к файлу.
const (
	envCredsJSON = "GS_CREDS_JSON"
	envCredsPath = "GS_CREDS_PATH"
)

// SheetsConfig раскладка внешней таблицы
type SheetsConfig struct {
	SpreadsheetID  string
	WorksheetTitle string

	// Ячейка заголовка, например "A1"
	TitleCell string

	// Колонка меток времени и колонки лаунжей по номерам, например {1: "B", 2: "G"}
	TimeColumn    string
	LoungeColumns map[int]string

	// Первая строка сетки и число резервируемых строк.
	// Колонки всегда заполняются на MaxRows: лишние строки затираются пустыми
	// значениями, чтобы отменённые бронирования исчезали из таблицы.
	FirstRow int
	MaxRows  int
}

// SheetsSink публикует сетку в лист Google Sheets. Реализует Sink.
type SheetsSink struct {
	svc    *sheets.Service
	cfg    SheetsConfig
	logger Logger
}

// NewSheetsSink создает приёмник поверх Google Sheets API.
// Учетные данные берутся из GS_CREDS_JSON или GS_CREDS_PATH.
func NewSheetsSink(ctx context.Context, cfg SheetsConfig, logger Logger) (*SheetsSink, error) {
	creds, err := loadCredentials()
	if err != nil {
		return nil, err
	}

	svc, err := sheets.NewService(ctx, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("%w: create sheets service: %v", ErrSinkUnavailable, err)
	}

	return &SheetsSink{svc: svc, cfg: cfg, logger: logger}, nil
}

func loadCredentials() ([]byte, error) {
	if raw := os.Getenv(envCredsJSON); raw != "" {
		return []byte(raw), nil
	}
	if path := os.Getenv(envCredsPath); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrNoCredentials, path, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: set %s or %s", ErrNoCredentials, envCredsJSON, envCredsPath)
}

// PublishGrid записывает сетку целиком одним батчем: заголовок, колонку
// времени и колонку каждого лаунжа, для которого задана буква колонки.
func (s *SheetsSink) PublishGrid(ctx context.Context, grid *Grid) error {
	if err := s.ensureWorksheet(ctx); err != nil {
		return err
	}

	rows := s.cfg.MaxRows
	if len(grid.TimeLabels) > rows {
		rows = len(grid.TimeLabels)
	}

	data := []*sheets.ValueRange{
		{
			Range:  fmt.Sprintf("%s!%s", s.cfg.WorksheetTitle, s.cfg.TitleCell),
			Values: [][]interface{}{{grid.Title}},
		},
		s.columnRange(s.cfg.TimeColumn, grid.TimeLabels, rows),
	}

	// Стабильный порядок диапазонов для читаемых логов и тестов
	numbers := make([]int, 0, len(s.cfg.LoungeColumns))
	for number := range s.cfg.LoungeColumns {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	for _, number := range numbers {
		column, ok := grid.Columns[number]
		if !ok {
			s.logger.Warn("sheetsync: no grid column for lounge %d, clearing", number)
		}
		data = append(data, s.columnRange(s.cfg.LoungeColumns[number], column, rows))
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	if _, err := s.svc.Spreadsheets.Values.BatchUpdate(s.cfg.SpreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: batch update: %v", ErrSinkUnavailable, err)
	}
	return nil
}

// columnRange колонка значений, дополненная пустыми строками до rows
func (s *SheetsSink) columnRange(column string, values []string, rows int) *sheets.ValueRange {
	cells := make([][]interface{}, rows)
	for i := 0; i < rows; i++ {
		if i < len(values) {
			cells[i] = []interface{}{values[i]}
		} else {
			cells[i] = []interface{}{""}
		}
	}
	return &sheets.ValueRange{
		Range: fmt.Sprintf("%s!%s%d:%s%d",
			s.cfg.WorksheetTitle, column, s.cfg.FirstRow, column, s.cfg.FirstRow+rows-1),
		Values: cells,
	}
}

// ensureWorksheet создает лист с нужным именем, если его еще нет
func (s *SheetsSink) ensureWorksheet(ctx context.Context) error {
	doc, err := s.svc.Spreadsheets.Get(s.cfg.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: get spreadsheet: %v", ErrSinkUnavailable, err)
	}

	for _, sheet := range doc.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == s.cfg.WorksheetTitle {
			return nil
		}
	}

	s.logger.Info("sheetsync: worksheet %q not found, creating", s.cfg.WorksheetTitle)
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: s.cfg.WorksheetTitle},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.cfg.SpreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: add worksheet: %v", ErrSinkUnavailable, err)
	}
	return nil
}
