package quotedoc

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hardwarehub/alucalc/internal/money"
	"github.com/hardwarehub/alucalc/internal/pricing"
	"github.com/hardwarehub/alucalc/internal/validate"
)

// ErrEmptyBatch is returned for workbooks without a header and data row.
var ErrEmptyBatch = errors.New("batch sheet has no data rows")

// BatchRow is one spreadsheet row ready for Build.
type BatchRow struct {
	Row     int
	Product string
	Values  url.Values
}

// BatchResult is a priced or rejected batch row.
type BatchResult struct {
	Row   int
	Quote Quote
	Err   error
}

// headerFields maps normalized header cells to form fields. "net" is routed to
// the net flag of the row's product.
var headerFields = map[string]string{
	"height":      validate.FieldHeight,
	"heightsoot":  validate.FieldHeightSoot,
	"width":       validate.FieldWidth,
	"widthsoot":   validate.FieldWidthSoot,
	"thickness":   validate.FieldThickness,
	"glass":       validate.FieldGlassType,
	"glasstype":   validate.FieldGlassType,
	"chaukhat":    validate.FieldChaukhat,
	"frame":       validate.FieldChaukhat,
	"accessories": validate.FieldAccessories,
	"decorfilm":   validate.FieldDecorFilm,
	"browncoated": validate.FieldBrownCoated,
	"fullssnet":   validate.FieldFullSSNet,
	"halfssnet":   validate.FieldHalfSSNet,
	"net":         "net",
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// ReadBatch reads the first sheet of an xlsx workbook. The first row is the
// header; it must contain a product column.
func ReadBatch(r io.Reader) ([]BatchRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open batch workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read batch sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyBatch
	}

	productCol := -1
	fields := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		h := normalizeHeader(cell)
		if h == "product" {
			productCol = i
			continue
		}
		fields[i] = headerFields[h]
	}
	if productCol < 0 {
		return nil, fmt.Errorf("batch sheet: missing product column")
	}

	out := make([]BatchRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		row := BatchRow{Row: i + 2, Values: url.Values{}}
		if productCol < len(cells) {
			row.Product = strings.TrimSpace(cells[productCol])
		}
		for col, cell := range cells {
			if col >= len(fields) || fields[col] == "" {
				continue
			}
			field := fields[col]
			if field == "net" {
				field = validate.FieldFullSSNet
				if validate.Product(strings.ToLower(row.Product)) == validate.ProductWindow3Track {
					field = validate.FieldHalfSSNet
				}
			}
			row.Values.Set(field, strings.TrimSpace(cell))
		}
		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, ErrEmptyBatch
	}
	return out, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// PriceBatch prices every row against book. Rejected rows keep their error.
func PriceBatch(book pricing.RateBook, rows []BatchRow) []BatchResult {
	results := make([]BatchResult, 0, len(rows))
	for _, row := range rows {
		res := BatchResult{Row: row.Row}
		p, err := validate.ParseProduct(row.Product)
		if err == nil {
			res.Quote, err = Build(book, p, row.Values)
		}
		res.Err = err
		results = append(results, res)
	}
	return results
}

var batchHeader = []any{
	"Row", "Product", "Approved Name", "Size", "Thickness", "Glass",
	"Area (sqft)", "Chaukhat (rft)", "Base Total", "Add-ons", "Grand Total", "Error",
}

// WriteBatch writes priced rows as an xlsx workbook with whole-rupee totals.
func WriteBatch(w io.Writer, results []BatchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Quotes"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name batch sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &batchHeader); err != nil {
		return fmt.Errorf("write batch header: %w", err)
	}

	for i, res := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{res.Row}
		if res.Err != nil {
			values = append(values, "", "", "", "", "", "", "", "", "", "", res.Err.Error())
		} else {
			q := res.Quote
			values = append(values,
				q.Title, q.ApprovedName, q.SizeDisplay, q.Thickness, q.Glass,
				q.Area, q.ChaukhatRft,
				money.Round(q.Total), money.Round(q.AddonsTotal), money.Round(q.Total+q.AddonsTotal),
				"",
			)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write batch row %d: %w", res.Row, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write batch workbook: %w", err)
	}
	return nil
}
