// Package export flattens customer records into a spreadsheet. It only
// shapes bytes; deciding where the file lands (and whether the path is
// allowed) is the caller's job.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"relish/internal/customer"
	"relish/internal/errors"
)

// SheetName is the single worksheet holding the exported rows.
const SheetName = "Customer Data"

// FileName is the conventional download name for an export.
const FileName = "customer_data.xlsx"

const dateLayout = "Jan 2, 2006"

var header = []interface{}{
	"Name", "Age", "Gender", "Email", "Phone", "Location",
	"Favorite Food", "Visit Frequency", "Dietary Preferences", "Submission Date",
}

// WriteXLSX writes the records as an xlsx workbook, one row per record in
// the order given. The caller typically passes the filtered/sorted table
// projection rather than the raw store contents.
func WriteXLSX(w io.Writer, records []customer.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return errors.NewInternal(fmt.Errorf("rename sheet: %w", err))
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return errors.NewInternal(fmt.Errorf("write header: %w", err))
	}

	for i, rec := range records {
		row := []interface{}{
			rec.Name,
			rec.Age,
			rec.Gender,
			rec.Email,
			rec.Phone,
			rec.Place,
			rec.FavoriteDish,
			rec.VisitFrequency,
			strings.Join(rec.DietaryPreferences, ", "),
			rec.SubmittedAt.Format(dateLayout),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return errors.NewInternal(fmt.Errorf("write row %d: %w", i+1, err))
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.NewInternal(fmt.Errorf("write workbook: %w", err))
	}
	return nil
}
