package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"hoardify/models"
	"hoardify/services/booking"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

type Dataset string

const (
	DatasetBookings  Dataset = "bookings"
	DatasetCustomers Dataset = "customers"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Document is a rendered export ready to be served as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Table is the format-independent shape of an export.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func (s *DefaultReportService) Export(ctx context.Context, dataset Dataset, format Format) (*Document, error) {
	var table Table
	switch dataset {
	case DatasetBookings:
		list, err := s.Bookings.ListBookings(ctx, booking.Filter{})
		if err != nil {
			return nil, err
		}
		table = BookingTable(list)
	case DatasetCustomers:
		aggs, err := s.Bookings.ListCustomers(ctx, booking.Filter{})
		if err != nil {
			return nil, err
		}
		table = CustomerTable(aggs)
	default:
		return nil, models.NewValidationError(map[string]string{"dataset": "must be bookings or customers"})
	}

	name := fmt.Sprintf("%s-%s.%s", dataset, s.now().Format("20060102"), format)
	return Render(table, format, name)
}

// Render encodes table in the requested format.
func Render(t Table, format Format, filename string) (*Document, error) {
	var (
		body []byte
		ct   string
		err  error
	)
	switch format {
	case FormatCSV:
		body, err = renderCSV(t)
		ct = "text/csv"
	case FormatXLSX:
		body, err = renderXLSX(t)
		ct = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		body, err = renderPDF(t)
		ct = "application/pdf"
	default:
		return nil, models.NewValidationError(map[string]string{"format": "must be csv, xlsx or pdf"})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s export: %w", format, err)
	}
	return &Document{Filename: filename, ContentType: ct, Body: body}, nil
}

// BookingTable flattens enriched bookings into export rows.
func BookingTable(list []models.EnrichedBooking) Table {
	t := Table{
		Title:   "Bookings",
		Headers: []string{"Booking ID", "Customer", "Email", "Phone", "Hoarding", "Address", "Start", "End", "Amount", "Status", "Payment"},
	}
	for _, b := range list {
		t.Rows = append(t.Rows, []string{
			b.ID, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.HoardingTitle, b.HoardingAddress,
			formatDate(b.StartDate), formatDate(b.EndDate), formatAmount(b.Amount),
			string(b.Status), string(b.PaymentStatus),
		})
	}
	return t
}

// CustomerTable flattens customer aggregates into export rows.
func CustomerTable(aggs []models.CustomerAggregate) Table {
	t := Table{
		Title:   "Customers",
		Headers: []string{"Customer ID", "Name", "Email", "Phone", "Bookings", "Pending", "Approved", "Rejected", "Total Spend", "Last Booking"},
	}
	for _, a := range aggs {
		t.Rows = append(t.Rows, []string{
			a.CustomerID, a.Name, a.Email, a.Phone,
			strconv.Itoa(len(a.Bookings)),
			strconv.Itoa(a.StatusCounts[models.BookingPending]),
			strconv.Itoa(a.StatusCounts[models.BookingApproved]),
			strconv.Itoa(a.StatusCounts[models.BookingRejected]),
			formatAmount(a.TotalSpend), formatDate(a.LastBookingAt),
		})
	}
	return t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func renderCSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Title
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	write := func(row int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		vals := make([]interface{}, len(values))
		for i, v := range values {
			vals[i] = v
		}
		return f.SetSheetRow(sheet, cell, &vals)
	}
	if err := write(1, t.Headers); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return nil, err
	}
	for i, r := range t.Rows {
		if err := write(i+2, r); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(t Table) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(t.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(t.Headers))

	pdf.SetFont("Arial", "B", 7)
	for _, h := range t.Headers {
		pdf.CellFormat(colW, 6, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	for _, r := range t.Rows {
		for _, v := range r {
			pdf.CellFormat(colW, 6, tr(truncate(v, 28)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
