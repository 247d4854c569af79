package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/ovenlight/toastctl/internal/models"
)

// PaymentRow is one settled payment flattened for columnar export.
type PaymentRow struct {
	OrderGUID    string  `json:"order_guid" parquet:"name=order_guid, type=BYTE_ARRAY, convertedtype=UTF8"`
	CheckGUID    string  `json:"check_guid" parquet:"name=check_guid, type=BYTE_ARRAY, convertedtype=UTF8"`
	BusinessDate string  `json:"business_date" parquet:"name=business_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	Source       string  `json:"source" parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8"`
	DiningOption string  `json:"dining_option" parquet:"name=dining_option, type=BYTE_ARRAY, convertedtype=UTF8"`
	PaymentType  string  `json:"payment_type" parquet:"name=payment_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	Amount       float64 `json:"amount" parquet:"name=amount, type=DOUBLE"`
	TipAmount    float64 `json:"tip_amount" parquet:"name=tip_amount, type=DOUBLE"`
}

// FlattenPayments extracts one row per counted payment, applying the same
// void and exclusion rules as the aggregation fold.
func FlattenPayments(orders []*models.Order, diningOptions models.DiningOptionMap) []PaymentRow {
	var rows []PaymentRow
	for _, order := range orders {
		if order == nil || order.Voided {
			continue
		}
		option := ""
		if order.DiningOption != nil {
			option = diningOptions.Name(order.DiningOption.GUID)
		}
		date := firstDate(order)
		for _, check := range order.Checks {
			if check == nil || check.Voided {
				continue
			}
			for _, payment := range check.Payments {
				if payment == nil || payment.Excluded() {
					continue
				}
				rows = append(rows, PaymentRow{
					OrderGUID:    order.GUID,
					CheckGUID:    check.GUID,
					BusinessDate: date,
					Source:       order.Source,
					DiningOption: option,
					PaymentType:  payment.Type,
					Amount:       payment.Amount.InexactFloat64(),
					TipAmount:    payment.TipAmount.InexactFloat64(),
				})
			}
		}
	}
	return rows
}

func firstDate(order *models.Order) string {
	for _, stamp := range []string{order.OpenedDate, order.ClosedDate, order.CreatedDate} {
		if len(stamp) >= 10 {
			return stamp[:10]
		}
	}
	return ""
}

// SalesCSV renders the daily breakdown plus payment-method totals as CSV.
func SalesCSV(summary *models.SalesSummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"date", "orders", "gross_sales", "tips", "tax", "discounts"},
	}
	for _, date := range sortedDailyDates(summary.Daily) {
		day := summary.Daily[date]
		records = append(records, []string{
			date,
			strconv.Itoa(day.Orders),
			day.GrossSales.StringFixed(2),
			day.Tips.StringFixed(2),
			day.Tax.StringFixed(2),
			day.Discounts.StringFixed(2),
		})
	}

	records = append(records, []string{}, []string{"payment_method", "count", "amount", "tips"})
	names := make([]string, 0, len(summary.PaymentMethods))
	for name := range summary.PaymentMethods {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m := summary.PaymentMethods[name]
		records = append(records, []string{
			name,
			strconv.Itoa(m.Count),
			m.Amount.StringFixed(2),
			m.Tips.StringFixed(2),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("writing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// PaymentsCSV renders flattened payment rows as CSV.
func PaymentsCSV(rows []PaymentRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"order_guid", "check_guid", "business_date", "source", "dining_option", "payment_type", "amount", "tip_amount"},
	}
	for _, row := range rows {
		records = append(records, []string{
			row.OrderGUID, row.CheckGUID, row.BusinessDate, row.Source,
			row.DiningOption, row.PaymentType,
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
			strconv.FormatFloat(row.TipAmount, 'f', 2, 64),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("writing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// PaymentsParquet writes flattened payment rows to a local parquet file.
func PaymentsParquet(rows []PaymentRow, path string) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("creating parquet file: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, new(PaymentRow), 4)
	if err != nil {
		fw.Close()
		return fmt.Errorf("creating parquet writer: %w", err)
	}

	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			pw.WriteStop()
			fw.Close()
			return fmt.Errorf("writing parquet row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("finalizing parquet file: %w", err)
	}
	return fw.Close()
}
