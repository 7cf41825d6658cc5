package portfolio

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"
)

var csvHeader = []string{
	"Name", "Ticker", "Asset Type", "Shares",
	"Cost Basis ($)", "Current Value ($)",
	"Gain/Loss ($)", "Gain/Loss (%)",
	"Purchase Date", "Notes",
}

// RenderCSV renders holdings as CSV. The header row is always present,
// even for an empty portfolio. Monetary columns carry two decimals;
// asset types are title-cased for display only.
func RenderCSV(holdings []Holding) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, h := range holdings {
		gain := h.GainLoss()
		gainPct := 0.0
		if !h.CostBasis.IsZero() {
			gainPct = gain.Div(h.CostBasis.Decimal).InexactFloat64() * 100
		}
		record := []string{
			h.Name,
			h.Ticker,
			displayAssetType(h.AssetType),
			strconv.FormatFloat(h.Shares, 'f', -1, 64),
			h.CostBasis.StringFixed(2),
			h.CurrentValue.StringFixed(2),
			gain.StringFixed(2),
			strconv.FormatFloat(round2(gainPct), 'f', 2, 64),
			h.PurchaseDate,
			h.Notes,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVFilename returns the download filename for an export, embedding the
// current date.
func CSVFilename(now time.Time) string {
	return "portfolio_" + now.Format("20060102") + ".csv"
}

// ExportCSV renders the current holdings (ordered by asset type and name)
// as CSV, returning the bytes and a dated filename.
func (c *Core) ExportCSV() ([]byte, string, error) {
	holdings, err := c.ListHoldings()
	if err != nil {
		return nil, "", err
	}
	data, err := RenderCSV(holdings)
	if err != nil {
		return nil, "", WrapError(ErrCodeInternal, "render csv", err)
	}
	return data, CSVFilename(time.Now()), nil
}
