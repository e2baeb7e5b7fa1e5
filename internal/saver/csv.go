package saver

import (
	"encoding/csv"
	"io"
	"strconv"

	"tiingo-bronze/internal/model"
)

// CSVSaver writes the batch as CSV with a model.Columns header.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) ContentType() string { return "text/csv" }

func (CSVSaver) Encode(out io.Writer, rows []model.PriceRow) error {
	w := csv.NewWriter(out)

	if err := w.Write(model.Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{
			r.Date,
			floatStr(r.Close),
			floatStr(r.High),
			floatStr(r.Low),
			floatStr(r.Open),
			strconv.FormatInt(r.Volume, 10),
			floatStr(r.AdjClose),
			floatStr(r.AdjHigh),
			floatStr(r.AdjLow),
			floatStr(r.AdjOpen),
			strconv.FormatInt(r.AdjVolume, 10),
			floatStr(r.DivCash),
			floatStr(r.SplitFactor),
			r.Ticker,
			r.Source,
			r.IngestTSUTC,
			r.IngestRunID,
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
