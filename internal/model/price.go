package model

// PriceRow is one end-of-day bar as landed in the bronze layer.
// Vendor columns keep the vendor's names; the trailing columns are ingestion tags.
type PriceRow struct {
	Date        string  `json:"date" parquet:"date"` // YYYY-MM-DD once normalized
	Close       float64 `json:"close" parquet:"close"`
	High        float64 `json:"high" parquet:"high"`
	Low         float64 `json:"low" parquet:"low"`
	Open        float64 `json:"open" parquet:"open"`
	Volume      int64   `json:"volume" parquet:"volume"`
	AdjClose    float64 `json:"adjClose" parquet:"adjClose"`
	AdjHigh     float64 `json:"adjHigh" parquet:"adjHigh"`
	AdjLow      float64 `json:"adjLow" parquet:"adjLow"`
	AdjOpen     float64 `json:"adjOpen" parquet:"adjOpen"`
	AdjVolume   int64   `json:"adjVolume" parquet:"adjVolume"`
	DivCash     float64 `json:"divCash" parquet:"divCash"`
	SplitFactor float64 `json:"splitFactor" parquet:"splitFactor"`

	Ticker      string `json:"ticker" parquet:"ticker"`
	Source      string `json:"source" parquet:"source"`
	IngestTSUTC string `json:"ingest_ts_utc" parquet:"ingest_ts_utc"`
	IngestRunID string `json:"ingest_run_id" parquet:"ingest_run_id"`
}

// Columns lists column names in storage order.
var Columns = []string{
	"date", "close", "high", "low", "open", "volume",
	"adjClose", "adjHigh", "adjLow", "adjOpen", "adjVolume", "divCash", "splitFactor",
	"ticker", "source", "ingest_ts_utc", "ingest_run_id",
}
