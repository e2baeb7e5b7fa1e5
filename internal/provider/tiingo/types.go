package tiingo

import (
	"encoding/json"
	"fmt"
	"strconv"

	"tiingo-bronze/internal/model"
)

// EODRaw is one element of the daily prices response.
type EODRaw struct {
	Date        string        `json:"date"`
	Close       float64       `json:"close"`
	High        float64       `json:"high"`
	Low         float64       `json:"low"`
	Open        float64       `json:"open"`
	Volume      FlexibleInt64 `json:"volume"`
	AdjClose    float64       `json:"adjClose"`
	AdjHigh     float64       `json:"adjHigh"`
	AdjLow      float64       `json:"adjLow"`
	AdjOpen     float64       `json:"adjOpen"`
	AdjVolume   FlexibleInt64 `json:"adjVolume"`
	DivCash     float64       `json:"divCash"`
	SplitFactor float64       `json:"splitFactor"`
}

// ToRow converts the vendor record; the date is left as received.
func (r EODRaw) ToRow(ticker string) model.PriceRow {
	return model.PriceRow{
		Date:        r.Date,
		Close:       r.Close,
		High:        r.High,
		Low:         r.Low,
		Open:        r.Open,
		Volume:      r.Volume.Int64(),
		AdjClose:    r.AdjClose,
		AdjHigh:     r.AdjHigh,
		AdjLow:      r.AdjLow,
		AdjOpen:     r.AdjOpen,
		AdjVolume:   r.AdjVolume.Int64(),
		DivCash:     r.DivCash,
		SplitFactor: r.SplitFactor,
		Ticker:      ticker,
	}
}

// FlexibleInt64 parses int, float (incl. scientific notation) or a numeric string to int64
type FlexibleInt64 int64

// UnmarshalJSON parses int or float; null leaves the value at zero.
func (f *FlexibleInt64) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		val, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return err
		}
		*f = FlexibleInt64(int64(val))
		return nil
	}

	var intVal int64
	if err := json.Unmarshal(data, &intVal); err == nil {
		*f = FlexibleInt64(intVal)
		return nil
	}

	var floatVal float64
	if err := json.Unmarshal(data, &floatVal); err == nil {
		*f = FlexibleInt64(int64(floatVal))
		return nil
	}

	return fmt.Errorf("cannot parse as int64: %s", string(data))
}

// Int64 returns int64 value
func (f FlexibleInt64) Int64() int64 {
	return int64(f)
}
