package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignRequestUnmarshal(t *testing.T) {
	payload := `{
		"series": {
			"rows": [
				{"date_time": 0, "temp": 20.5},
				{"date_time": 60, "temp": 21.0}
			]
		},
		"resolution": "30s",
		"downsample": "avg",
		"max_output": 100
	}`

	var req AlignRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	assert.Len(t, req.Series.Rows, 2)
	assert.Nil(t, req.Series.Columns)
	assert.Equal(t, "30s", req.Resolution)
	assert.Equal(t, "avg", req.Downsample)
	assert.Equal(t, 100, req.MaxOutput)
}

func TestSeriesPayloadColumns(t *testing.T) {
	payload := `{
		"series": {
			"columns": {
				"date_time": [0, 60, 120],
				"value": [1, 2, 3]
			}
		}
	}`

	var req ResolutionRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	assert.Nil(t, req.Series.Rows)
	assert.Len(t, req.Series.Columns, 2)
	assert.Len(t, req.Series.Columns["value"], 3)
}

func TestErrorResponseMarshal(t *testing.T) {
	resp := ErrorResponse{
		Error: ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: "series must carry rows or columns",
		},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"code":"INVALID_REQUEST","message":"series must carry rows or columns"}}`, string(data))
}

func TestSeriesResponseOmitsEmpty(t *testing.T) {
	resp := SeriesResponse{
		Series: SeriesPayload{Rows: []map[string]interface{}{}},
		Keys:   []string{"temp"},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "resolution")
	assert.NotContains(t, string(data), "start")
}
