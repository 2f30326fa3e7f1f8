package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/snappy"

	"github.com/tsalign/tsalign/internal/config"
	"github.com/tsalign/tsalign/internal/downsampling"
	"github.com/tsalign/tsalign/internal/logging"
	"github.com/tsalign/tsalign/internal/models"
	"github.com/tsalign/tsalign/internal/stats"
	"github.com/tsalign/tsalign/internal/timeseries"
	"github.com/tsalign/tsalign/internal/utils"
)

// AlignService handles series alignment business logic
type AlignService struct {
	logger *logging.Logger
	cfg    config.AlignConfig
}

// NewAlignService creates a new AlignService
func NewAlignService(logger *logging.Logger, cfg config.AlignConfig) *AlignService {
	return &AlignService{
		logger: logger,
		cfg:    cfg,
	}
}

// Align snaps a series onto a regular grid and optionally downsamples the
// result
func (s *AlignService) Align(ctx context.Context, req *models.AlignRequest) (*models.SeriesResponse, error) {
	start := time.Now()

	series, err := s.buildSeries(req.Series, req.Options)
	if err != nil {
		return nil, err
	}

	opts := timeseries.AlignOptions{}
	if req.Resolution != "" {
		d, perr := time.ParseDuration(req.Resolution)
		if perr != nil || d <= 0 {
			return nil, NewServiceError(CodeInvalidRequest, fmt.Sprintf("invalid resolution %q", req.Resolution))
		}
		opts.Resolution = d
	}
	layout := s.layout(req.Options)
	loc := s.location(req.Options)
	if req.Start != "" {
		t, perr := time.ParseInLocation(layout, req.Start, loc)
		if perr != nil {
			return nil, NewServiceError(CodeInvalidRequest, fmt.Sprintf("invalid start %q", req.Start))
		}
		opts.Start = t
	}
	if req.End != "" {
		t, perr := time.ParseInLocation(layout, req.End, loc)
		if perr != nil {
			return nil, NewServiceError(CodeInvalidRequest, fmt.Sprintf("invalid end %q", req.End))
		}
		opts.End = t
	}

	if aerr := series.AlignToResolution(opts); aerr != nil {
		return nil, engineError(aerr)
	}

	resp, err := s.seriesResponse(series, req.Series, layout)
	if err != nil {
		return nil, err
	}

	if req.Downsample != "" && req.Downsample != string(downsampling.ModeNone) {
		if derr := s.downsample(resp, series, req.Downsample, req.MaxOutput, layout); derr != nil {
			return nil, derr
		}
	}

	s.logger.WithContext(ctx).Info("Series aligned",
		"points", resp.NumPoints,
		"resolution", resp.Resolution,
		"latency_ms", time.Since(start).Milliseconds())

	return resp, nil
}

// Merge aligns the value fields of Other onto Base's grid and appends them
func (s *AlignService) Merge(ctx context.Context, req *models.MergeRequest) (*models.SeriesResponse, error) {
	start := time.Now()

	base, err := s.buildSeries(req.Base, req.Options)
	if err != nil {
		return nil, err
	}
	other, err := s.buildSeries(req.Other, req.Options)
	if err != nil {
		return nil, err
	}

	if merr := base.AddSeries(other, req.Keys...); merr != nil {
		return nil, engineError(merr)
	}

	resp, err := s.seriesResponse(base, req.Base, s.layout(req.Options))
	if err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).Info("Series merged",
		"points", resp.NumPoints,
		"keys", len(resp.Keys),
		"latency_ms", time.Since(start).Milliseconds())

	return resp, nil
}

// Resolution detects the dominant sample spacing of a series
func (s *AlignService) Resolution(ctx context.Context, req *models.ResolutionRequest) (*models.ResolutionResponse, error) {
	series, err := s.buildSeries(req.Series, req.Options)
	if err != nil {
		return nil, err
	}

	r, rerr := series.Resolution()
	if rerr != nil {
		return nil, engineError(rerr)
	}

	return &models.ResolutionResponse{
		Resolution: r.String(),
		Seconds:    r.Seconds(),
	}, nil
}

// DateRange generates a regular timestamp sequence
func (s *AlignService) DateRange(ctx context.Context, req *models.DateRangeRequest) (*models.DateRangeResponse, error) {
	layout := req.Layout
	if layout == "" {
		layout = s.cfg.Layout
	}
	loc := s.cfg.Location()
	if req.Timezone != "" {
		l, lerr := time.LoadLocation(req.Timezone)
		if lerr != nil {
			return nil, NewServiceError(CodeInvalidRequest, fmt.Sprintf("invalid timezone %q", req.Timezone))
		}
		loc = l
	}

	if req.From == "" {
		return nil, NewServiceError(CodeInvalidRequest, "from is required")
	}
	from, perr := time.ParseInLocation(layout, req.From, loc)
	if perr != nil {
		return nil, NewServiceError(CodeInvalidRequest, fmt.Sprintf("invalid from %q", req.From))
	}

	opts := timeseries.DateRangeOptions{
		NumPoints:    req.NumPoints,
		IncludeStart: !req.ExcludeStart,
		Location:     loc,
	}
	if req.To != "" {
		to, terr := time.ParseInLocation(layout, req.To, loc)
		if terr != nil {
			return nil, NewServiceError(CodeInvalidRequest, fmt.Sprintf("invalid to %q", req.To))
		}
		opts.To = to
	}
	if req.Resolution != "" {
		d, derr := time.ParseDuration(req.Resolution)
		if derr != nil || d <= 0 {
			return nil, NewServiceError(CodeInvalidRequest, fmt.Sprintf("invalid resolution %q", req.Resolution))
		}
		opts.Resolution = d
	} else if s.cfg.DefaultRangeInterval > 0 {
		opts.Resolution = s.cfg.DefaultRangeInterval
	}
	if req.NumPoints > s.cfg.MaxPoints {
		return nil, NewServiceErrorWithDetails(CodePayloadTooLarge, "requested range exceeds point limit",
			map[string]interface{}{"max_points": s.cfg.MaxPoints})
	}

	dates, rerr := timeseries.CreateDateRange(from, opts)
	if rerr != nil {
		return nil, engineError(rerr)
	}
	if len(dates) > s.cfg.MaxPoints {
		return nil, NewServiceErrorWithDetails(CodePayloadTooLarge, "requested range exceeds point limit",
			map[string]interface{}{"max_points": s.cfg.MaxPoints})
	}

	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(layout)
	}

	return &models.DateRangeResponse{Dates: out, NumPoints: len(out)}, nil
}

// Export renders a series for transfer, aligning it first when a resolution
// is given. The returned flag reports whether the body is snappy-compressed.
func (s *AlignService) Export(ctx context.Context, req *models.ExportRequest) ([]byte, bool, error) {
	series, err := s.buildSeries(req.Series, req.Options)
	if err != nil {
		return nil, false, err
	}

	if req.Resolution != "" {
		d, perr := time.ParseDuration(req.Resolution)
		if perr != nil || d <= 0 {
			return nil, false, NewServiceError(CodeInvalidRequest, fmt.Sprintf("invalid resolution %q", req.Resolution))
		}
		if aerr := series.AlignToResolution(timeseries.AlignOptions{Resolution: d}); aerr != nil {
			return nil, false, engineError(aerr)
		}
	}

	layout := s.layout(req.Options)
	var payload models.SeriesPayload
	switch req.Shape {
	case "", "rows":
		payload.Rows = series.ToRows(layout)
	case "columns":
		payload.Columns = series.ToColumns(layout)
	default:
		return nil, false, NewServiceError(CodeInvalidRequest, fmt.Sprintf("invalid shape %q", req.Shape))
	}

	body, merr := json.Marshal(payload)
	if merr != nil {
		return nil, false, NewServiceError(CodeInternal, "failed to encode series")
	}

	if req.Compress {
		compressed := snappy.Encode(nil, body)
		s.logger.WithContext(ctx).Debug("Series exported",
			"raw_bytes", len(body),
			"compressed_bytes", len(compressed))
		return compressed, true, nil
	}

	return body, false, nil
}

// buildSeries turns a wire payload into an engine series, applying config
// defaults for anything the request leaves unset
func (s *AlignService) buildSeries(payload models.SeriesPayload, opts models.SeriesOptions) (*timeseries.Series, error) {
	if payload.Rows != nil && payload.Columns != nil {
		return nil, NewServiceError(CodeInvalidRequest, "series must carry rows or columns, not both")
	}
	if payload.Rows == nil && payload.Columns == nil {
		return nil, NewServiceError(CodeInvalidRequest, "series must carry rows or columns")
	}

	if n := payloadPoints(payload); n > s.cfg.MaxPoints {
		return nil, NewServiceErrorWithDetails(CodePayloadTooLarge, "series exceeds point limit",
			map[string]interface{}{"points": n, "max_points": s.cfg.MaxPoints})
	}

	timeField := opts.TimeField
	if timeField == "" {
		timeField = s.cfg.TimeField
	}

	engineOpts := []timeseries.Option{
		timeseries.WithTimeField(timeField),
		timeseries.WithLayout(s.layout(opts)),
		timeseries.WithLocation(s.location(opts)),
	}

	var data interface{}
	if payload.Rows != nil {
		data = payload.Rows
	} else {
		data = map[string][]interface{}(payload.Columns)
	}

	series, err := timeseries.New(data, engineOpts...)
	if err != nil {
		return nil, engineError(err)
	}
	return series, nil
}

func (s *AlignService) layout(opts models.SeriesOptions) string {
	if opts.Layout != "" {
		return opts.Layout
	}
	return s.cfg.Layout
}

func (s *AlignService) location(opts models.SeriesOptions) *time.Location {
	if opts.Timezone != "" {
		if loc, err := time.LoadLocation(opts.Timezone); err == nil {
			return loc
		}
	}
	return s.cfg.Location()
}

// seriesResponse renders a processed series back into the shape the request
// arrived in
func (s *AlignService) seriesResponse(series *timeseries.Series, input models.SeriesPayload, layout string) (*models.SeriesResponse, error) {
	resp := &models.SeriesResponse{
		Keys:      series.Keys(),
		NumPoints: series.Len(),
	}

	if input.Columns != nil {
		resp.Series.Columns = series.ToColumns(layout)
	} else {
		resp.Series.Rows = series.ToRows(layout)
	}

	if r, err := series.Resolution(); err == nil {
		resp.Resolution = r.String()
	}
	if series.Len() > 0 {
		if t, err := series.StartDate(); err == nil {
			resp.Start = t.Format(layout)
		}
		if t, err := series.EndDate(); err == nil {
			resp.End = t.Format(layout)
		}
	}
	resp.Summary = summarize(series)

	return resp, nil
}

// summarize computes per-field statistics over a processed series. Fields
// without numeric samples are left out.
func summarize(series *timeseries.Series) map[string]models.FieldSummary {
	summary := make(map[string]models.FieldSummary)
	for _, key := range series.Keys() {
		values, err := series.Values(key)
		if err != nil {
			continue
		}
		floats := make([]float64, 0, len(values))
		for _, v := range values {
			if f, ok := utils.ToFloat64(v); ok {
				floats = append(floats, f)
			}
		}
		if len(floats) == 0 {
			continue
		}

		mean, _ := stats.Mean(floats)

		// Later samples weigh more, so the weighted mean leans toward the
		// recent end of the series.
		weights := make([]float64, len(floats))
		for i := range weights {
			weights[i] = float64(i + 1)
		}
		weighted, _ := stats.WeightedMean(floats, weights)

		fs := models.FieldSummary{
			Mean:         mean,
			WeightedMean: weighted,
		}
		if slope, _, err := stats.LinearRegression(floats); err == nil {
			fs.Trend = slope
		}
		scaled := stats.Normalize(floats)
		fs.LastScaled = scaled[len(scaled)-1]

		summary[key] = fs
	}
	if len(summary) == 0 {
		return nil
	}
	return summary
}

// downsample reduces the response series in place
func (s *AlignService) downsample(resp *models.SeriesResponse, series *timeseries.Series, mode string, maxOutput int, layout string) error {
	if !downsampling.IsValid(mode) {
		return NewServiceError(CodeInvalidRequest, fmt.Sprintf("invalid downsample mode %q", mode))
	}
	if maxOutput <= 0 {
		maxOutput = s.cfg.DownsampleThreshold
	}

	rows, err := downsampling.Apply(series.ToRows(layout), series.TimeField(), "", downsampling.Mode(mode), maxOutput)
	if err != nil {
		return NewServiceError(CodeInvalidRequest, err.Error())
	}

	resp.NumPoints = len(rows)
	if resp.Series.Columns != nil {
		reduced, rerr := timeseries.New(rows,
			timeseries.WithTimeField(series.TimeField()),
			timeseries.WithLayout(layout))
		if rerr != nil {
			return engineError(rerr)
		}
		resp.Series.Columns = reduced.ToColumns(layout)
	} else {
		resp.Series.Rows = rows
	}
	return nil
}

func payloadPoints(payload models.SeriesPayload) int {
	if payload.Rows != nil {
		return len(payload.Rows)
	}
	max := 0
	for _, col := range payload.Columns {
		if len(col) > max {
			max = len(col)
		}
	}
	return max
}
