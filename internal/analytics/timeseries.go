package analytics

import (
	"fmt"
	"time"

	"clipsight/internal/model"
)

// Window names the five trailing ranges the trend charts use.
type Window string

const (
	WindowAll Window = "all"
	Window90d Window = "90d"
	Window30d Window = "30d"
	Window7d  Window = "7d"
	Window1d  Window = "1d"
)

// Windows lists every window in display order.
var Windows = []Window{WindowAll, Window90d, Window30d, Window7d, Window1d}

func windowLength(w Window) (time.Duration, bool) {
	switch w {
	case Window90d:
		return 90 * 24 * time.Hour, true
	case Window30d:
		return 30 * 24 * time.Hour, true
	case Window7d:
		return 7 * 24 * time.Hour, true
	case Window1d:
		return 24 * time.Hour, true
	}
	return 0, false
}

// Step returns the bucket width for a window: hourly for the 1-day
// window, daily for everything else.
func Step(w Window) time.Duration {
	if w == Window1d {
		return time.Hour
	}
	return 24 * time.Hour
}

// VolumeSeries buckets record counts for one window.
func VolumeSeries(ds model.Dataset, w Window) (model.BucketSeries, error) {
	return series(ds, w, func(model.Video) float64 { return 1 })
}

// MetricSeries buckets the summed metric for one window.
func MetricSeries(ds model.Dataset, w Window, metric string) (model.BucketSeries, error) {
	sel, ok := SelectorFor(metric)
	if !ok {
		return model.BucketSeries{}, fmt.Errorf("unknown metric %q", metric)
	}
	return series(ds, w, sel)
}

// series filters the dataset to the window anchored at the maximum
// timestamp (lower bound inclusive), sums sel per bucket, and fills every
// bucket between the filtered min and max so the sequence has no gaps.
// An empty filtered subset yields an empty series with mean 0.
func series(ds model.Dataset, w Window, sel Selector) (model.BucketSeries, error) {
	out := model.BucketSeries{Window: string(w), Step: Step(w)}
	if _, ok := windowLength(w); !ok && w != WindowAll {
		return out, fmt.Errorf("unknown window %q", w)
	}
	if ds.Len() == 0 {
		return out, nil
	}

	anchor := ds.Videos[0].CreatedAt
	for _, v := range ds.Videos[1:] {
		if v.CreatedAt.After(anchor) {
			anchor = v.CreatedAt
		}
	}
	var cutoff time.Time
	if length, bounded := windowLength(w); bounded {
		cutoff = anchor.Add(-length)
	}

	step := Step(w)
	sums := make(map[time.Time]float64)
	var minB, maxB time.Time
	for _, v := range ds.Videos {
		if w != WindowAll && v.CreatedAt.Before(cutoff) {
			continue
		}
		b := bucketStart(v.CreatedAt, step)
		sums[b] += sel(v)
		if minB.IsZero() || b.Before(minB) {
			minB = b
		}
		if maxB.IsZero() || b.After(maxB) {
			maxB = b
		}
	}
	if len(sums) == 0 {
		return out, nil
	}

	var total float64
	for b := minB; !b.After(maxB); b = b.Add(step) {
		v := sums[b]
		out.Buckets = append(out.Buckets, model.TimeBucket{Start: b, Value: v})
		total += v
	}
	out.Mean = total / float64(len(out.Buckets))
	return out, nil
}

// bucketStart truncates t to its containing bucket in UTC.
func bucketStart(t time.Time, step time.Duration) time.Time {
	t = t.UTC()
	if step == time.Hour {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
