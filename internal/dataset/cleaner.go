package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"clipsight/internal/model"
	"clipsight/internal/textproc"
)

// RequiredColumns is the projection the cleaner keeps from a raw scrape
// row. Scrape results carry many more columns; everything else is dropped.
var RequiredColumns = []string{
	"authorMeta.name",
	"text",
	"diggCount",
	"commentCount",
	"shareCount",
	"playCount",
	"collectCount",
	"videoMeta.duration",
	"createTimeISO",
	"webVideoUrl",
}

var (
	// ErrMissingField reports a required column absent from a raw row.
	ErrMissingField = errors.New("missing required field")
	// ErrBadTimestamp reports an unparsable creation timestamp.
	ErrBadTimestamp = errors.New("malformed timestamp")
	// ErrBadValue reports a metric that is not a non-negative number.
	ErrBadValue = errors.New("invalid metric value")
)

// Cleaner projects raw scraped rows onto the fixed video schema,
// deduplicates them and attaches derived text columns. Validation errors
// abort the whole pass: there is no row-level partial success.
type Cleaner struct {
	norm *textproc.Normalizer
}

func NewCleaner(norm *textproc.Normalizer) *Cleaner {
	return &Cleaner{norm: norm}
}

// Clean builds a Dataset from raw rows. The input is not mutated.
// Cleaning the rows of an already-cleaned dataset again changes nothing.
func (c *Cleaner) Clean(rows []map[string]any) (model.Dataset, error) {
	var ds model.Dataset
	seen := make(map[string]struct{}, len(rows))
	for i, row := range rows {
		proj := make([]any, len(RequiredColumns))
		for j, col := range RequiredColumns {
			v, ok := row[col]
			if !ok {
				return model.Dataset{}, fmt.Errorf("row %d: %w: %s", i, ErrMissingField, col)
			}
			proj[j] = v
		}

		key := rowKey(proj)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		v, err := c.toVideo(proj)
		if err != nil {
			return model.Dataset{}, fmt.Errorf("row %d: %w", i, err)
		}
		ds.Videos = append(ds.Videos, v)
	}
	return ds, nil
}

func (c *Cleaner) toVideo(proj []any) (model.Video, error) {
	var v model.Video
	var err error

	v.Author = asString(proj[0])
	v.Caption = asString(proj[1])
	counts := [5]*int64{&v.Likes, &v.Comments, &v.Shares, &v.Plays, &v.Saves}
	for i, dst := range counts {
		n, err := asInt64(proj[2+i])
		if err != nil || n < 0 {
			return v, fmt.Errorf("%w: %s=%v", ErrBadValue, RequiredColumns[2+i], proj[2+i])
		}
		*dst = n
	}
	if v.Duration, err = asFloat(proj[7]); err != nil || v.Duration < 0 {
		return v, fmt.Errorf("%w: %s=%v", ErrBadValue, RequiredColumns[7], proj[7])
	}
	ts := asString(proj[8])
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return v, fmt.Errorf("%w: %q", ErrBadTimestamp, ts)
	}
	v.CreatedAt = t.UTC()
	v.URL = asString(proj[9])

	v.Hashtags = textproc.ExtractHashtags(v.Caption)
	v.Emoji = textproc.ExtractEmoji(v.Caption)
	v.CleanCaption = c.norm.Clean(v.Caption)
	return v, nil
}

// rowKey builds the full-row-equality dedupe key over the projected
// columns, before any parsing so exact source duplicates collapse.
func rowKey(proj []any) string {
	parts := make([]string, len(proj))
	for i, v := range proj {
		parts[i] = asString(v)
	}
	return strings.Join(parts, "\x1f")
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case json.Number:
		return s.String()
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}
