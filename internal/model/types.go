package model

import "time"

// Video represents one scraped video's metadata row after cleaning.
type Video struct {
	Author    string
	Caption   string
	Likes     int64
	Comments  int64
	Shares    int64
	Saves     int64
	Plays     int64
	Duration  float64 // seconds
	CreatedAt time.Time
	URL       string

	// Derived at cleaning time from Caption.
	Hashtags     []string
	Emoji        []string
	CleanCaption string
}

// Dataset is the deduplicated, validated collection of videos for one
// analysis session. It is built once per scrape and never mutated after.
type Dataset struct {
	Videos []Video
}

func (d Dataset) Len() int { return len(d.Videos) }

// RankedVideo pairs a video with the metric value it was ranked by.
type RankedVideo struct {
	Video Video
	Value float64
}

// MetricRanking holds top-K and bottom-K videos for one metric plus the
// mean of that metric over the whole dataset.
type MetricRanking struct {
	Metric string
	Top    []RankedVideo
	Bottom []RankedVideo
	Mean   float64
}

// AuthorCount is one author's video count.
type AuthorCount struct {
	Author string
	Count  int
}

// AuthorRanking holds the most and least prolific authors by video count.
type AuthorRanking struct {
	Top    []AuthorCount
	Bottom []AuthorCount
	Mean   float64
}

// EngagementRow is one row of the engagement-rate table.
// Rate is the exact unclamped value; Display is clamped to [0,100] and
// rounded to two decimals for progress-bar style rendering.
type EngagementRow struct {
	Rank     int
	Author   string
	URL      string
	Likes    int64
	Comments int64
	Shares   int64
	Saves    int64
	Plays    int64
	Rate     float64
	Display  float64
}

// TimeBucket is one fixed-width interval with its aggregated value.
type TimeBucket struct {
	Start time.Time
	Value float64
}

// BucketSeries is an ordered, gap-free sequence of buckets for one
// (window, granularity) pair. Mean is the mean of per-bucket totals.
type BucketSeries struct {
	Window  string
	Step    time.Duration
	Buckets []TimeBucket
	Mean    float64
}

// HashtagPair is an unordered pair of distinct hashtags that co-occur in
// at least one video, with its occurrence count across the dataset.
// First < Second lexicographically.
type HashtagPair struct {
	First  string
	Second string
	Count  int
}

// GraphNode is a laid-out co-occurrence graph node.
type GraphNode struct {
	Tag string
	X   float64
	Y   float64
}

// GraphEdge is a weighted edge with its segment endpoints for rendering.
type GraphEdge struct {
	First  string
	Second string
	Weight int
	X0, Y0 float64
	X1, Y1 float64
}

// CooccurrenceGraph is the node/edge/position structure handed to the
// presentation layer.
type CooccurrenceGraph struct {
	Nodes []GraphNode
	Edges []GraphEdge
}

// WordCount is one row of a word-frequency table (captions, hashtags or
// emoji), ranked descending by count.
type WordCount struct {
	Value string
	Count int
	Rank  int
}

// Summary holds the headline figures shown above the charts.
type Summary struct {
	TotalVideos  int
	TotalAuthors int
	DaysCovered  int
	From         time.Time
	To           time.Time
}
