package models

import "time"

// Stance is the classifier's judgment of how a comment aligns with the
// video's content.
type Stance string

const (
	StanceAgree    Stance = "agree"
	StanceDisagree Stance = "disagree"
	StanceNeutral  Stance = "neutral"
)

// RawComment is a single top-level comment as returned by the comment
// provider. It only lives for the duration of one analysis run and is
// never persisted directly.
type RawComment struct {
	Author      string
	Text        string
	PublishedAt time.Time
}

// AnalyzedComment is a comment that survived classification. The author
// name is stored in its privacy-masked form only.
type AnalyzedComment struct {
	MaskedAuthor string    `json:"masked_author"`
	OriginalText string    `json:"original_text"`
	Stance       Stance    `json:"stance"`
	Timestamp    time.Time `json:"timestamp"`
}

// MonthlyBucket counts the comments published in one calendar month.
// Buckets are kept in first-seen order, not calendar order.
type MonthlyBucket struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// SentimentStats holds the per-stance share of classified comments.
// Each percentage is rounded independently, so the three values are not
// guaranteed to sum to exactly 100.
type SentimentStats struct {
	AgreePct    int `json:"agree"`
	DisagreePct int `json:"disagree"`
	NeutralPct  int `json:"neutral"`
}

// AnalysisReport is the aggregate produced by one analysis run. The ID
// is assigned by the store on creation; reports are read-only afterwards.
type AnalysisReport struct {
	ID                  string            `json:"id" gorm:"primaryKey"`
	VideoURL            string            `json:"video_url"`
	TotalComments       int               `json:"total_comments"`
	SentimentStats      SentimentStats    `json:"sentiment_stats" gorm:"serializer:json"`
	MonthlyDistribution []MonthlyBucket   `json:"monthly_distribution" gorm:"serializer:json"`
	Comments            []AnalyzedComment `json:"comments" gorm:"serializer:json"`
	CreatedAt           time.Time         `json:"created_at"`
}
