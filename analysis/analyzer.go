package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"comment-pulse/internal/models"
	"comment-pulse/shared/ai"
	"comment-pulse/youtube"
)

var (
	// ErrNoComments indicates the fetch succeeded but the video has no
	// top-level comments to analyze.
	ErrNoComments = errors.New("no comments found for this video")

	// ErrNothingClassified indicates every fetched comment failed
	// classification, leaving nothing to aggregate.
	ErrNothingClassified = errors.New("no comment survived classification")
)

// CommentSource retrieves a bounded batch of top-level comments for a
// video id.
type CommentSource interface {
	FetchTopLevelComments(ctx context.Context, videoID string) ([]models.RawComment, error)
}

// StanceClassifier labels a single comment's stance toward the video.
type StanceClassifier interface {
	Classify(ctx context.Context, comment string) (models.Stance, error)
}

// ReportStore persists a finished report and returns its assigned id.
type ReportStore interface {
	Create(ctx context.Context, report *models.AnalysisReport) (string, error)
}

// Analyzer drives one analysis run: extract the video id, fetch the
// comment batch, classify each comment, aggregate, persist.
type Analyzer struct {
	source     CommentSource
	classifier StanceClassifier
	store      ReportStore
}

func NewAnalyzer(source CommentSource, classifier StanceClassifier, store ReportStore) *Analyzer {
	return &Analyzer{
		source:     source,
		classifier: classifier,
		store:      store,
	}
}

// Analyze runs the full pipeline for one video URL and returns the
// stored report's id.
//
// Classification is best-effort: a comment whose classification call
// fails is dropped and the loop continues. The one exception is a
// rejected API credential, which aborts the whole run because every
// later call would fail the same way. Monthly buckets count every
// fetched comment, including ones later dropped, so bucket counts can
// exceed the classified total.
func (a *Analyzer) Analyze(ctx context.Context, videoURL string) (string, error) {
	videoID, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		return "", err
	}

	comments, err := a.source.FetchTopLevelComments(ctx, videoID)
	if err != nil {
		return "", err
	}
	if len(comments) == 0 {
		return "", ErrNoComments
	}

	counts := make(map[models.Stance]int)
	monthIndex := make(map[string]int)
	var buckets []models.MonthlyBucket
	var analyzed []models.AnalyzedComment
	dropped := 0

	for _, comment := range comments {
		month := comment.PublishedAt.Format("Jan")
		if i, ok := monthIndex[month]; ok {
			buckets[i].Count++
		} else {
			monthIndex[month] = len(buckets)
			buckets = append(buckets, models.MonthlyBucket{Month: month, Count: 1})
		}

		stance, err := a.classifier.Classify(ctx, comment.Text)
		if err != nil {
			if errors.Is(err, ai.ErrInvalidAPIKey) {
				return "", err
			}
			dropped++
			log.Printf("Dropping comment by %s after classification failure: %v", MaskAuthor(comment.Author), err)
			continue
		}

		counts[stance]++
		analyzed = append(analyzed, models.AnalyzedComment{
			MaskedAuthor: MaskAuthor(comment.Author),
			OriginalText: comment.Text,
			Stance:       stance,
			Timestamp:    comment.PublishedAt,
		})
	}

	total := counts[models.StanceAgree] + counts[models.StanceDisagree] + counts[models.StanceNeutral]
	if total == 0 {
		return "", ErrNothingClassified
	}
	if dropped > 0 {
		log.Printf("Dropped %d of %d comments for video %s", dropped, len(comments), videoID)
	}

	report := &models.AnalysisReport{
		VideoURL:      videoURL,
		TotalComments: total,
		SentimentStats: models.SentimentStats{
			AgreePct:    roundPercent(counts[models.StanceAgree], total),
			DisagreePct: roundPercent(counts[models.StanceDisagree], total),
			NeutralPct:  roundPercent(counts[models.StanceNeutral], total),
		},
		MonthlyDistribution: buckets,
		Comments:            analyzed,
	}

	id, err := a.store.Create(ctx, report)
	if err != nil {
		return "", fmt.Errorf("failed to persist analysis: %w", err)
	}

	return id, nil
}

// Each percentage rounds independently; the three values may not sum
// to exactly 100.
func roundPercent(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}
