package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/community-forum-api/internal/mocks"
	"github.com/community-forum-api/internal/models"
	"github.com/community-forum-api/internal/validation"
)

func seedTopics(b *testing.B, repo *mocks.MockTopicRepository, n int) {
	b.Helper()
	categories := []string{"Cooking Tips", "Reviews", "Meal Planning", "Special Diets"}
	for i := 0; i < n; i++ {
		err := repo.Insert(context.Background(), &models.Topic{
			Title:       fmt.Sprintf("Topic %06d", i),
			Description: "Benchmark payload",
			Category:    categories[i%len(categories)],
			Type:        "Conversation",
			Author:      "Anonymous",
			Likes:       i % 50,
			Views:       i % 200,
			CreatedAt:   time.Now().Add(-time.Duration(i) * time.Minute),
			Status:      "active",
		})
		if err != nil {
			b.Fatalf("seeding topic: %v", err)
		}
	}
}

// BenchmarkTopicListing benchmarks a filtered, sorted page fetch
func BenchmarkTopicListing(b *testing.B) {
	repo := mocks.NewMockTopicRepository()
	seedTopics(b, repo, 1000)

	filter := models.TopicFilter{Category: "Cooking Tips"}
	opts := models.TopicListOptions{SortBy: "likes", Order: "desc", Page: 1, Limit: 20}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := repo.Find(context.Background(), filter, opts); err != nil {
			b.Fatalf("find failed: %v", err)
		}
	}
}

// BenchmarkTopicSearch benchmarks the substring search path
func BenchmarkTopicSearch(b *testing.B) {
	repo := mocks.NewMockTopicRepository()
	seedTopics(b, repo, 1000)

	filter := models.TopicFilter{Search: "000"}
	opts := models.TopicListOptions{SortBy: "createdAt", Order: "desc"}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := repo.Find(context.Background(), filter, opts); err != nil {
			b.Fatalf("find failed: %v", err)
		}
	}
}

// BenchmarkTopicValidation benchmarks the full create validation pipeline
func BenchmarkTopicValidation(b *testing.B) {
	req := &models.TopicCreateRequest{
		Title:       "Weeknight meal prep strategies",
		Description: "How do you batch cook for the week?",
		Category:    "Meal Planning",
		Type:        "Question",
		Tags:        []string{"meal-prep", "batch-cooking", "weeknight"},
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if errs := validation.ValidateTopicCreate(req); len(errs) > 0 {
			b.Fatalf("unexpected validation errors: %v", errs.Messages())
		}
	}
}
