package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"productreview/mobile-client/internal/app/mobile/entity"
)

func reviewsWithRatings(ratings ...int) []entity.Review {
	out := make([]entity.Review, len(ratings))
	for i, r := range ratings {
		out[i] = entity.Review{
			ID:           int64(i + 1),
			ReviewerName: "Reviewer",
			Rating:       r,
			Comment:      "ok",
			CreatedAt:    time.Date(2026, 8, 1+i, 0, 0, 0, 0, time.UTC),
		}
	}
	return out
}

func TestAnalyzer_CountQuestion_Histogram(t *testing.T) {
	// Arrange
	a := NewReviewAnalyzer("Wireless Headphones")
	reviews := reviewsWithRatings(5, 5, 4, 3, 1)

	// Act
	answer := a.Answer("How many reviews are there?", reviews)

	// Assert
	assert.Contains(t, answer, "There are **5 customer reviews**")
	assert.Contains(t, answer, "5⭐ ████ 2 (40%)")
	assert.Contains(t, answer, "4⭐ ██ 1 (20%)")
	assert.Contains(t, answer, "3⭐ ██ 1 (20%)")
	assert.Contains(t, answer, "2⭐  0 (0%)")
	assert.Contains(t, answer, "1⭐ ██ 1 (20%)")
}

func TestAnalyzer_CountQuestion_Empty(t *testing.T) {
	// Arrange
	a := NewReviewAnalyzer("X")

	// Act
	answer := a.Answer("what is the count", nil)

	// Assert: деление на ноль не происходит, все проценты нулевые
	assert.Contains(t, answer, "There are **0 customer reviews**")
	assert.Contains(t, answer, "5⭐  0 (0%)")
}

func TestAnalyzer_SentimentVeryPositive(t *testing.T) {
	// Arrange
	a := NewReviewAnalyzer("X")
	reviews := reviewsWithRatings(5, 5, 5, 4, 5)

	// Act
	answer := a.Answer("What is the overall sentiment?", reviews)

	// Assert
	assert.Contains(t, answer, "Very Positive")
	assert.Contains(t, answer, "(4.8/5.0)")
	assert.Contains(t, answer, "Positive reviews: 5")
	assert.Contains(t, answer, "Negative reviews: 0")
}

func TestAnalyzer_SentimentTiers(t *testing.T) {
	a := NewReviewAnalyzer("X")

	tests := []struct {
		name    string
		ratings []int
		want    string
	}{
		{"boundary 4.0 is very positive", []int{4, 4, 4}, "Very Positive"},
		{"3.5 is generally positive", []int{4, 3}, "Generally Positive"},
		{"3.0 is mixed", []int{3, 3}, "Mixed"},
		{"2.0 is negative", []int{2, 2}, "Negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer := a.Answer("sentiment", reviewsWithRatings(tt.ratings...))
			assert.Contains(t, answer, tt.want)
		})
	}
}

func TestAnalyzer_SentimentZeroGuard(t *testing.T) {
	// Arrange
	a := NewReviewAnalyzer("X")

	// Act
	answer := a.Answer("what is the sentiment", []entity.Review{})

	// Assert: определенная строка, не NaN и не паника
	assert.NotEmpty(t, answer)
	assert.NotContains(t, answer, "NaN")
}

func TestAnalyzer_RecentReviews(t *testing.T) {
	// Arrange
	a := NewReviewAnalyzer("X")
	reviews := []entity.Review{
		{ReviewerName: "Old", Rating: 3, Comment: "old one", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ReviewerName: "New", Rating: 5, Comment: "newest", CreatedAt: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)},
		{ReviewerName: "Mid", Rating: 4, Comment: "middle", CreatedAt: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)},
		{ReviewerName: "Older", Rating: 2, Comment: "oldest", CreatedAt: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)},
	}

	// Act
	answer := a.Answer("When were most reviews posted?", reviews)

	// Assert: три самых свежих, по убыванию даты
	assert.Contains(t, answer, "1. New")
	assert.Contains(t, answer, "2. Mid")
	assert.Contains(t, answer, "3. Old")
	assert.NotContains(t, answer, "Older")
}

func TestAnalyzer_RecentTruncatesLongComment(t *testing.T) {
	// Arrange
	a := NewReviewAnalyzer("X")
	long := strings.Repeat("x", 120)
	reviews := []entity.Review{{ReviewerName: "A", Rating: 5, Comment: long, CreatedAt: time.Now()}}

	// Act
	answer := a.Answer("recent reviews", reviews)

	// Assert
	assert.Contains(t, answer, strings.Repeat("x", 80)+"...")
	assert.NotContains(t, answer, strings.Repeat("x", 81))
}

func TestAnalyzer_PraiseThemes(t *testing.T) {
	// Arrange
	a := NewReviewAnalyzer("X")
	reviews := []entity.Review{
		{ReviewerName: "A", Rating: 5, Comment: "Great quality and sleek design"},
		{ReviewerName: "B", Rating: 4, Comment: "Battery lasts forever, fast performance"},
		{ReviewerName: "C", Rating: 1, Comment: "terrible, broke immediately"},
	}

	// Act
	answer := a.Answer("What do customers love?", reviews)

	// Assert: темы только из отзывов с оценкой >= 4
	assert.Contains(t, answer, "• Quality")
	assert.Contains(t, answer, "• Design")
	assert.Contains(t, answer, "• Performance")
	assert.Contains(t, answer, "• Battery life")
	assert.Contains(t, answer, "\"Great quality and sleek design\"")
	assert.NotContains(t, answer, "terrible")
}

func TestAnalyzer_ComplaintsNoNegativeReviews(t *testing.T) {
	// Arrange
	a := NewReviewAnalyzer("X")
	reviews := reviewsWithRatings(5, 4)

	// Act
	answer := a.Answer("Any complaints?", reviews)

	// Assert
	assert.Contains(t, answer, "• No reviews in this category")
	assert.Contains(t, answer, "No negative reviews yet.")
}

func TestAnalyzer_PriceMentions(t *testing.T) {
	// Arrange
	a := NewReviewAnalyzer("X")
	reviews := []entity.Review{
		{ReviewerName: "A", Rating: 4, Comment: "A bit expensive but worth it"},
		{ReviewerName: "B", Rating: 5, Comment: "Great price for the features"},
		{ReviewerName: "C", Rating: 3, Comment: "Cheap build but works"},
		{ReviewerName: "D", Rating: 5, Comment: "Love it"},
	}

	// Act
	answer := a.Answer("Is it expensive?", reviews)

	// Assert: счетчик полный, показаны максимум два
	assert.Contains(t, answer, "3 reviews mention pricing")
	assert.Contains(t, answer, "- A")
	assert.Contains(t, answer, "- B")
	assert.NotContains(t, answer, "- C")
}

func TestAnalyzer_PriceNoMentions(t *testing.T) {
	// Arrange
	a := NewReviewAnalyzer("X")
	reviews := []entity.Review{{ReviewerName: "A", Rating: 5, Comment: "Love it"}}

	// Act
	answer := a.Answer("how is the cost", reviews)

	// Assert
	assert.Equal(t, "💰 No customers specifically mentioned pricing in their reviews.", answer)
}

func TestAnalyzer_DefaultSummary(t *testing.T) {
	// Arrange
	a := NewReviewAnalyzer("Smart Watch")
	reviews := reviewsWithRatings(5, 4, 3)

	// Act
	answer := a.Answer("tell me everything", reviews)

	// Assert
	assert.Contains(t, answer, "Summary for Smart Watch")
	assert.Contains(t, answer, "Total Reviews: 3")
	assert.Contains(t, answer, "Average Rating: 4.0")
	assert.Contains(t, answer, "Positive Reviews: 2 (67%)")
}

func TestAnalyzer_DefaultSummaryZeroGuard(t *testing.T) {
	// Arrange
	a := NewReviewAnalyzer("Smart Watch")

	// Act
	answer := a.Answer("hello", nil)

	// Assert
	assert.Contains(t, answer, "No reviews yet")
	assert.NotContains(t, answer, "NaN")
}

func TestAnalyzer_RuleOrderFirstMatchWins(t *testing.T) {
	// Arrange: вопрос содержит ключи и правила количества, и правила цены
	a := NewReviewAnalyzer("X")
	reviews := reviewsWithRatings(5)

	// Act
	answer := a.Answer("how many people mention the price?", reviews)

	// Assert: побеждает более раннее правило количества
	assert.Contains(t, answer, "customer reviews")
	assert.NotContains(t, answer, "mention pricing")
}

func TestAnalyzer_Greeting(t *testing.T) {
	a := NewReviewAnalyzer("Wireless Headphones")
	assert.Contains(t, a.Greeting(), "Wireless Headphones")
	assert.Contains(t, a.Greeting(), "How many reviews are there?")
}
