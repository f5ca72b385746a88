package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"productreview/mobile-client/internal/app/mobile/entity"
)

// ReviewAnalyzer - детерминированный "AI" помощник по отзывам: чистая
// функция от вопроса и коллекции отзывов к форматированному ответу.
// Правила упорядочены, срабатывает первое совпадение по подстроке
// вопроса без учета регистра. Сети и состояния нет.
type ReviewAnalyzer struct {
	productName string
}

func NewReviewAnalyzer(productName string) *ReviewAnalyzer {
	return &ReviewAnalyzer{productName: productName}
}

// Greeting возвращает стартовое сообщение чата с подсказками
func (a *ReviewAnalyzer) Greeting() string {
	return fmt.Sprintf("Hi! I'm your AI assistant for %s. I can help you understand customer reviews better. Try asking:\n\n"+
		"• How many reviews are there?\n"+
		"• What do customers say about quality?\n"+
		"• When were most reviews posted?\n"+
		"• What are the main complaints?\n"+
		"• Any common praise patterns?", a.productName)
}

// Answer отвечает на вопрос по коллекции отзывов
func (a *ReviewAnalyzer) Answer(question string, reviews []entity.Review) string {
	q := strings.ToLower(question)

	switch {
	case containsAny(q, "how many", "count", "number"):
		return fmt.Sprintf("There are **%d customer reviews** for this product.\n\nRating breakdown:\n%s",
			len(reviews), ratingBreakdown(reviews))

	case containsAny(q, "sentiment", "overall", "general opinion"):
		return sentimentAnswer(reviews)

	case containsAny(q, "when", "date", "recent"):
		return recentAnswer(reviews)

	case containsAny(q, "love", "praise", "positive", "good"):
		positive := filterByRating(reviews, func(r int) bool { return r >= 4 })
		sample := "No positive reviews yet."
		if len(positive) > 0 {
			sample = positive[0].Comment
		}
		return fmt.Sprintf("❤️ What customers love:\n\n%s\n\n📝 Sample positive review:\n\"%s\"",
			extractThemes(positive), sample)

	case containsAny(q, "complaint", "problem", "issue", "negative"):
		negative := filterByRating(reviews, func(r int) bool { return r <= 2 })
		sample := "No negative reviews yet."
		if len(negative) > 0 {
			sample = negative[0].Comment
		}
		return fmt.Sprintf("⚠️ Common complaints:\n\n%s\n\n📝 Sample negative review:\n\"%s\"",
			extractThemes(negative), sample)

	case containsAny(q, "price", "cost", "expensive"):
		return priceAnswer(reviews)

	default:
		return a.generalSummary(reviews)
	}
}

func filterByRating(reviews []entity.Review, keep func(int) bool) []entity.Review {
	var out []entity.Review
	for _, r := range reviews {
		if keep(r.Rating) {
			out = append(out, r)
		}
	}
	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ratingBreakdown строит гистограмму по звездам 5..1: полоса из блоков
// длиной floor(percentage/10), процент округлен до целого
func ratingBreakdown(reviews []entity.Review) string {
	total := len(reviews)
	lines := make([]string, 0, 5)
	for star := 5; star >= 1; star-- {
		count := 0
		for _, r := range reviews {
			if r.Rating == star {
				count++
			}
		}
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(count) / float64(total) * 100))
		}
		bar := strings.Repeat("█", pct/10)
		lines = append(lines, fmt.Sprintf("%d⭐ %s %d (%d%%)", star, bar, count, pct))
	}
	return strings.Join(lines, "\n")
}

func sentimentAnswer(reviews []entity.Review) string {
	if len(reviews) == 0 {
		return "😐 No reviews yet, so there's no sentiment to analyze."
	}

	sum := 0
	positive := 0
	negative := 0
	for _, r := range reviews {
		sum += r.Rating
		if r.Rating >= 4 {
			positive++
		}
		if r.Rating <= 2 {
			negative++
		}
	}
	avg := float64(sum) / float64(len(reviews))

	var sentiment string
	switch {
	case avg >= 4.0:
		sentiment = "😊 Very Positive"
	case avg >= 3.5:
		sentiment = "🙂 Generally Positive"
	case avg >= 2.5:
		sentiment = "😐 Mixed"
	default:
		sentiment = "😞 Negative"
	}

	return fmt.Sprintf("%s (%.1f/5.0)\n\n✅ Positive reviews: %d\n❌ Negative reviews: %d",
		sentiment, avg, positive, negative)
}

func recentAnswer(reviews []entity.Review) string {
	if len(reviews) == 0 {
		return "📅 There are no reviews yet."
	}

	sorted := make([]entity.Review, len(reviews))
	copy(sorted, reviews)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}

	lines := make([]string, 0, len(sorted))
	for i, r := range sorted {
		lines = append(lines, fmt.Sprintf("%d. %s - %d⭐ (%s)\n\"%s...\"",
			i+1, r.ReviewerName, r.Rating, r.CreatedAt.Format("Jan 2, 2006"), truncate(r.Comment, 80)))
	}
	return "📅 Most recent reviews:\n\n" + strings.Join(lines, "\n\n")
}

func priceAnswer(reviews []entity.Review) string {
	var mentions []entity.Review
	for _, r := range reviews {
		c := strings.ToLower(r.Comment)
		if containsAny(c, "price", "expensive", "cheap") {
			mentions = append(mentions, r)
		}
	}

	if len(mentions) == 0 {
		return "💰 No customers specifically mentioned pricing in their reviews."
	}

	shown := mentions
	if len(shown) > 2 {
		shown = shown[:2]
	}
	lines := make([]string, 0, len(shown))
	for _, r := range shown {
		lines = append(lines, fmt.Sprintf("\"%s...\" - %s", truncate(r.Comment, 100), r.ReviewerName))
	}
	return fmt.Sprintf("💰 %d reviews mention pricing:\n\n%s", len(mentions), strings.Join(lines, "\n\n"))
}

func (a *ReviewAnalyzer) generalSummary(reviews []entity.Review) string {
	if len(reviews) == 0 {
		return fmt.Sprintf("📊 Summary for %s:\n\nNo reviews yet. Be the first to share your experience!", a.productName)
	}

	sum := 0
	positive := 0
	for _, r := range reviews {
		sum += r.Rating
		if r.Rating >= 4 {
			positive++
		}
	}
	avg := float64(sum) / float64(len(reviews))
	pct := int(math.Round(float64(positive) / float64(len(reviews)) * 100))

	return fmt.Sprintf("📊 Summary for %s:\n\n"+
		"Total Reviews: %d\n"+
		"Average Rating: %.1f⭐\n"+
		"Positive Reviews: %d (%d%%)\n\n"+
		"Try asking me specific questions about pricing, quality, or recent feedback!",
		a.productName, len(reviews), avg, positive, pct)
}

// extractThemes ищет фиксированные ключевые слова в склейке комментариев.
// Это подстрочное сравнение, не семантика: ложные срабатывания приемлемы.
func extractThemes(reviews []entity.Review) string {
	if len(reviews) == 0 {
		return "• No reviews in this category"
	}

	var sb strings.Builder
	for _, r := range reviews {
		sb.WriteString(strings.ToLower(r.Comment))
		sb.WriteString(" ")
	}
	all := sb.String()

	var themes []string
	if strings.Contains(all, "quality") {
		themes = append(themes, "• Quality")
	}
	if containsAny(all, "design", "look") {
		themes = append(themes, "• Design")
	}
	if containsAny(all, "performance", "fast") {
		themes = append(themes, "• Performance")
	}
	if strings.Contains(all, "battery") {
		themes = append(themes, "• Battery life")
	}
	if containsAny(all, "price", "expensive") {
		themes = append(themes, "• Price")
	}
	if containsAny(all, "delivery", "shipping") {
		themes = append(themes, "• Delivery")
	}

	if len(themes) == 0 {
		return "• General satisfaction"
	}
	return strings.Join(themes, "\n")
}

// truncate обрезает строку до max символов по рунам
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
