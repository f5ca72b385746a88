package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"productreview/pkg/metrics"
	"productreview/review-api-service/internal/app/reviewapi/entity"
)

type reviewRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewReviewRepository создает новый репозиторий отзывов.
// Отзывы живут в MongoDB с целочисленными _id, которые выдает счетчик
// в коллекции counters - клиенты работают с числовыми id, ObjectID
// наружу не отдается. Автоматически создает индекс по product_id.
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection("reviews")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "product_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("product_id_created_at_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Индекс может уже существовать, работу не прерываем
		fmt.Printf("Warning: failed to create index on product_id: %v\n", err)
	}

	return &reviewRepository{
		collection: collection,
		counters:   db.Collection("counters"),
	}
}

// nextID выдает следующий целочисленный id из счетчика
func (r *reviewRepository) nextID(ctx context.Context) (int64, error) {
	filter := bson.M{"_id": "reviews"}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("failed to allocate review id: %w", err)
	}
	return counter.Seq, nil
}

// Create создает новый отзыв, присваивая ему id из счетчика
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	timer := metrics.NewMongoTimer(serviceName, "insert", "reviews")
	defer timer.ObserveDuration()

	id, err := r.nextID(ctx)
	if err != nil {
		metrics.RecordMongoError(serviceName, "insert")
		return err
	}
	review.ID = id
	review.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		metrics.RecordMongoError(serviceName, "insert")
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByID получает отзыв по ID
func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*entity.Review, error) {
	timer := metrics.NewMongoTimer(serviceName, "find_one", "reviews")
	defer timer.ObserveDuration()

	var review entity.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}
		metrics.RecordMongoError(serviceName, "find_one")
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

// PageByProduct получает страницу отзывов товара, свежие первыми,
// опционально только с заданной оценкой
func (r *reviewRepository) PageByProduct(ctx context.Context, productID int64, page, size int, rating *int) ([]entity.Review, int64, error) {
	timer := metrics.NewMongoTimer(serviceName, "find", "reviews")
	defer timer.ObserveDuration()

	filter := bson.M{"product_id": productID}
	if rating != nil {
		filter["rating"] = *rating
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		metrics.RecordMongoError(serviceName, "find")
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, "find")
		return nil, 0, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		metrics.RecordMongoError(serviceName, "find")
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, total, nil
}

// ListByProduct получает все отзывы товара, свежие первыми
func (r *reviewRepository) ListByProduct(ctx context.Context, productID int64) ([]entity.Review, error) {
	timer := metrics.NewMongoTimer(serviceName, "find", "reviews")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, "find")
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		metrics.RecordMongoError(serviceName, "find")
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// RatingCounts возвращает распределение оценок товара: звезда -> число
// отзывов. Агрегация на стороне MongoDB.
func (r *reviewRepository) RatingCounts(ctx context.Context, productID int64) (map[int]int64, error) {
	timer := metrics.NewMongoTimer(serviceName, "aggregate", "reviews")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product_id": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$rating",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordMongoError(serviceName, "aggregate")
		return nil, fmt.Errorf("failed to aggregate rating counts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Rating int   `bson:"_id"`
		Count  int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		metrics.RecordMongoError(serviceName, "aggregate")
		return nil, fmt.Errorf("failed to decode rating counts: %w", err)
	}

	counts := make(map[int]int64, 5)
	for star := 1; star <= 5; star++ {
		counts[star] = 0
	}
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}
	return counts, nil
}

// IncrementHelpful атомарно увеличивает счетчик "полезно" и возвращает
// обновленный отзыв
func (r *reviewRepository) IncrementHelpful(ctx context.Context, id int64) (*entity.Review, error) {
	timer := metrics.NewMongoTimer(serviceName, "update", "reviews")
	defer timer.ObserveDuration()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var review entity.Review
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"helpful_count": 1}},
		opts,
	).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}
		metrics.RecordMongoError(serviceName, "update")
		return nil, fmt.Errorf("failed to increment helpful count: %w", err)
	}
	return &review, nil
}

// Count возвращает общее количество отзывов
func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
