package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/olympicapp/country-comments/internal/core/domain"
)

const collectionComments = "comments"

type CommentRepository struct {
	col *mongo.Collection
	ids *Sequence
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{
		col: db.Collection(collectionComments),
		ids: NewSequence(db, collectionComments),
	}
}

type mongoComment struct {
	ID          int64     `bson:"_id"`
	CountryCode string    `bson:"country_code"`
	Nickname    string    `bson:"nickname"`
	Content     string    `bson:"content"`
	UserID      *int64    `bson:"user_id,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

// FindByCountryCode returns comments in id order, which is insertion order.
func (r *CommentRepository) FindByCountryCode(ctx context.Context, countryCode string) ([]*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx,
		bson.M{"country_code": countryCode},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoComment
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	comments := make([]*domain.Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, &domain.Comment{
			ID:          d.ID,
			CountryCode: d.CountryCode,
			Nickname:    d.Nickname,
			Content:     d.Content,
			UserID:      d.UserID,
			CreatedAt:   d.CreatedAt,
		})
	}
	return comments, nil
}

// Create inserts a new comment document and sets c.ID.
func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.col.InsertOne(ctx, mongoComment{
		ID:          id,
		CountryCode: c.CountryCode,
		Nickname:    c.Nickname,
		Content:     c.Content,
		UserID:      c.UserID,
		CreatedAt:   c.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	c.ID = id
	return nil
}

func (r *CommentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count comments: %w", err)
	}
	return n > 0, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the comments collection.
func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "country_code", Value: 1}, {Key: "_id", Value: 1}},
	})
	return err
}
