package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/boardly/boardly/internal/core/domain"
)

const collectionPosts = "posts"

// PostRepository persists posts in the posts collection.
type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type mongoPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   string             `bson:"owner_id"`
	Caption   string             `bson:"caption"`
	Picture   string             `bson:"picture"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (m *mongoPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:        m.ID.Hex(),
		OwnerID:   m.OwnerID,
		Caption:   m.Caption,
		Picture:   m.Picture,
		CreatedAt: m.CreatedAt,
	}
}

// Insert persists the post and returns it with the generated id.
func (r *PostRepository) Insert(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPost{
		OwnerID:   post.OwnerID,
		Caption:   post.Caption,
		Picture:   post.Picture,
		CreatedAt: post.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	created := *post
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindAll returns every post without any ordering guarantee.
func (r *PostRepository) FindAll(ctx context.Context) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	return decodePosts(ctx, cur)
}

// FindByIDs returns the posts matching ids. Invalid and dangling ids are
// skipped rather than failing the lookup.
func (r *PostRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*domain.Post{}, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	return decodePosts(ctx, cur)
}

func decodePosts(ctx context.Context, cur *mongo.Cursor) ([]*domain.Post, error) {
	posts := []*domain.Post{}
	for cur.Next(ctx) {
		var mp mongoPost
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, mp.toDomain())
	}
	return posts, cur.Err()
}
