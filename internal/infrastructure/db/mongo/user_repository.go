package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/boardly/boardly/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository persists user accounts in the users collection.
// Unique indexes on username and email back the service-level checks
// against concurrent registrations.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Name         string             `bson:"name,omitempty"`
	Bio          string             `bson:"bio,omitempty"`
	Posts        []string           `bson:"posts"`
	Pinned       []string           `bson:"pinned"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (m *mongoUser) toDomain() *domain.User {
	posts := m.Posts
	if posts == nil {
		posts = []string{}
	}
	pinned := m.Pinned
	if pinned == nil {
		pinned = []string{}
	}
	return &domain.User{
		ID:           m.ID.Hex(),
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Bio:          m.Bio,
		Posts:        posts,
		Pinned:       pinned,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// Create inserts a new user document. Unique-index violations map to the
// conflict error for whichever field collided.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		Bio:          user.Bio,
		Posts:        []string{},
		Pinned:       []string{},
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapDuplicateKey(err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.Posts = []string{}
	created.Pinned = []string{}
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// FindByIDs returns the users matching ids. Invalid and unknown ids are
// skipped.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*domain.User{}, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	users := []*domain.User{}
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	return users, cur.Err()
}

// UpdateProfile applies the edit in one conditional write; the unique
// username index turns a concurrent rename collision into ErrUserExists.
func (r *UserRepository) UpdateProfile(ctx context.Context, username string, update domain.ProfileUpdate) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"name":       update.Name,
		"bio":        update.Bio,
		"updated_at": time.Now().UTC(),
	}
	if update.Username != "" {
		set["username"] = update.Username
	}

	var mu mongoUser
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"username": username},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, mapDuplicateKey(err)
	}
	return mu.toDomain(), nil
}

// AddPost appends postID to the owner's posts reference set.
func (r *UserRepository) AddPost(ctx context.Context, username, postID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{
			"$push": bson.M{"posts": postID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("add post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// TogglePin flips postID's membership in pinned within a single
// FindOneAndUpdate, so two concurrent toggles serialize at the document
// instead of racing a fetch-then-save pair. The returned slice is the
// set exactly as persisted by this flip.
func (r *UserRepository) TogglePin(ctx context.Context, username, postID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	flip := bson.M{"$cond": bson.A{
		bson.M{"$in": bson.A{postID, "$pinned"}},
		bson.M{"$setDifference": bson.A{"$pinned", bson.A{postID}}},
		bson.M{"$concatArrays": bson.A{"$pinned", bson.A{postID}}},
	}}
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"pinned":     flip,
			"updated_at": time.Now().UTC(),
		}},
	}

	var mu mongoUser
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"username": username},
		pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("toggle pin: %w", err)
	}

	if mu.Pinned == nil {
		return []string{}, nil
	}
	return mu.Pinned, nil
}

// EnsureIndexes creates the unique indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// mapDuplicateKey translates a unique-index violation into the matching
// conflict error, falling back to the username conflict when the index
// name is unrecognisable.
func mapDuplicateKey(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("write user: %w", err)
	}
	if strings.Contains(err.Error(), "email") {
		return domain.ErrEmailExists
	}
	return domain.ErrUserExists
}
