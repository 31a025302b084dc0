package mongo

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bloodlink/donor-registry/internal/core/domain"
)

const postsCollection = "posts"

// mongoPost is the stored shape of a donation request. The object id is
// store-assigned, unlike profiles where the identity provider supplies it.
type mongoPost struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	RequesterID      string             `bson:"requester_id"`
	RequesterName    string             `bson:"requester_name"`
	BloodGroupNeeded domain.BloodGroup  `bson:"blood_group_needed"`
	Location         string             `bson:"location"`
	ContactNumber    string             `bson:"contact_number"`
	Description      string             `bson:"description"`
	Urgency          domain.Urgency     `bson:"urgency"`
	Status           domain.PostStatus  `bson:"status"`
	CreatedAt        time.Time          `bson:"created_at"`
}

func (m *mongoPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:               m.ID.Hex(),
		RequesterID:      m.RequesterID,
		RequesterName:    m.RequesterName,
		BloodGroupNeeded: m.BloodGroupNeeded,
		Location:         m.Location,
		ContactNumber:    m.ContactNumber,
		Description:      m.Description,
		Urgency:          m.Urgency,
		Status:           m.Status,
		CreatedAt:        m.CreatedAt,
	}
}

// PostRepository persists donation requests.
type PostRepository struct {
	collection *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{collection: db.Collection(postsCollection)}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (string, error) {
	doc := mongoPost{
		RequesterID:      p.RequesterID,
		RequesterName:    p.RequesterName,
		BloodGroupNeeded: p.BloodGroupNeeded,
		Location:         p.Location,
		ContactNumber:    p.ContactNumber,
		Description:      p.Description,
		Urgency:          p.Urgency,
		Status:           p.Status,
		CreatedAt:        p.CreatedAt,
	}
	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", domain.StoreError("posts.Create", err)
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", domain.StoreError("posts.Create", errors.New("unexpected inserted id type"))
	}
	return oid.Hex(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids are indistinguishable from absent posts to callers.
		return nil, domain.ErrPostNotFound
	}

	var doc mongoPost
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, domain.StoreError("posts.FindByID", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{}, opts, "posts.List")
}

func (r *PostRepository) ListOpen(ctx context.Context) ([]*domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"status": domain.PostOpen}, opts, "posts.ListOpen")
}

// ListByRequester queries on requester id alone and orders the (small)
// result locally, keeping the store free of a compound index for this
// path.
func (r *PostRepository) ListByRequester(ctx context.Context, requesterID string) ([]*domain.Post, error) {
	posts, err := r.find(ctx, bson.M{"requester_id": requesterID}, options.Find(), "posts.ListByRequester")
	if err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (r *PostRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions, op string) ([]*domain.Post, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, domain.StoreError(op, err)
	}
	defer cursor.Close(ctx)

	docs := make([]mongoPost, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.StoreError(op, err)
	}

	posts := make([]*domain.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toDomain())
	}
	return posts, nil
}

func (r *PostRepository) UpdateStatus(ctx context.Context, id string, status domain.PostStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return domain.StoreError("posts.UpdateStatus", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return domain.StoreError("posts.Delete", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
