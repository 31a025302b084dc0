package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
)

const profilesCollection = "profiles"

// ProfileRepository persists donor profiles keyed by the identity
// provider's account id.
type ProfileRepository struct {
	collection *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{collection: db.Collection(profilesCollection)}
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, domain.StoreError("profiles.FindByID", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	return r.find(ctx, bson.M{}, "profiles.List")
}

func (r *ProfileRepository) ListByBloodGroup(ctx context.Context, bg domain.BloodGroup) ([]*domain.Profile, error) {
	return r.find(ctx, bson.M{"blood_group": bg}, "profiles.ListByBloodGroup")
}

func (r *ProfileRepository) find(ctx context.Context, filter bson.M, op string) ([]*domain.Profile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, domain.StoreError(op, err)
	}
	defer cursor.Close(ctx)

	profiles := make([]*domain.Profile, 0)
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, domain.StoreError(op, err)
	}
	return profiles, nil
}

// Save upserts the full document. Used at signup and by the login repair
// path, both of which own the complete record.
func (r *ProfileRepository) Save(ctx context.Context, id string, p *domain.Profile) error {
	p.ID = id
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, p, opts); err != nil {
		return domain.StoreError("profiles.Save", err)
	}
	return nil
}

// Update merges non-nil fields with $set so concurrent edits to disjoint
// fields never clobber each other.
func (r *ProfileRepository) Update(ctx context.Context, id string, u ports.ProfileUpdate) error {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.ContactNumber != nil {
		set["contact_number"] = *u.ContactNumber
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.BloodGroup != nil {
		set["blood_group"] = *u.BloodGroup
	}
	if u.LastDonationDate != nil {
		set["last_donation_date"] = *u.LastDonationDate
	}
	if u.NextAvailableDate != nil {
		set["next_available_date"] = *u.NextAvailableDate
	}
	if len(set) == 0 {
		// Nothing to write, but the caller still expects existence checks.
		_, err := r.FindByID(ctx, id)
		return err
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return domain.StoreError("profiles.Update", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
