package user

import (
	"context"
	"errors"
	"time"

	"github.com/muhammadheryan/property-listing/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Agency    string             `bson:"agence"`
	Contact   string             `bson:"contact"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Mongo is the UserRepository backed by the users collection.
type Mongo struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &Mongo{coll: db.Collection(usersCollection)}
}

func (m *Mongo) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Name:      data.Name,
		Email:     data.Email,
		Password:  data.PasswordHash,
		Agency:    data.Agency,
		Contact:   data.Contact,
		CreatedAt: data.CreatedAt,
	}
	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, model.ErrDuplicateEmail
		}
		return nil, err
	}
	data.ID = doc.ID.Hex()
	return data, nil
}

func (m *Mongo) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := bson.M{}
	if filter.ID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.ID)
		if err != nil {
			return nil, model.ErrMalformedID
		}
		query["_id"] = oid
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}

	var doc userDocument
	if err := m.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.entity(), nil
}

func (m *Mongo) GetByIDs(ctx context.Context, ids []string) ([]model.UserEntity, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []model.UserEntity{}, nil
	}
	return m.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (m *Mongo) List(ctx context.Context) ([]model.UserEntity, error) {
	return m.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (m *Mongo) UpdateContact(ctx context.Context, id, contact string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrMalformedID
	}
	_, err = m.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"contact": contact}})
	return err
}

func (m *Mongo) find(ctx context.Context, query bson.M, opts ...*options.FindOptions) ([]model.UserEntity, error) {
	cur, err := m.coll.Find(ctx, query, opts...)
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]model.UserEntity, 0, len(docs))
	for i := range docs {
		users = append(users, *docs[i].entity())
	}
	return users, nil
}

func (d *userDocument) entity() *model.UserEntity {
	return &model.UserEntity{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Agency:       d.Agency,
		Contact:      d.Contact,
		CreatedAt:    d.CreatedAt,
	}
}
