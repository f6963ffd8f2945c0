package listing

import (
	"context"
	"errors"
	"time"

	"github.com/muhammadheryan/property-listing/constant"
	"github.com/muhammadheryan/property-listing/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const propertiesCollection = "properties"

type listingDocument struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Title       string              `bson:"title"`
	Price       float64             `bson:"price"`
	Type        string              `bson:"type"`
	Location    string              `bson:"localisation"`
	Address     string              `bson:"adresse_complet"`
	Description string              `bson:"description"`
	Surface     float64             `bson:"surface"`
	Bedrooms    int                 `bson:"chambres"`
	Bathrooms   int                 `bson:"salle_de_bain"`
	Equipment   []string            `bson:"equipement"`
	Images      []string            `bson:"images"`
	Status      string              `bson:"status"`
	OwnerID     *primitive.ObjectID `bson:"owner_id,omitempty"`
	CreatedAt   time.Time           `bson:"created_at"`
}

// Mongo is the ListingRepository backed by the properties collection.
type Mongo struct {
	coll *mongo.Collection
}

func NewMongoListingRepository(db *mongo.Database) ListingRepository {
	return &Mongo{coll: db.Collection(propertiesCollection)}
}

func (m *Mongo) Create(ctx context.Context, data *model.ListingEntity) (*model.ListingEntity, error) {
	doc, err := newListingDocument(data)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	data.ID = doc.ID.Hex()
	return data, nil
}

func (m *Mongo) GetByID(ctx context.Context, id string) (*model.ListingEntity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrMalformedID
	}

	var doc listingDocument
	if err := m.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.entity(), nil
}

func (m *Mongo) List(ctx context.Context, filter *model.ListingFilter) ([]model.ListingEntity, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.OwnerID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.OwnerID)
		if err != nil {
			return []model.ListingEntity{}, nil
		}
		query["owner_id"] = oid
	}

	cur, err := m.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []listingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]model.ListingEntity, 0, len(docs))
	for i := range docs {
		items = append(items, *docs[i].entity())
	}
	return items, nil
}

// Update replaces the mutable fields. owner_id and created_at are never written.
func (m *Mongo) Update(ctx context.Context, data *model.ListingEntity) error {
	oid, err := primitive.ObjectIDFromHex(data.ID)
	if err != nil {
		return model.ErrMalformedID
	}
	set := bson.M{
		"title":           data.Title,
		"price":           data.Price,
		"type":            data.Type,
		"localisation":    data.Location,
		"adresse_complet": data.Address,
		"description":     data.Description,
		"surface":         data.Surface,
		"chambres":        data.Bedrooms,
		"salle_de_bain":   data.Bathrooms,
		"equipement":      []string(data.Equipment),
		"images":          []string(data.Images),
		"status":          string(data.Status),
	}
	_, err = m.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	return err
}

func (m *Mongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrMalformedID
	}
	_, err = m.coll.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func newListingDocument(l *model.ListingEntity) (*listingDocument, error) {
	doc := &listingDocument{
		Title:       l.Title,
		Price:       l.Price,
		Type:        l.Type,
		Location:    l.Location,
		Address:     l.Address,
		Description: l.Description,
		Surface:     l.Surface,
		Bedrooms:    l.Bedrooms,
		Bathrooms:   l.Bathrooms,
		Equipment:   nonNil(l.Equipment),
		Images:      nonNil(l.Images),
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
	}
	if l.OwnerID != nil {
		oid, err := primitive.ObjectIDFromHex(*l.OwnerID)
		if err != nil {
			return nil, model.ErrMalformedID
		}
		doc.OwnerID = &oid
	}
	return doc, nil
}

func (d *listingDocument) entity() *model.ListingEntity {
	l := &model.ListingEntity{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Price:       d.Price,
		Type:        d.Type,
		Location:    d.Location,
		Address:     d.Address,
		Description: d.Description,
		Surface:     d.Surface,
		Bedrooms:    d.Bedrooms,
		Bathrooms:   d.Bathrooms,
		Equipment:   nonNil(d.Equipment),
		Images:      nonNil(d.Images),
		Status:      constant.ListingStatus(d.Status),
		CreatedAt:   d.CreatedAt,
	}
	if d.OwnerID != nil {
		owner := d.OwnerID.Hex()
		l.OwnerID = &owner
	}
	return l
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
