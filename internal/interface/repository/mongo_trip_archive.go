package repository

import (
	"context"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTripArchive implements TripArchiveRepository on a trip_records
// collection, one document per trip key.
type MongoTripArchive struct {
	collection *mongo.Collection
}

// NewMongoTripArchive creates the archive repository and its indexes.
func NewMongoTripArchive(db *mongo.Database) repository.TripArchiveRepository {
	collection := db.Collection("trip_records")

	ctx := context.Background()
	keyIndex := mongo.IndexModel{
		Keys:    bson.M{"tripKey": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, keyIndex)

	routeIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "origin", Value: 1}, {Key: "destination", Value: 1}},
	}
	collection.Indexes().CreateOne(ctx, routeIndex)

	return &MongoTripArchive{
		collection: collection,
	}
}

// Upsert creates the record for a trip key or refreshes its price history.
// lowestPrice only ever moves down; timesSeen counts how many runs reported
// the trip.
func (r *MongoTripArchive) Upsert(ctx context.Context, record *entity.TripRecord) error {
	now := time.Now()

	update := bson.M{
		"$set": bson.M{
			"mode":       record.Mode,
			"lastPrice":  record.LastPrice,
			"lastSeenAt": now,
		},
		"$min": bson.M{
			"lowestPrice": record.LastPrice,
		},
		"$inc": bson.M{
			"timesSeen": 1,
		},
		"$setOnInsert": bson.M{
			"tripKey":       record.TripKey,
			"origin":        record.Origin,
			"destination":   record.Destination,
			"departureDate": record.DepartureDate,
			"returnDate":    record.ReturnDate,
			"firstSeenAt":   now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"tripKey": record.TripKey}, update, opts)
	return err
}

// FindByTripKey returns the archived record for a trip key.
func (r *MongoTripArchive) FindByTripKey(ctx context.Context, tripKey string) (*entity.TripRecord, error) {
	var record entity.TripRecord
	err := r.collection.FindOne(ctx, bson.M{"tripKey": tripKey}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
