package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidID    = errors.New("invalid object id")
)

// translateError maps driver errors onto the repository sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return errors.Join(ErrNotFound, err)
	case mongo.IsDuplicateKeyError(err):
		return errors.Join(ErrDuplicateKey, err)
	default:
		return err
	}
}

func parseObjectID(id string) (bson.ObjectID, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, errors.Join(ErrInvalidID, err)
	}
	return objectID, nil
}
