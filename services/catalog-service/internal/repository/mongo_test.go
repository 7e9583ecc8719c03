package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/course-catalog-api/shared/database"
)

// TestMongoRepositories runs against a real server when MONGO_TEST_URI is set,
// e.g. MONGO_TEST_URI=mongodb://localhost:27017.
func TestMongoRepositories(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	logger := zerolog.Nop()
	ctx := context.Background()

	runContract(t, func(t *testing.T) repositories {
		dbName := fmt.Sprintf("catalog_test_%s", bson.NewObjectID().Hex())
		store, err := database.ConnectMongo(ctx, &logger, database.MongoConfig{
			URI:      uri,
			Database: dbName,
			Timeout:  5 * time.Second,
		})
		require.NoError(t, err)

		t.Cleanup(func() {
			_ = store.Database().Drop(context.Background())
			_ = store.Close(context.Background())
		})

		db := store.Database()
		return repositories{
			users:     NewUserMongoRepository(ctx, &logger, db),
			courses:   NewCourseMongoRepository(ctx, &logger, db),
			bookmarks: NewBookmarkMongoRepository(ctx, &logger, db),
		}
	})
}
