package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tablekit/tablekit/config"
	"github.com/tablekit/tablekit/logger"
)

var seedCount int

var firstNames = []string{
	"ada", "bob", "cyd", "dee", "eli", "fay", "gus", "ivy", "joe", "kim",
	"lee", "max", "nia", "ola", "pam", "quinn", "rex", "sam", "ted", "uma",
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the demo users collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&seedCount, "count", 100, "number of users to insert")
	return cmd
}

func runSeed(ctx context.Context) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log := logger.StandardLogger()
	if err := log.Init(cfg.Logger); err != nil {
		return err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	coll := client.Database(cfg.Mongo.Database).Collection(usersCollection)

	docs := make([]any, 0, seedCount)
	for i := 0; i < seedCount; i++ {
		code, err := gonanoid.New(8)
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		name := firstNames[rand.Intn(len(firstNames))]
		docs = append(docs, User{
			ID:        primitive.NewObjectID(),
			RefID:     uuid.NewString(),
			Code:      code,
			Name:      fmt.Sprintf("%s-%03d", name, i),
			Email:     fmt.Sprintf("%s%03d@example.com", name, i),
			Age:       18 + rand.Intn(50),
			CreatedAt: time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour),
		})
	}

	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("insert users: %w", err)
	}

	log.WithField("inserted", len(res.InsertedIDs)).Info("seeded demo users")
	return nil
}
