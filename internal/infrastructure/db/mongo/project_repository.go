package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

const collectionProjects = "projects"

type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

type projectDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	domain.Project `bson:",inline"`
}

// ListByCreatedDesc returns every project ordered by created_at, newest first.
func (r *ProjectRepository) ListByCreatedDesc(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}

	var docs []projectDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	out := make([]domain.Project, 0, len(docs))
	for _, d := range docs {
		p := d.Project
		p.ID = d.ID.Hex()
		out = append(out, p)
	}
	return out, nil
}

// SeedByName inserts the projects whose name is not yet in the collection
// and returns how many were added. Existing documents are never modified, so
// running it twice is a no-op the second time.
func (r *ProjectRepository) SeedByName(ctx context.Context, projects []domain.Project) (int, error) {
	if len(projects) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.BulkWrite().SetOrdered(false)
	res, err := r.col.BulkWrite(ctx, seedModels(projects, time.Now().UTC()), opts)
	if err != nil {
		return 0, fmt.Errorf("seed projects: %w", err)
	}
	return int(res.UpsertedCount), nil
}

// seedModels builds one upsert per project keyed on name, stamping created_at
// on those without one. Earlier entries get later timestamps so the listing
// keeps input order.
func seedModels(projects []domain.Project, now time.Time) []mongo.WriteModel {
	models := make([]mongo.WriteModel, 0, len(projects))
	for i, p := range projects {
		if p.CreatedAt == nil {
			ts := now.Add(-time.Duration(i) * time.Second)
			p.CreatedAt = &ts
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "name", Value: p.Name}}).
			SetUpdate(bson.D{{Key: "$setOnInsert", Value: projectDoc{Project: p}}}).
			SetUpsert(true))
	}
	return models
}

// EnsureIndexes creates necessary indexes on the projects collection.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	return err
}
