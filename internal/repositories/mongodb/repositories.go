package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/repositories"

	"github.com/gofrs/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewRepositories builds the document backed repositories on db.
func NewRepositories(db *mongo.Database) repositories.Repositories {
	return repositories.Repositories{
		Users:    &UserRepository{coll: db.Collection(usersCollection)},
		Projects: &ProjectRepository{coll: db.Collection(projectsCollection)},
		Tasks:    &TaskRepository{coll: db.Collection(tasksCollection)},
	}
}

// EnsureIndexes creates the unique email index and the indexes backing the
// list queries. It is safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		projectsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		tasksCollection: {
			{Keys: bson.D{{Key: "projectId", Value: 1}, {Key: "noDueDate", Value: 1}, {Key: "dueDate", Value: 1}}},
		},
	}

	for name, specs := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repositories.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repositories.ErrDuplicate
	default:
		return err
	}
}

func byID(id uuid.UUID) bson.M {
	return bson.M{"_id": id.String()}
}

func ownedByID(ownerID, id uuid.UUID) bson.M {
	return bson.M{"_id": id.String(), "userId": ownerID.String()}
}

func findPage(page repositories.Pagination, sort bson.D) *options.FindOptions {
	return options.Find().
		SetSort(sort).
		SetSkip(int64(page.Offset)).
		SetLimit(int64(page.Limit))
}

var returnAfter = options.FindOneAndUpdate().SetReturnDocument(options.After)

type UserRepository struct {
	coll *mongo.Collection
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.coll.InsertOne(ctx, newUserDocument(user))
	return translateError(err)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	return doc.model(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	return doc.model(), nil
}

func (r *UserRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}

type ProjectRepository struct {
	coll *mongo.Collection
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	_, err := r.coll.InsertOne(ctx, newProjectDocument(project))
	return translateError(err)
}

func (r *ProjectRepository) FindOwned(ctx context.Context, ownerID, id uuid.UUID) (*models.Project, error) {
	var doc projectDocument
	if err := r.coll.FindOne(ctx, ownedByID(ownerID, id)).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	project := doc.model()
	return &project, nil
}

func (r *ProjectRepository) List(ctx context.Context, filter repositories.ProjectFilter, page repositories.Pagination) ([]models.Project, int64, error) {
	query := projectFilter(filter)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.coll.Find(ctx, query, findPage(page, projectSort))
	if err != nil {
		return nil, 0, err
	}

	var docs []projectDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	projects := make([]models.Project, 0, len(docs))
	for _, doc := range docs {
		projects = append(projects, doc.model())
	}
	return projects, total, nil
}

func (r *ProjectRepository) UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	var doc projectDocument
	err := r.coll.FindOneAndUpdate(ctx, ownedByID(ownerID, id), projectUpdate(patch, time.Now().UTC()), returnAfter).Decode(&doc)
	if err != nil {
		return nil, translateError(err)
	}
	project := doc.model()
	return &project, nil
}

func (r *ProjectRepository) DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error {
	result, err := r.coll.DeleteOne(ctx, ownedByID(ownerID, id))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}

type TaskRepository struct {
	coll *mongo.Collection
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	_, err := r.coll.InsertOne(ctx, newTaskDocument(task))
	return translateError(err)
}

func (r *TaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var doc taskDocument
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	task := doc.model()
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter repositories.TaskFilter, page repositories.Pagination) ([]models.Task, int64, error) {
	query := taskFilter(filter)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.coll.Find(ctx, query, findPage(page, taskSort))
	if err != nil {
		return nil, 0, err
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	tasks := make([]models.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.model())
	}
	return tasks, total, nil
}

func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, patch models.TaskPatch) (*models.Task, error) {
	var doc taskDocument
	err := r.coll.FindOneAndUpdate(ctx, byID(id), taskUpdate(patch, time.Now().UTC()), returnAfter).Decode(&doc)
	if err != nil {
		return nil, translateError(err)
	}
	task := doc.model()
	return &task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var doc taskDocument
	if err := r.coll.FindOneAndDelete(ctx, byID(id)).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	task := doc.model()
	return &task, nil
}

func (r *TaskRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}
