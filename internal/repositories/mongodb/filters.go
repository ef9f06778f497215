package mongodb

import (
	"regexp"
	"time"

	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// titleContains matches the search text literally, ignoring case.
func titleContains(search string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
}

func projectFilter(f repositories.ProjectFilter) bson.M {
	filter := bson.M{"userId": f.OwnerID.String()}
	if f.Search != "" {
		filter["title"] = titleContains(f.Search)
	}
	return filter
}

func taskFilter(f repositories.TaskFilter) bson.M {
	filter := bson.M{"projectId": f.ProjectID.String()}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Search != "" {
		filter["title"] = titleContains(f.Search)
	}
	return filter
}

var (
	projectSort = bson.D{{Key: "createdAt", Value: -1}}
	taskSort    = bson.D{
		{Key: "noDueDate", Value: 1},
		{Key: "dueDate", Value: 1},
		{Key: "createdAt", Value: 1},
	}
)

func projectUpdate(patch models.ProjectPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	return bson.M{"$set": set}
}

func taskUpdate(patch models.TaskPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.DueDate.Set {
		set["dueDate"] = patch.DueDate.Time
		set["noDueDate"] = patch.DueDate.Time == nil
	}
	return bson.M{"$set": set}
}
