package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// NewGormRepositories builds the SQL backed repositories. db should be opened
// with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:    NewUserRepository(db),
		Projects: NewProjectRepository(db),
		Tasks:    NewTaskRepository(db),
	}
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into a LIKE pattern matching any string that
// contains s. Wildcards in s are escaped.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

const titleContains = `LOWER(title) LIKE ? ESCAPE '\'`
