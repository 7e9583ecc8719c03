package repository

import (
	"testing"
)

func TestMemoryRepositories(t *testing.T) {
	runContract(t, func(t *testing.T) repositories {
		return repositories{
			users:     NewUserMemoryRepository(),
			courses:   NewCourseMemoryRepository(),
			bookmarks: NewBookmarkMemoryRepository(),
		}
	})
}
