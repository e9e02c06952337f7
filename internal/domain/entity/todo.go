package entity

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a single record owned by a user. Descriptions are stored trimmed.
type Todo struct {
	ID          uuid.UUID // The unique identifier for the todo item.
	UserID      uuid.UUID // The owning account; todos are never visible across users.
	Description string    // Free-form text, trimmed, 1 to 250 characters.
	Completed   bool      // Whether the item has been marked done.
	CreatedAt   time.Time // Timestamp of when this item was created.
	UpdatedAt   time.Time // Timestamp of the last modification to this item.
}
