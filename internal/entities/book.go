package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book is a single catalogue entry. The bson field names match the
// original collection layout so existing databases keep working.
type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"book_title"`
	Author      string             `bson:"book_author"`
	Description string             `bson:"book_description"`
	AddedDate   time.Time          `bson:"added_date"`
	AddedBy     primitive.ObjectID `bson:"added_by"`
}
