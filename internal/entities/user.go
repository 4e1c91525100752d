package entities

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered account. Usernames are stored lowercased; the
// "password" field holds a bcrypt hash, never a plaintext value.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password"`
}
