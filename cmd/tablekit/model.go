package main

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tablekit/tablekit/table"
)

const usersCollection = "users"

// User is the demo row type.
type User struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	RefID     string             `bson:"ref_id" json:"refId"`
	Code      string             `bson:"code" json:"code"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Age       int                `bson:"age" json:"age"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// GetCursorValue lets the mongo source keyset-paginate on _id.
func (u User) GetCursorValue() string {
	return u.ID.Hex()
}

func usersDefinition() (*table.Definition, error) {
	return table.NewDefinition(usersCollection, []table.Column{
		{Key: "name", Label: "Name", Sortable: true, Searchable: true},
		{Key: "email", Label: "Email", Searchable: true},
		{Key: "code", Label: "Code", Searchable: true},
		{Key: "age", Label: "Age", Sortable: true},
		{Key: "created_at", Label: "Joined", Sortable: true, Render: func(v any) string {
			if t, ok := v.(time.Time); ok {
				return t.Format("2006-01-02")
			}
			return ""
		}},
	})
}
