package validators

import "go.mongodb.org/mongo-driver/bson"

var TagValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"tag", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"tag": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 1024,
			},

			"date": bson.M{
				"bsonType": "date",
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 32768,
			},

			// all three coordinates or no location document at all
			"location": bson.M{
				"bsonType": "object",
				"required": []string{"longitude", "latitude", "zoom_level"},
				"properties": bson.M{
					"longitude":  bson.M{"bsonType": "string"},
					"latitude":   bson.M{"bsonType": "string"},
					"zoom_level": bson.M{"bsonType": "string"},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
