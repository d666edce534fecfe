package validators

import "go.mongodb.org/mongo-driver/bson"

var BudgetValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "active", "order", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 255,
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"notes": bson.M{
				"bsonType":  "string",
				"maxLength": 32768,
			},

			"order": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"auto_budget": bson.M{
				"bsonType": "object",
				"required": []string{"type", "amount", "period"},
				"properties": bson.M{
					"type": bson.M{
						"bsonType": []string{"int", "long"},
						"enum":     []int{1, 2, 3},
					},
					"amount": bson.M{
						"bsonType": "string",
					},
					"period": bson.M{
						"bsonType": "string",
						"enum":     []string{"daily", "weekly", "monthly", "quarterly", "half_year", "yearly"},
					},
					"currency_id": bson.M{
						"bsonType": "string",
					},
					"currency_code": bson.M{
						"bsonType": "string",
					},
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
