package model

import (
	"encoding/json"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is a bookable listing. The typed fields are filled when the stored
// value has the expected shape; anything else, including an off-shape value
// for a typed key, is carried verbatim in Extra and rendered as stored.
type Activity struct {
	ID       primitive.ObjectID
	Title    string
	Location string
	Spaces   int
	Extra    map[string]any
}

func (a Activity) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Extra)+4)
	if !a.ID.IsZero() {
		out["_id"] = a.ID.Hex()
	}
	out["title"] = a.Title
	out["location"] = a.Location
	out["spaces"] = a.Spaces
	for k, v := range a.Extra {
		out[k] = v
	}
	return json.Marshal(out)
}

func (a *Activity) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	if hex, ok := doc["_id"].(string); ok {
		if id, err := primitive.ObjectIDFromHex(hex); err == nil {
			doc["_id"] = id
		}
	}
	a.project(doc)
	return nil
}

func (a Activity) MarshalBSON() ([]byte, error) {
	out := bson.M{
		"title":    a.Title,
		"location": a.Location,
		"spaces":   a.Spaces,
	}
	if !a.ID.IsZero() {
		out["_id"] = a.ID
	}
	for k, v := range a.Extra {
		out[k] = v
	}
	return bson.Marshal(out)
}

// UnmarshalBSON never fails on field shapes, so one odd document cannot
// break a whole listing.
func (a *Activity) UnmarshalBSON(data []byte) error {
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(data))
	if err != nil {
		return err
	}
	dec.DefaultDocumentM()

	var doc bson.M
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	a.project(doc)
	return nil
}

func (a *Activity) project(doc map[string]any) {
	*a = Activity{}
	for k, v := range doc {
		switch k {
		case "_id":
			if id, ok := v.(primitive.ObjectID); ok {
				a.ID = id
				continue
			}
		case "title":
			if s, ok := v.(string); ok {
				a.Title = s
				continue
			}
		case "location":
			if s, ok := v.(string); ok {
				a.Location = s
				continue
			}
		case "spaces":
			if n, ok := wholeNumber(v); ok {
				a.Spaces = n
				continue
			}
		}
		if a.Extra == nil {
			a.Extra = make(map[string]any)
		}
		a.Extra[k] = v
	}
}

func wholeNumber(v any) (int, bool) {
	switch n := v.(type) {
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt32 && n <= math.MaxInt32 {
			return int(n), true
		}
	}
	return 0, false
}
