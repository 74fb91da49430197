package model

// Setting is a named value in the settings collection.
type Setting struct {
	Name        string `json:"name" bson:"name"`
	Value       string `json:"value" bson:"value"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	CreatedTime int64  `json:"created_time" bson:"created_time"`
	UpdatedTime int64  `json:"updated_time" bson:"updated_time"`
	UpdatedBy   string `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
}
