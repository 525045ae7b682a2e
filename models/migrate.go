package models

// All lists every model for auto migration, parents first.
func All() []interface{} {
	return []interface{}{&User{}, &Blog{}, &Like{}, &Comment{}, &BlogRating{}}
}
