// Package resource provides API resource transformers: functions that turn
// a model into the exact JSON shape the API returns.
//
//	func User(u models.User) resource.Map {
//	    return resource.Map{"id": u.ID, "name": u.Name, "email": u.Email}
//	}
//
//	c.Success(resource.Item(user, User))
//	c.Paginated(resource.Collection(users, User), pagination)
package resource

// Map is the output of a transformer.
type Map map[string]interface{}

// Transformer shapes one value of T.
type Transformer[T any] func(T) Map

// Item applies fn to v.
func Item[T any](v T, fn Transformer[T]) Map {
	return fn(v)
}

// Collection applies fn to each element. A nil slice becomes an empty
// JSON array rather than null.
func Collection[T any](items []T, fn Transformer[T]) []Map {
	out := make([]Map, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

// When sets key to value() only if present is true; otherwise the key is
// left out of the map entirely.
func (m Map) When(present bool, key string, value func() interface{}) Map {
	if present {
		m[key] = value()
	}
	return m
}
