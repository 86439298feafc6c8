// Package descriptor turns a Go struct type into the ordered field list a
// record contract is built from.
//
// Directives come from the struct tag (key "row" unless configured):
//
//	type User struct {
//		ID      int64  `row:"rename=user_id"`
//		Email   Email  `row:"try_from=email.Parse"`
//		Address Address `row:"flatten"`
//		cache   string // unexported fields are not columns
//		Note    string `row:"-"`
//	}
//
// Overrides loaded from a schema file replace tag directives field by field.
package descriptor
