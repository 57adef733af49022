// Package controllers holds the HTTP handlers. Controllers are constructed
// with the store interfaces they consume, never package-level handles, so
// every handler is testable with in-memory fakes.
package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/totaltools/manufacturing-api/pkg/response"
)

// pathObjectID parses the {id} route parameter. On malformed input it writes
// a 422 and reports false; the handler should just return.
func pathObjectID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.ValidationError(w, map[string]string{"id": "The id must be a valid object ID."})
		return primitive.NilObjectID, false
	}
	return id, true
}
