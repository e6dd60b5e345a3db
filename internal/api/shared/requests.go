package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate is the package-wide validator instance. validator caches struct
// metadata internally, so a single instance serves every handler.
var validate = validator.New()

// DecodeJSON decodes the request body into v. A failure here means the body
// is not valid JSON for the target shape, which handlers answer with 400.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest runs the struct validation tags on v. Handlers sanitize
// the returned error before it reaches a client.
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}
