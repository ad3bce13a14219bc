package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// pathParam binds the chi URL parameter name into dest using the OpenAPI
// "simple" style, the same binding generated servers use for path params.
func pathParam(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	return nil
}

// queryParam binds the optional form-style query parameter name into dest,
// which must be a pointer to a pointer (**bool, **int). It stays nil when
// the parameter is absent.
func queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	return nil
}

// pathInt binds an integer path parameter, writing a 422 on failure.
// ok is false when the response has already been written.
func pathInt[T int | int64](w http.ResponseWriter, r *http.Request, name string) (v T, ok bool) {
	if err := pathParam(r, name, &v); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return v, false
	}
	return v, true
}
