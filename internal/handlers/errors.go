package handlers

import (
	"errors"
	"net/http"

	"rentflow-backend/internal/billing"
	"rentflow-backend/internal/repositories"
	"rentflow-backend/pkg/utils"
)

// writeServiceError maps the error taxonomy onto status codes: bad input
// is 400, a missing row is 404, an exhausted persistence retry is 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *billing.ValidationError
	if errors.As(err, &validationErr) {
		utils.Error(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	var notFoundErr *repositories.NotFoundError
	if errors.As(err, &notFoundErr) {
		utils.Error(w, http.StatusNotFound, notFoundErr.Error())
		return
	}

	var persistenceErr *repositories.PersistenceError
	if errors.As(err, &persistenceErr) {
		utils.Error(w, http.StatusInternalServerError, "storage temporarily unavailable")
		return
	}

	utils.Error(w, http.StatusInternalServerError, err.Error())
}
