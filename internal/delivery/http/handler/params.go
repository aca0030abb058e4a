package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/pkg/apperror"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidation(fmt.Sprintf("invalid id %q", raw), map[string]string{"id": "id must be a positive integer"})
	}
	return id, nil
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewValidation("Invalid request body", nil)
	}
	return nil
}

func queryInt64(q url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperror.NewValidation("invalid query parameter", map[string]string{key: key + " must be an integer"})
	}
	return &v, nil
}

func queryBool(q url.Values, key string) (*bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.NewValidation("invalid query parameter", map[string]string{key: key + " must be true or false"})
	}
	return &v, nil
}

func queryOrder(q url.Values) (entity.SortOrder, error) {
	order := entity.SortOrder(strings.ToLower(strings.TrimSpace(q.Get("order"))))
	if !order.Valid() {
		return "", apperror.NewValidation("invalid query parameter", map[string]string{"order": "order must be one of: asc desc"})
	}
	return order, nil
}
