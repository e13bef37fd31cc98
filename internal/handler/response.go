package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/delta/codecharacter/api/internal/model"
)

// DataResponse wraps a successful response
type DataResponse struct {
	Data interface{} `json:"data"`
}

// CollectionResponse wraps a page of results with pagination info
type CollectionResponse struct {
	Data       interface{}     `json:"data"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// PaginationInfo describes where a page sits in the full result
type PaginationInfo struct {
	Page       int  `json:"page"`
	Size       int  `json:"size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// Paging query defaults
const (
	defaultPage     = 1
	defaultPageSize = 20
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a successful data response
func WriteData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, DataResponse{Data: data})
}

// WritePage writes a page of results in a collection envelope
func WritePage[T any](w http.ResponseWriter, page *model.Page[T]) {
	WriteJSON(w, http.StatusOK, CollectionResponse{
		Data: page.Items,
		Pagination: &PaginationInfo{
			Page:       page.Number,
			Size:       page.Size,
			TotalItems: page.TotalItems,
			TotalPages: page.TotalPages(),
			HasMore:    page.HasMore(),
		},
	})
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	err.WriteJSON(w)
}

// DecodeJSON decodes a JSON request body into the given struct
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteNoContent writes a 204 No Content response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses a positive integer path parameter
func pathID(r *http.Request, name string) (int, *model.ProblemDetails) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id <= 0 {
		return 0, model.NewBadRequestError(name + " must be a positive integer")
	}
	return id, nil
}

// pathInt parses an integer path parameter without range checks; the service decides
func pathInt(r *http.Request, name string) (int, *model.ProblemDetails) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, model.NewBadRequestError(name + " must be an integer")
	}
	return n, nil
}

// pageParams reads ?page= and ?size=, defaulting when absent
func pageParams(r *http.Request) (page, size int, pd *model.ProblemDetails) {
	page, size = defaultPage, defaultPageSize
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, model.NewBadRequestError("page must be an integer")
		}
		page = n
	}
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, model.NewBadRequestError("size must be an integer")
		}
		size = n
	}
	return page, size, nil
}
