package apiclient

import (
	"bytes"
	"encoding/json"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
	apperrors "github.com/bookstore/bookstore-admin/internal/errors"
)

// decodePage accepts a flat array, {items, page, per_page, total, pages} or
// {<key>: [...], pagination: {...}}.
func decodePage[T any](raw []byte, key string) (model.Page[T], error) {
	var page model.Page[T]
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return page, nil
	}

	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &page.Items); err != nil {
			return page, apperrors.Wrap(err, apperrors.ErrCodeDecode, "unreadable list response")
		}
		n := len(page.Items)
		page.Pagination = model.Pagination{Page: 1, PerPage: n, Total: n}
		page.Pagination.Recompute()
		return page, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return page, apperrors.Wrap(err, apperrors.ErrCodeDecode, "unreadable list response")
	}
	for _, k := range []string{key, "items", "data"} {
		if v, ok := obj[k]; ok && k != "" {
			if err := json.Unmarshal(v, &page.Items); err != nil {
				return page, apperrors.Wrap(err, apperrors.ErrCodeDecode, "unreadable list items")
			}
			break
		}
	}

	if v, ok := obj["pagination"]; ok {
		if err := json.Unmarshal(v, &page.Pagination); err != nil {
			return page, apperrors.Wrap(err, apperrors.ErrCodeDecode, "unreadable pagination")
		}
	} else if err := json.Unmarshal(raw, &page.Pagination); err != nil {
		return page, apperrors.Wrap(err, apperrors.ErrCodeDecode, "unreadable pagination")
	}
	if page.Pagination.Pages == 0 && page.Pagination.PerPage > 0 {
		page.Pagination.Recompute()
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

// decodeEntity reads obj[key] when the body wraps the entity, otherwise the whole body.
func decodeEntity[T any](raw []byte, key string) (T, error) {
	var out T
	var obj map[string]json.RawMessage
	if json.Unmarshal(raw, &obj) == nil {
		if v, ok := obj[key]; ok && len(bytes.TrimSpace(v)) > 0 && bytes.TrimSpace(v)[0] == '{' {
			raw = v
		}
	}
	if err := decode(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

// decodeAction reads the {message, <key>} envelope returned by state transitions.
func decodeAction[T any](raw []byte, key string) (model.ActionResult[T], error) {
	var res model.ActionResult[T]
	var env struct {
		Message string `json:"message"`
	}
	if err := decode(raw, &env); err != nil {
		return res, err
	}
	item, err := decodeEntity[T](raw, key)
	if err != nil {
		return res, err
	}
	res.Message = env.Message
	res.Item = item
	return res, nil
}
