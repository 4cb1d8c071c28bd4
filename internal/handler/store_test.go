package handler

import (
	"net/http"
	"testing"

	"github.com/pawmart/petstore/internal/errs"
	"github.com/pawmart/petstore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderRequestValidateRequiresPetID(t *testing.T) {
	req := &PlaceOrderRequest{}
	err := req.Validate()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)

	req.Order = model.Order{PetID: 3}
	require.NoError(t, req.Validate())
}

func TestParseOrderID(t *testing.T) {
	id, err := parseOrderID("10")
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)

	_, err = parseOrderID("ten")
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}
