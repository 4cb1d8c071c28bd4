package handler

import (
	"net/http"
	"testing"

	"github.com/pawmart/petstore/internal/errs"
	"github.com/pawmart/petstore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePetRequestValidate(t *testing.T) {
	tests := []struct {
		name   string
		pet    model.Pet
		fields []string
	}{
		{
			name: "missing name",
			pet:  model.Pet{PhotoURLs: []string{}},
			fields: []string{
				"name",
			},
		},
		{
			name: "missing photoUrls",
			pet:  model.Pet{Name: "doggie"},
			fields: []string{
				"photoUrls",
			},
		},
		{
			name: "missing both",
			pet:  model.Pet{},
			fields: []string{
				"name", "photoUrls",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &CreatePetRequest{Pet: tt.pet}
			err := req.Validate()

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)

			var fields []string
			for _, fe := range httpErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestCreatePetRequestValidateComplete(t *testing.T) {
	req := &CreatePetRequest{Pet: model.Pet{Name: "doggie", PhotoURLs: []string{}}}
	require.NoError(t, req.Validate())
}

func TestUpdatePetRequestValidateRequiresID(t *testing.T) {
	req := &UpdatePetRequest{Pet: model.Pet{Name: "doggie"}}
	err := req.Validate()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)

	req.ID = 1
	require.NoError(t, req.Validate())
}

func TestParsePetID(t *testing.T) {
	id, err := parsePetID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parsePetID("abc")
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}
