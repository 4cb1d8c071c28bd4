package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pawmart/petstore/internal/errs"
	"github.com/pawmart/petstore/internal/middleware"
	"github.com/pawmart/petstore/internal/model"
	"github.com/pawmart/petstore/internal/server"
	"github.com/pawmart/petstore/internal/service"
)

// PetHandler exposes the pet endpoints.
type PetHandler struct {
	Handler
	pets *service.PetService
}

// NewPetHandler constructs a PetHandler.
func NewPetHandler(s *server.Server, pets *service.PetService) *PetHandler {
	return &PetHandler{
		Handler: NewHandler(s),
		pets:    pets,
	}
}

// parsePetID converts the {id} path segment to an integer. Non-numeric
// segments yield a 404: the route table only ever admitted digits
// there, so such a path is simply not a known route.
func parsePetID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewNotFoundError("Not Found")
	}
	return id, nil
}

// CreatePetRequest is the JSON pet payload for POST /pet.
type CreatePetRequest struct {
	model.Pet
}

// Validate enforces the creation contract: name and photoUrls must be
// present, otherwise the request is a 422.
func (r *CreatePetRequest) Validate() error {
	var fieldErrors []errs.FieldError
	if r.Name == "" {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "name", Error: "is required"})
	}
	if r.PhotoURLs == nil {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "photoUrls", Error: "is required"})
	}
	if len(fieldErrors) > 0 {
		return errs.NewUnprocessableEntityError("Invalid input", fieldErrors)
	}
	return nil
}

// CreatePet handles POST /pet.
func (h *PetHandler) CreatePet(c echo.Context, req *CreatePetRequest) (*model.Pet, error) {
	return h.pets.Create(c.Request().Context(), &req.Pet)
}

// UpdatePetRequest is the JSON pet payload for PUT /pet.
type UpdatePetRequest struct {
	model.Pet
}

// Validate enforces the update contract: the id must be present.
func (r *UpdatePetRequest) Validate() error {
	if r.ID == 0 {
		return errs.NewBadRequestError("Pet id is required", nil)
	}
	return nil
}

// UpdatePet handles PUT /pet.
func (h *PetHandler) UpdatePet(c echo.Context, req *UpdatePetRequest) (*model.Pet, error) {
	return h.pets.Update(c.Request().Context(), &req.Pet)
}

// FindByStatusRequest carries the status query parameter.
type FindByStatusRequest struct {
	Status string `query:"status" json:"-"`
}

func (r *FindByStatusRequest) Validate() error { return nil }

// FindByStatus handles GET /pet/findByStatus.
func (h *PetHandler) FindByStatus(c echo.Context, req *FindByStatusRequest) ([]*model.Pet, error) {
	return h.pets.FindByStatus(c.Request().Context(), model.PetStatus(req.Status))
}

// FindByTagsRequest carries the repeated tags query parameter.
type FindByTagsRequest struct {
	Tags []string `query:"tags" json:"-"`
}

func (r *FindByTagsRequest) Validate() error { return nil }

// FindByTags handles GET /pet/findByTags.
func (h *PetHandler) FindByTags(c echo.Context, req *FindByTagsRequest) ([]*model.Pet, error) {
	return h.pets.FindByTags(c.Request().Context(), req.Tags)
}

// GetPetRequest carries the pet id path parameter.
type GetPetRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *GetPetRequest) Validate() error { return nil }

// GetPet handles GET /pet/{id}.
func (h *PetHandler) GetPet(c echo.Context, req *GetPetRequest) (*model.Pet, error) {
	id, err := parsePetID(req.ID)
	if err != nil {
		return nil, err
	}
	return h.pets.Get(c.Request().Context(), id)
}

// UpdatePetFormRequest is the form-encoded partial update for
// POST /pet/{id}: both fields are optional.
type UpdatePetFormRequest struct {
	ID     string  `param:"id" json:"-"`
	Name   *string `form:"name" json:"-"`
	Status *string `form:"status" json:"-"`
}

func (r *UpdatePetFormRequest) Validate() error { return nil }

// UpdatePetWithForm handles POST /pet/{id}. Whichever fields are
// present get applied; the refreshed pet is returned.
func (h *PetHandler) UpdatePetWithForm(c echo.Context, req *UpdatePetFormRequest) (*model.Pet, error) {
	id, err := parsePetID(req.ID)
	if err != nil {
		return nil, err
	}

	var status *model.PetStatus
	if req.Status != nil {
		s := model.PetStatus(*req.Status)
		status = &s
	}

	return h.pets.UpdateWithForm(c.Request().Context(), id, req.Name, status)
}

// DeletePetRequest carries the pet id path parameter.
type DeletePetRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *DeletePetRequest) Validate() error { return nil }

// DeletePet handles DELETE /pet/{id} and answers with an empty 200.
func (h *PetHandler) DeletePet(c echo.Context, req *DeletePetRequest) error {
	id, err := parsePetID(req.ID)
	if err != nil {
		return err
	}
	return h.pets.Delete(c.Request().Context(), id)
}

// UploadImage handles POST /pet/{id}/uploadImage.
//
// It is a plain (untyped) handler because the payload is multipart
// form data, not a bindable JSON document. The file bytes are read off
// the wire but never persisted; only a synthesized URL is recorded.
func (h *PetHandler) UploadImage(c echo.Context) error {
	id, err := parsePetID(c.Param("id"))
	if err != nil {
		return err
	}

	metadata := c.FormValue("additionalMetadata")

	// The file part is optional in practice; its presence doesn't
	// change the recorded URL.
	if _, err := c.FormFile("file"); err != nil {
		middleware.GetLogger(c).Debug().Msg("upload request without file part")
	}

	response, err := h.pets.UploadImage(c.Request().Context(), id, c.Request().Host, metadata)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response)
}
