package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/internal/service"
	"github.com/asifrahman/go-identity-api/models"
)

// maxUploadSize bounds the in-memory portion of a multipart user creation
// request; larger file parts spill to disk.
const maxUploadSize = 10 << 20

// me returns the authenticated caller's own account, re-read from the store
// so the response reflects the current state rather than the guard's snapshot.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		h.writeError(w, r, service.NewError(http.StatusUnauthorized, service.CodeUnauthorized, "unauthorized"))
		return
	}

	user, err := h.services.Users.FindByID(r.Context(), id.user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewResponse("user found", user))
}

// getUserByEmail looks up any account by email. Restricted by route to the
// Administrator and Teacher roles.
func (h *Handler) getUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := h.services.Users.FindByEmail(r.Context(), email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewResponse("user found", user))
}

// createUserResponse pairs the created account with the outcome of its
// profile image upload, when one was sent.
type createUserResponse struct {
	User   models.User              `json:"user"`
	Upload *models.BlobUploadResult `json:"upload,omitempty"`
}

// createUser creates an account with any role. The request is either plain
// JSON or multipart/form-data carrying the same fields plus an optional
// profile image under the "profilePicture" part.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var (
		req    models.CreateUserRequest
		upload *models.BlobUploadResult
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			log.Err(err).Msg("invalid multipart form")
			h.writeError(w, r, service.NewError(http.StatusBadRequest, service.CodeValidationError, "invalid multipart form"))
			return
		}
		req = createUserRequestFromForm(r)

		file, header, err := r.FormFile("profilePicture")
		if err == nil {
			defer file.Close()

			result := h.services.Uploads.UploadProfileImage(ctx, file, header.Filename, header.Header.Get("Content-Type"), header.Size)
			if result.HasError {
				h.writeError(w, r, service.NewError(http.StatusBadRequest, service.CodeFileUploadError, "failed to upload profile picture"))
				return
			}
			upload = &result
		} else if err != http.ErrMissingFile {
			log.Err(err).Msg("invalid file part")
			h.writeError(w, r, service.NewError(http.StatusBadRequest, service.CodeValidationError, "invalid file part"))
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Err(err).Msg("invalid JSON was passed")
			h.writeError(w, r, service.NewError(http.StatusBadRequest, service.CodeValidationError, "invalid JSON was passed"))
			return
		}
	}

	user, err := h.services.Users.Create(ctx, req, upload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Str("userID", user.ID).Msg("user created")

	writeJSON(w, http.StatusCreated, models.NewResponse("user created", createUserResponse{User: user, Upload: upload}))
}

// updatePassword changes the authenticated caller's own password.
func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		h.writeError(w, r, service.NewError(http.StatusUnauthorized, service.CodeUnauthorized, "unauthorized"))
		return
	}

	var req models.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, service.NewError(http.StatusBadRequest, service.CodeValidationError, "invalid JSON was passed"))
		return
	}

	if err := h.services.Users.UpdatePassword(r.Context(), id.user.ID, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewResponse("password updated", nil))
}

func createUserRequestFromForm(r *http.Request) models.CreateUserRequest {
	return models.CreateUserRequest{
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		FirstName:       r.FormValue("firstName"),
		LastName:        r.FormValue("lastName"),
		DisplayName:     r.FormValue("displayName"),
		PhoneNumber:     r.FormValue("phoneNumber"),
		Role:            r.FormValue("role"),
		Timezone:        r.FormValue("timezone"),
		Locale:          r.FormValue("locale"),
		Bio:             r.FormValue("bio"),
		Gender:          r.FormValue("gender"),
		Tagline:         r.FormValue("tagline"),
		Website:         r.FormValue("website"),
		CountryCodeISO3: r.FormValue("countryCodeIso3"),
	}
}
