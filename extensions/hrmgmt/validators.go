package hrmgmt

import (
	"fmt"
	"mime/multipart"
	"path"
	"slices"
	"strings"

	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/config"
)

// Validator names registered by the extension.
const (
	ValidateExistingUser = "validate_existing_user"
	CheckIfUserExists    = "check_if_user_exists"
	ValidateAvatarFile   = "validate_avatar_file"
)

var defaultAvatarFormats = []string{"png", "jpeg", "jpg"}

const defaultMaxAvatarSize = 2 << 20

// validateExistingUser fails when an employee is already stored under value.
func (e *Extension) validateExistingUser(key string, value any) error {
	id, _ := value.(string)
	if _, err := e.store.Find(id); err == nil {
		return apperr.Validation(key, "User with employee id already exists")
	}
	return nil
}

// checkIfUserExists fails when no employee is stored under value.
func (e *Extension) checkIfUserExists(key string, value any) error {
	id, _ := value.(string)
	if _, err := e.store.Find(id); err != nil {
		return apperr.Validation(key, "Given employee not found")
	}
	return nil
}

// validateAvatarFile checks an uploaded avatar against AVATAR_FILE_FORMATS
// and MAX_AVATAR_SIZE_BYTES.
func (e *Extension) validateAvatarFile(key string, value any) error {
	fh, ok := value.(*multipart.FileHeader)
	if !ok || fh == nil {
		return apperr.Validation(key, "Avatar must be an uploaded file")
	}

	formats := e.cfg.Strings(config.AvatarFileFormats, defaultAvatarFormats)
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(fh.Filename), "."))
	if ext == "" || !slices.Contains(formats, ext) {
		return apperr.Validation(key, fmt.Sprintf(
			"File not in required format only allowed format is %s", formatList(formats),
		))
	}
	if fh.Size > int64(e.cfg.Int(config.MaxAvatarSizeBytes, defaultMaxAvatarSize)) {
		return apperr.Validation("avatar", "Uploaded image file exceeded limit.")
	}
	return nil
}

// formatList renders png, jpeg and jpg.
func formatList(formats []string) string {
	switch len(formats) {
	case 0:
		return ""
	case 1:
		return formats[0]
	}
	return strings.Join(formats[:len(formats)-1], ", ") + " and " + formats[len(formats)-1]
}
