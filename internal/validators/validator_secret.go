package validators

import (
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-vault-cache/models"
)

const (
	FieldKey     = "key"
	FieldName    = "name"
	FieldPayload = "payload"
)

// NewSecretValidator builds the schema validator for [models.Secret]: a
// non-empty whitespace-free key, a non-empty name of at most 255 characters,
// and at least one payload field present.
func NewSecretValidator() Validator[models.Secret] {
	return NewRuleValidator(
		Rule[models.Secret]{
			Name: FieldKey,
			Check: func(s models.Secret) error {
				if s.ID == "" {
					return ErrEmptyKey
				}
				if strings.ContainsAny(s.ID, " \t\n\r") {
					return ErrKeyWhitespace
				}
				return nil
			},
		},
		Rule[models.Secret]{
			Name: FieldName,
			Check: func(s models.Secret) error {
				if s.Name == "" {
					return ErrEmptyName
				}
				if utf8.RuneCountInString(s.Name) > 255 {
					return ErrNameTooLong
				}
				return nil
			},
		},
		Rule[models.Secret]{
			Name: FieldPayload,
			Check: func(s models.Secret) error {
				if s.Login == "" && s.Password == "" && s.Notes == nil {
					return ErrEmptySecret
				}
				return nil
			},
		},
	)
}
