package services

import (
	"strings"

	"mina/internal/crypto"
	"mina/internal/models"
)

// EncryptionService applies the field cipher to domain models. A service
// built without a cipher passes values through unchanged.
type EncryptionService struct {
	cipher *crypto.Cipher
}

// NewEncryptionService returns a passthrough service when both keys are empty.
func NewEncryptionService(sealKeyHex, indexKeyHex string) (*EncryptionService, error) {
	if sealKeyHex == "" && indexKeyHex == "" {
		return &EncryptionService{}, nil
	}
	sealKey, err := crypto.ParseKey(sealKeyHex)
	if err != nil {
		return nil, err
	}
	indexKey, err := crypto.ParseKey(indexKeyHex)
	if err != nil {
		return nil, err
	}
	c, err := crypto.NewCipher(sealKey, indexKey)
	if err != nil {
		return nil, err
	}
	return &EncryptionService{cipher: c}, nil
}

func (s *EncryptionService) Enabled() bool { return s != nil && s.cipher != nil }

// EncryptUser seals the email and sets its blind index.
func (s *EncryptionService) EncryptUser(user *models.User) error {
	user.EmailBlindIndex = s.EmailIndex(user.Email)
	if !s.Enabled() {
		return nil
	}
	sealed, err := s.cipher.Seal(user.Email)
	if err != nil {
		return err
	}
	user.Email = sealed
	return nil
}

func (s *EncryptionService) DecryptUser(user *models.User) error {
	if !s.Enabled() {
		return nil
	}
	plain, err := s.cipher.Open(user.Email)
	if err != nil {
		return err
	}
	user.Email = plain
	return nil
}

// EmailIndex is the lookup key for an email. Without a cipher it is the
// normalized email itself.
func (s *EncryptionService) EmailIndex(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if !s.Enabled() {
		return email
	}
	return s.cipher.BlindIndex(email)
}

func (s *EncryptionService) EncryptEntry(entry *models.JournalEntry) error {
	if !s.Enabled() || entry.Body == "" {
		return nil
	}
	sealed, err := s.cipher.Seal(entry.Body)
	if err != nil {
		return err
	}
	entry.Body = sealed
	return nil
}

func (s *EncryptionService) DecryptEntry(entry *models.JournalEntry) error {
	if !s.Enabled() || entry.Body == "" {
		return nil
	}
	plain, err := s.cipher.Open(entry.Body)
	if err != nil {
		return err
	}
	entry.Body = plain
	return nil
}
