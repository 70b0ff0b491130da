package services

import (
	"daybook/internal/crypto"
	"daybook/internal/models"
)

// EncryptionService wraps the crypto service with entry-specific methods.
// Only content and insights are encrypted; mood, tags and dates stay in
// plaintext so histograms and streaks keep working against the database.
type EncryptionService struct {
	crypto *crypto.EncryptionService
}

// NewEncryptionService creates a new encryption service from a 32-byte key.
func NewEncryptionService(key []byte) (*EncryptionService, error) {
	cryptoSvc, err := crypto.NewEncryptionService(key)
	if err != nil {
		return nil, err
	}
	return &EncryptionService{crypto: cryptoSvc}, nil
}

// EncryptEntry encrypts sensitive entry fields before storing in DB.
func (s *EncryptionService) EncryptEntry(e *models.JournalEntry) error {
	encrypted, err := s.crypto.Encrypt(e.Content)
	if err != nil {
		return err
	}
	e.Content = encrypted

	if e.Insights != nil && *e.Insights != "" {
		encryptedInsights, err := s.crypto.Encrypt(*e.Insights)
		if err != nil {
			return err
		}
		e.Insights = &encryptedInsights
	}
	return nil
}

// DecryptEntry decrypts sensitive entry fields after retrieving from DB.
func (s *EncryptionService) DecryptEntry(e *models.JournalEntry) error {
	decrypted, err := s.crypto.Decrypt(e.Content)
	if err != nil {
		return err
	}
	e.Content = decrypted

	if e.Insights != nil && *e.Insights != "" {
		decryptedInsights, err := s.crypto.Decrypt(*e.Insights)
		if err != nil {
			return err
		}
		e.Insights = &decryptedInsights
	}
	return nil
}
