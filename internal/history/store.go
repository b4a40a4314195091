package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stealthcompany.com/maternalhealth/internal/couchbase"
	"stealthcompany.com/maternalhealth/internal/health"
)

// Collection names inside the configured scope
const (
	HistoryCollection = "medical_history"
	UsersCollection   = "users"
)

// DocumentStore is the keyed document access the store needs.
// *couchbase.Client satisfies it.
type DocumentStore interface {
	GetDocument(ctx context.Context, collection, docID string, result interface{}) error
	UpsertDocument(ctx context.Context, collection, docID string, data interface{}) error
}

// storedHistory mirrors health.MedicalHistory with a pointer so that a
// document lacking personalInformation can be told apart from zero values.
type storedHistory struct {
	UserID              string                      `json:"userId"`
	PersonalInformation *health.PersonalInformation `json:"personalInformation"`
	PregnancyHistory    *health.PregnancyHistory    `json:"pregnancyHistory,omitempty"`
	CreatedAt           time.Time                   `json:"createdAt"`
	UpdatedAt           time.Time                   `json:"updatedAt"`
	RiskLevel           string                      `json:"riskLevel,omitempty"`
}

type userProfile struct {
	Name string `json:"name"`
}

// Store reads and writes medical history records keyed by user id
type Store struct {
	docs DocumentStore
	now  func() time.Time
}

// NewStore creates a store over docs using the wall clock
func NewStore(docs DocumentStore) *Store {
	return &Store{docs: docs, now: time.Now}
}

// WithClock replaces the clock used to stamp saved records
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func translate(err error, what string) error {
	switch {
	case errors.Is(err, couchbase.ErrDocumentNotFound):
		return fmt.Errorf("%s: %w", what, health.ErrNotFound)
	case errors.Is(err, couchbase.ErrDocumentDecode):
		return fmt.Errorf("%s: %w: %v", what, health.ErrDataFormat, err)
	default:
		return fmt.Errorf("%s: %w: %w", what, health.ErrStore, err)
	}
}

// FetchHistory returns the stored record for userID
func (s *Store) FetchHistory(ctx context.Context, userID string) (health.MedicalHistory, error) {
	if userID == "" {
		return health.MedicalHistory{}, fmt.Errorf("empty user id: %w", health.ErrNotFound)
	}

	var doc storedHistory
	if err := s.docs.GetDocument(ctx, HistoryCollection, userID, &doc); err != nil {
		return health.MedicalHistory{}, translate(err, "medical history "+userID)
	}

	if doc.PersonalInformation == nil {
		return health.MedicalHistory{}, fmt.Errorf("medical history %s has no personal information: %w", userID, health.ErrDataFormat)
	}

	return health.MedicalHistory{
		UserID:              userID,
		PersonalInformation: *doc.PersonalInformation,
		PregnancyHistory:    doc.PregnancyHistory,
		CreatedAt:           doc.CreatedAt,
		UpdatedAt:           doc.UpdatedAt,
		RiskLevel:           doc.RiskLevel,
	}, nil
}

// FetchDisplayName returns the user's name. A missing or empty name is ErrNotFound.
func (s *Store) FetchDisplayName(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("empty user id: %w", health.ErrNotFound)
	}

	var profile userProfile
	if err := s.docs.GetDocument(ctx, UsersCollection, userID, &profile); err != nil {
		return "", translate(err, "user "+userID)
	}
	if profile.Name == "" {
		return "", fmt.Errorf("user %s has no name: %w", userID, health.ErrNotFound)
	}

	return profile.Name, nil
}

// SaveHistory replaces the record for userID. Both timestamps are set to
// the current time; a previous createdAt is not carried over.
func (s *Store) SaveHistory(ctx context.Context, userID string, personal health.PersonalInformation, pregnancy *health.PregnancyHistory, riskLevel string) (health.MedicalHistory, error) {
	if userID == "" {
		return health.MedicalHistory{}, fmt.Errorf("empty user id: %w", health.ErrStore)
	}

	now := s.now().UTC()
	record := health.MedicalHistory{
		UserID:              userID,
		PersonalInformation: personal,
		PregnancyHistory:    pregnancy,
		CreatedAt:           now,
		UpdatedAt:           now,
		RiskLevel:           riskLevel,
	}

	if err := s.docs.UpsertDocument(ctx, HistoryCollection, userID, record); err != nil {
		return health.MedicalHistory{}, fmt.Errorf("save medical history %s: %w: %w", userID, health.ErrStore, err)
	}

	return record, nil
}
