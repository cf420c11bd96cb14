package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"bersekolah/gateway/internal/cache"
	"bersekolah/gateway/internal/models"
	"bersekolah/gateway/internal/upstream"
)

const listKeyPrefix = "bersekolah_documents:"

var ErrUnknownType = errors.New("unknown document type")

// coreAPI is the slice of the upstream client the coordinator needs.
type coreAPI interface {
	DocumentTypes(ctx context.Context, token string, category string) ([]models.DocumentTypeInfo, error)
	MyDocuments(ctx context.Context, token string, category string) ([]models.UploadedDocument, error)
	UploadDocument(ctx context.Context, token string, endpoint string, fileName string, file io.Reader, note string) (models.UploadedDocument, error)
}

// Coordinator fronts the per-type upload endpoints and keeps a cached copy
// of the uploaded-document list in sync, one optimistic update per upload.
// Every operation short-circuits with an unauthenticated error when the
// session carries no token, before any network call.
type Coordinator struct {
	api coreAPI
	kv  cache.KV
	log zerolog.Logger
}

func NewCoordinator(api coreAPI, kv cache.KV, log zerolog.Logger) *Coordinator {
	return &Coordinator{api: api, kv: kv, log: log}
}

func (c *Coordinator) ListTypes(ctx context.Context, sess *models.Session, category string) ([]models.DocumentTypeInfo, error) {
	if err := requireToken(sess); err != nil {
		return nil, err
	}
	return c.api.DocumentTypes(ctx, sess.Token, category)
}

func (c *Coordinator) ListUploaded(ctx context.Context, sess *models.Session, category string) ([]models.UploadedDocument, error) {
	if err := requireToken(sess); err != nil {
		return nil, err
	}

	docs, err := c.api.MyDocuments(ctx, sess.Token, category)
	if err != nil {
		return nil, err
	}

	if category == CategorySosmed {
		docs = filterSosmed(docs)
	}

	c.saveList(ctx, sess.User.ID, category, docs)
	return docs, nil
}

// Upload forwards the file to the type's dedicated endpoint. On success the
// cached list is updated in place: an existing record for the type is
// replaced at its position, a new type is appended. On failure nothing is
// mutated and the upstream error is surfaced unchanged.
func (c *Coordinator) Upload(ctx context.Context, sess *models.Session, docType models.DocumentType, fileName string, file io.Reader, note string) (models.UploadedDocument, error) {
	if err := requireToken(sess); err != nil {
		return models.UploadedDocument{}, err
	}

	endpoint, ok := endpointForType[docType]
	if !ok {
		return models.UploadedDocument{}, fmt.Errorf("%w: %q", ErrUnknownType, docType)
	}

	doc, err := c.api.UploadDocument(ctx, sess.Token, endpoint, fileName, file, note)
	if err != nil {
		return models.UploadedDocument{}, err
	}
	if doc.DocumentType == "" {
		doc.DocumentType = docType
	}

	category := categoryForType[docType]
	list := c.loadList(ctx, sess.User.ID, category)
	c.saveList(ctx, sess.User.ID, category, mergeUpload(list, doc))

	return doc, nil
}

// CachedList returns the last list this coordinator synced for the user, so
// pages can render between refreshes without refetching.
func (c *Coordinator) CachedList(ctx context.Context, userID string, category string) []models.UploadedDocument {
	return c.loadList(ctx, userID, category)
}

// mergeUpload applies the optimistic update: replace in place, preserving
// list positions, or append exactly one entry for a new type.
func mergeUpload(list []models.UploadedDocument, doc models.UploadedDocument) []models.UploadedDocument {
	for i := range list {
		if list[i].DocumentType == doc.DocumentType {
			list[i] = doc
			return list
		}
	}
	return append(list, doc)
}

func filterSosmed(docs []models.UploadedDocument) []models.UploadedDocument {
	filtered := make([]models.UploadedDocument, 0, len(docs))
	for _, doc := range docs {
		if _, ok := sosmedTypes[doc.DocumentType]; ok {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}

func requireToken(sess *models.Session) error {
	if sess == nil || sess.Token == "" {
		return upstream.ErrUnauthenticated("")
	}
	return nil
}

func (c *Coordinator) listKey(userID string, category string) string {
	return listKeyPrefix + userID + ":" + category
}

func (c *Coordinator) loadList(ctx context.Context, userID string, category string) []models.UploadedDocument {
	raw, err := c.kv.Get(ctx, c.listKey(userID, category))
	if err != nil {
		if !errors.Is(err, cache.ErrKeyNotFound) {
			c.log.Warn().Err(err).Str("user_id", userID).Msg("document list cache read failed")
		}
		return nil
	}

	var docs []models.UploadedDocument
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return nil
	}
	return docs
}

func (c *Coordinator) saveList(ctx context.Context, userID string, category string, docs []models.UploadedDocument) {
	raw, err := json.Marshal(docs)
	if err != nil {
		return
	}
	if err := c.kv.Set(ctx, c.listKey(userID, category), string(raw), 0); err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("document list cache write failed")
	}
}
