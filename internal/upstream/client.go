package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/rs/zerolog"

	"bersekolah/gateway/internal/config"
	"bersekolah/gateway/internal/models"
)

// Client talks to the core API. Every call carries a per-request timeout;
// idempotent GETs get a bounded backoff retry on transport and 5xx failures,
// POSTs are never retried.
type Client struct {
	baseURL       string
	http          *http.Client
	log           zerolog.Logger
	retryAttempts uint
	retryDelay    time.Duration
}

func NewClient(cfg config.UpstreamConfig, log zerolog.Logger) *Client {
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		http:          &http.Client{Timeout: cfg.RequestTimeout},
		log:           log,
		retryAttempts: uint(attempts),
		retryDelay:    cfg.RetryDelay,
	}
}

type AuthPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone,omitempty"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (c *Client) Login(ctx context.Context, input LoginInput) (AuthPayload, error) {
	var payload AuthPayload
	if err := c.postJSON(ctx, "/login", "", input, &payload); err != nil {
		return AuthPayload{}, err
	}
	if payload.Token == "" {
		return AuthPayload{}, &Error{Kind: KindTransport, Message: "login response missing token"}
	}
	return payload, nil
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (AuthPayload, error) {
	var payload AuthPayload
	if err := c.postJSON(ctx, "/register", "", input, &payload); err != nil {
		return AuthPayload{}, err
	}
	if payload.Token == "" {
		return AuthPayload{}, &Error{Kind: KindTransport, Message: "register response missing token"}
	}
	return payload, nil
}

func (c *Client) ApplicationStatus(ctx context.Context, token string) (models.ApplicationRecord, error) {
	var record models.ApplicationRecord
	if err := c.getJSON(ctx, "/application-status", token, nil, &record); err != nil {
		return models.ApplicationRecord{}, err
	}
	return record, nil
}

type SocialLink struct {
	Platform string `json:"platform"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	IsActive bool   `json:"is_active"`
}

func (c *Client) PublicSocialLinks(ctx context.Context) ([]SocialLink, error) {
	var links []SocialLink
	if err := c.getJSON(ctx, "/media-sosial/public", "", nil, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (c *Client) LatestSocialLink(ctx context.Context) (SocialLink, error) {
	var link SocialLink
	if err := c.getJSON(ctx, "/media-sosial/latest", "", nil, &link); err != nil {
		return SocialLink{}, err
	}
	return link, nil
}

type documentTypeWire struct {
	Code           models.DocumentType `json:"code"`
	Name           string              `json:"name"`
	Category       string              `json:"category"`
	IsRequired     bool                `json:"is_required"`
	AllowedFormats StringList          `json:"allowed_formats"`
	MaxSizeMB      int                 `json:"max_file_size"`
}

func (c *Client) DocumentTypes(ctx context.Context, token string, category string) ([]models.DocumentTypeInfo, error) {
	query := url.Values{"category": {category}}
	var wire []documentTypeWire
	if err := c.getJSON(ctx, "/document-types", token, query, &wire); err != nil {
		return nil, err
	}

	infos := make([]models.DocumentTypeInfo, 0, len(wire))
	for _, w := range wire {
		infos = append(infos, models.DocumentTypeInfo{
			Code:           w.Code,
			Name:           w.Name,
			Category:       w.Category,
			IsRequired:     w.IsRequired,
			AllowedFormats: w.AllowedFormats,
			MaxSizeMB:      w.MaxSizeMB,
		})
	}
	return infos, nil
}

func (c *Client) MyDocuments(ctx context.Context, token string, category string) ([]models.UploadedDocument, error) {
	query := url.Values{"category": {category}}
	var docs []models.UploadedDocument
	if err := c.getJSON(ctx, "/my-documents", token, query, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// UploadDocument posts the file as multipart form data to one of the
// dedicated per-type endpoints. Not retried.
func (c *Client) UploadDocument(ctx context.Context, token string, endpoint string, fileName string, file io.Reader, note string) (models.UploadedDocument, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return models.UploadedDocument{}, &Error{Kind: KindTransport, Message: fmt.Sprintf("build upload form: %v", err)}
	}
	if _, err := io.Copy(part, file); err != nil {
		return models.UploadedDocument{}, &Error{Kind: KindTransport, Message: fmt.Sprintf("read upload file: %v", err)}
	}
	if note != "" {
		if err := writer.WriteField("keterangan", note); err != nil {
			return models.UploadedDocument{}, &Error{Kind: KindTransport, Message: fmt.Sprintf("build upload form: %v", err)}
		}
	}
	if err := writer.Close(); err != nil {
		return models.UploadedDocument{}, &Error{Kind: KindTransport, Message: fmt.Sprintf("build upload form: %v", err)}
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, token, &body)
	if err != nil {
		return models.UploadedDocument{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var doc models.UploadedDocument
	if err := c.send(req, &doc); err != nil {
		return models.UploadedDocument{}, err
	}
	return doc, nil
}

// ExportRows fetches an export as JSON rows regardless of the format the
// admin asked for; format conversion happens gateway-side.
func (c *Client) ExportRows(ctx context.Context, token string, params url.Values) (json.RawMessage, error) {
	var rows json.RawMessage
	if err := c.getJSON(ctx, "/export", token, params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) getJSON(ctx context.Context, path string, token string, query url.Values, out any) error {
	attempt := func() error {
		target := path
		if len(query) > 0 {
			target = path + "?" + query.Encode()
		}
		req, err := c.newRequest(ctx, http.MethodGet, target, token, nil)
		if err != nil {
			return err
		}
		return c.send(req, out)
	}

	return retry.Do(
		attempt,
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return IsKind(err, KindTransport) || IsKind(err, KindServer)
		}),
	)
}

func (c *Client) postJSON(ctx context.Context, path string, token string, in any, out any) error {
	encoded, err := json.Marshal(in)
	if err != nil {
		return &Error{Kind: KindTransport, Message: fmt.Sprintf("encode request: %v", err)}
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, token, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method string, path string, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("upstream request failed")
		return &Error{Kind: KindTransport, Message: "tidak dapat terhubung ke server, periksa koneksi Anda"}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "gagal membaca respons server"}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := decodeNormalized(raw, out); err != nil {
			c.log.Warn().Err(err).Str("path", req.URL.Path).Msg("upstream response not decodable")
			return &Error{Kind: KindTransport, Message: "respons server tidak dikenali"}
		}
		return nil
	}

	return classifyFailure(resp.StatusCode, raw)
}

type failureBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

func classifyFailure(status int, raw []byte) *Error {
	var body failureBody
	_ = json.Unmarshal(raw, &body)

	message := body.Message
	if message == "" {
		message = body.Error
	}

	switch {
	case status == http.StatusUnauthorized || status == 419:
		return &Error{Kind: KindUnauthenticated, StatusCode: status, Message: message}
	case status == http.StatusUnprocessableEntity:
		fields := make(map[string]string, len(body.Errors))
		for field, messages := range body.Errors {
			if len(messages) > 0 {
				fields[field] = messages[0] // first message per field wins
			}
		}
		if message == "" {
			message = "data yang dikirim tidak valid"
		}
		return &Error{Kind: KindValidation, StatusCode: status, Message: message, Fields: fields}
	case status >= 500:
		return &Error{Kind: KindServer, StatusCode: status, Message: "server sedang bermasalah, coba lagi nanti"}
	default:
		if message == "" {
			message = fmt.Sprintf("permintaan ditolak server (status %d)", status)
		}
		return &Error{Kind: KindRejected, StatusCode: status, Message: message}
	}
}
