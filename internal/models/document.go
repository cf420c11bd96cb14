package models

type DocumentType string

const (
	DocKTP             DocumentType = "ktp"
	DocKartuKeluarga   DocumentType = "kartu_keluarga"
	DocFoto            DocumentType = "foto"
	DocRapor           DocumentType = "rapor"
	DocIjazah          DocumentType = "ijazah"
	DocSertifikat      DocumentType = "sertifikat"
	DocSKTM            DocumentType = "sktm"
	DocSuratPernyataan DocumentType = "surat_pernyataan"
	DocBuktiPembayaran DocumentType = "bukti_pembayaran"
	DocEssay           DocumentType = "essay"
	DocCV              DocumentType = "cv"
	DocInstagramFollow DocumentType = "instagram_follow"
	DocTwibbonPost     DocumentType = "twibbon_post"
)

type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusVerified DocumentStatus = "verified"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// UploadedDocument is keyed by DocumentType within a category: at most one
// current record per type per user, newer uploads replace older ones.
type UploadedDocument struct {
	DocumentType DocumentType   `json:"document_type"`
	FilePath     string         `json:"file_path"`
	FileName     string         `json:"file_name"`
	Status       DocumentStatus `json:"status"`
	Keterangan   string         `json:"keterangan"`
	CreatedAt    string         `json:"created_at"`
}

// DocumentTypeInfo describes an accepted document slot for a category, as
// listed by the core API.
type DocumentTypeInfo struct {
	Code           DocumentType `json:"code"`
	Name           string       `json:"name"`
	Category       string       `json:"category"`
	IsRequired     bool         `json:"is_required"`
	AllowedFormats []string     `json:"allowed_formats"`
	MaxSizeMB      int          `json:"max_file_size"`
}
